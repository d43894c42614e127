package banner

import (
	"fmt"

	"journaldb/pkg/config"
)

const banner = `
     ██╗ ██████╗ ██╗   ██╗██████╗ ███╗   ██╗ █████╗ ██╗         ██████╗ ██████╗
     ██║██╔═══██╗██║   ██║██╔══██╗████╗  ██║██╔══██╗██║         ██╔══██╗██╔══██╗
     ██║██║   ██║██║   ██║██████╔╝██╔██╗ ██║███████║██║         ██║  ██║██████╔╝
██   ██║██║   ██║██║   ██║██╔══██╗██║╚██╗██║██╔══██║██║         ██║  ██║██╔══██╗
╚█████╔╝╚██████╔╝╚██████╔╝██║  ██║██║ ╚████║██║  ██║███████╗    ██████╔╝██████╔╝
 ╚════╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚══════╝    ╚═════╝ ╚═════╝
`

// PrintWithEff prints the banner using an EffectiveConfigResult which
// provides richer context (config, addr, dbpath, source).
func PrintWithEff(eff config.EffectiveConfigResult, version string) {
	var addr = eff.Addr
	if addr == "" && eff.Config != nil {
		addr = eff.Config.Addr()
	}
	var dbPath = eff.DBPath
	if dbPath == "" && eff.Config != nil {
		dbPath = eff.Config.Server.DBPath
	}
	var src = eff.Source
	if src == "" {
		src = "flags"
	}

	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", addr)
	fmt.Printf("DB Path:  %s\n", dbPath)
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	fmt.Printf("Config: %s\n", src)

	fmt.Println("\n== Examples ===================================================")
	fmt.Println("curl 'http://<host>:<port>/v1/sleepday'")
	fmt.Println("curl -X PATCH 'http://<host>:<port>/v1/diary/2026-08-28' -d '{\"mood\":4,\"text\":\"slept well\"}'")
	fmt.Println("curl 'http://<host>:<port>/v1/community/feed?q=sleep'")
	fmt.Println("curl 'http://<host>:<port>/v1/insights/weekly'")

	fmt.Println("\n== Production? =================================================")
	if eff.Config != nil && eff.Config.Server.TLS.CertFile != "" && eff.Config.Server.TLS.KeyFile != "" {
		fmt.Println("- TLS: configured")
	} else {
		fmt.Println("- TLS: unconfigured")
	}
	if dbPath != "" {
		fmt.Printf("- DB Path: %s\n", dbPath)
	} else {
		fmt.Println("- DB Path: not set (use --db or JOURNALDB_DB_PATH)")
	}
	if eff.Config != nil && eff.Config.LLM.Endpoint != "" {
		fmt.Printf("- LLM: %s (model=%s)\n", eff.Config.LLM.Endpoint, eff.Config.LLM.Model)
	} else {
		fmt.Println("- LLM: unconfigured (chat and summaries use local fallbacks)")
	}
	if eff.Config != nil && eff.Config.Retention.Enabled {
		if eff.Config.Retention.Cron != "" {
			fmt.Printf("- Retention: enabled (cron=%s)\n", eff.Config.Retention.Cron)
		} else {
			fmt.Println("- Retention: enabled")
		}
	} else {
		fmt.Println("- Retention: disabled")
	}

	fmt.Println("\n== Logs: =================================================")
}
