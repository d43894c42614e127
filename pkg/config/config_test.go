package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  address: 127.0.0.1
  port: 9090
  db_path: /tmp/journal
journal:
  cutoff_hour: 4
llm:
  endpoint: http://localhost:11434/v1
  model: llama3
retention:
  enabled: true
  period: 720h
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Fatalf("addr: %s", cfg.Addr())
	}
	if cfg.Journal.CutoffHour != 4 || cfg.LLM.Model != "llama3" {
		t.Fatalf("fields not parsed: %+v", cfg)
	}
	if cfg.Retention.Period.Duration() != 720*time.Hour {
		t.Fatalf("period: %v", cfg.Retention.Period.Duration())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing file should error")
	}
}

func TestDurationNumericSeconds(t *testing.T) {
	path := writeConfig(t, "retention:\n  period: 90\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Retention.Period.Duration() != 90*time.Second {
		t.Fatalf("numeric period: %v", cfg.Retention.Period.Duration())
	}
}

func TestAddrDefaults(t *testing.T) {
	var cfg Config
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("default addr: %s", cfg.Addr())
	}
}

func TestEffectiveConfigFlagWinsOverEnv(t *testing.T) {
	flags := Flags{Addr: ":7070", DB: "/flag/db", Set: map[string]bool{"addr": true, "db": true}}
	envCfg := &Config{}
	envCfg.Server.DBPath = "/env/db"
	envCfg.Journal.CutoffHour = 4

	res, err := LoadEffectiveConfig(flags, &Config{}, false, envCfg, true)
	if err != nil {
		t.Fatalf("effective: %v", err)
	}
	if res.Source != "flags" || res.Addr != ":7070" || res.DBPath != "/flag/db" {
		t.Fatalf("flags did not win: %+v", res)
	}
	if res.Config.Journal.CutoffHour != 4 {
		t.Fatalf("env journal settings dropped: %+v", res.Config)
	}
}

func TestEffectiveConfigFileOverEnv(t *testing.T) {
	fileCfg := &Config{}
	fileCfg.Server.Port = 9999
	envCfg := &Config{}
	envCfg.Server.Port = 1111

	res, err := LoadEffectiveConfig(Flags{Set: map[string]bool{}}, fileCfg, true, envCfg, true)
	if err != nil {
		t.Fatalf("effective: %v", err)
	}
	if res.Source != "config" || res.Addr != "0.0.0.0:9999" {
		t.Fatalf("file did not win: %+v", res)
	}
}

func TestEffectiveConfigExplicitMissingFile(t *testing.T) {
	flags := Flags{Config: "/does/not/exist.yaml", Set: map[string]bool{"config": true}}
	if _, err := LoadEffectiveConfig(flags, &Config{}, false, &Config{}, false); err == nil {
		t.Fatalf("explicit --config with missing file should error")
	}
}

func TestEffectiveConfigEnvFallback(t *testing.T) {
	envCfg := &Config{}
	envCfg.Server.DBPath = "/env/db"
	res, err := LoadEffectiveConfig(Flags{Set: map[string]bool{}}, &Config{}, false, envCfg, true)
	if err != nil {
		t.Fatalf("effective: %v", err)
	}
	if res.Source != "env" || res.DBPath != "/env/db" {
		t.Fatalf("env fallback wrong: %+v", res)
	}
}

func TestAPIKeyEnvIndirection(t *testing.T) {
	t.Setenv("JOURNAL_TEST_KEY", "secret")
	l := LLMConfig{APIKeyEnv: "JOURNAL_TEST_KEY"}
	if l.APIKey() != "secret" {
		t.Fatalf("key not read from named env var")
	}
}
