// Package app wires the stores, API and background runners into a
// single server lifecycle.
package app

import (
	"context"
	"fmt"

	"journaldb/internal/retention"
	"journaldb/pkg/api"
	"journaldb/pkg/community"
	"journaldb/pkg/config"
	"journaldb/pkg/contacts"
	"journaldb/pkg/diary"
	"journaldb/pkg/httpx"
	"journaldb/pkg/llm"
	"journaldb/pkg/store"
	"journaldb/pkg/workspace"
)

// App encapsulates the server components and lifecycle.
type App struct {
	eff       config.EffectiveConfigResult
	version   string
	commit    string
	buildDate string

	api        *api.API
	workspaces *workspace.Store
	srv        *httpx.Server
}

// New opens the database and builds the feature stores and API. It does
// not start the HTTP server; call Run to start it and block until
// shutdown.
func New(eff config.EffectiveConfigResult, version, commit, buildDate string) (*App, error) {
	if eff.DBPath == "" {
		return nil, fmt.Errorf("db path not configured")
	}
	if err := store.Open(eff.DBPath); err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", eff.DBPath, err)
	}

	kv := store.NewKV()
	diaries := diary.NewStore(kv)
	workspaces := workspace.NewStore(kv)
	feed := community.NewStore(kv, diaries)
	threads := contacts.NewStore(kv)

	cfg := eff.Config
	client := llm.New(cfg.LLM.Endpoint, cfg.LLM.Model, cfg.LLM.APIKey())

	a := &App{
		eff:       eff,
		version:   version,
		commit:    commit,
		buildDate: buildDate,
		api: api.New(diaries, workspaces, feed, threads, client, api.Options{
			CutoffHour: cfg.Journal.CutoffHour,
			RateRPS:    cfg.Security.RateLimit.RPS,
			RateBurst:  cfg.Security.RateLimit.Burst,
		}),
		workspaces: workspaces,
	}
	return a, nil
}

// Run starts the retention scheduler and the HTTP server, and blocks
// until ctx is canceled or a fatal server error occurs.
func (a *App) Run(ctx context.Context) error {
	a.printBanner()

	cancelRetention, err := retention.Start(ctx, a.eff.Config.Retention, a.workspaces)
	if err != nil {
		return err
	}
	defer cancelRetention()

	errCh := a.startHTTP()

	select {
	case <-ctx.Done():
		a.shutdown()
		return nil
	case err := <-errCh:
		return err
	}
}
