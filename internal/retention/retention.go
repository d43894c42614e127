// Package retention purges stale chat workspaces on a cron schedule.
// Diary drafts are never purged; only workspace transcripts age out.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"journaldb/pkg/config"
	"journaldb/pkg/logger"
	"journaldb/pkg/workspace"
)

// Runner holds what a retention pass needs: the workspace store, the
// age threshold and the dry-run switch.
type Runner struct {
	Workspaces *workspace.Store
	Period     time.Duration
	DryRun     bool
	now        func() time.Time
}

// Start starts the retention scheduler if enabled. Returns a cancel func.
func Start(ctx context.Context, cfg config.RetentionConfig, ws *workspace.Store) (context.CancelFunc, error) {
	if !cfg.Enabled {
		logger.Info("retention_disabled")
		return func() {}, nil
	}

	period := cfg.Period.Duration()
	if period <= 0 {
		period = 30 * 24 * time.Hour
	}

	// map empty cron to default daily @02:00
	cronExpr := cfg.Cron
	if cronExpr == "" {
		cronExpr = "0 2 * * *"
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("retention_invalid_cron", "cron", cfg.Cron)
		return nil, fmt.Errorf("invalid retention cron expression: %s", cfg.Cron)
	}

	r := &Runner{Workspaces: ws, Period: period, DryRun: cfg.DryRun, now: time.Now}
	logger.Info("retention_enabled", "cron", cronExpr, "period", period.String(), "dry_run", cfg.DryRun)
	ctx2, cancel := context.WithCancel(ctx)
	go r.runScheduler(ctx2, cronExpr)
	return cancel, nil
}

// runScheduler uses gronx to compute the next tick for the configured
// cron expression and sleeps until that time.
func (r *Runner) runScheduler(ctx context.Context, cronExpr string) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("retention_scheduler_stopping")
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("retention_nexttick_failed", "cron", cronExpr, "error", err.Error())
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				logger.Info("retention_scheduler_stopping")
				return
			}
			continue
		}

		wait := time.Until(next)
		if wait <= 0 {
			wait = time.Second
		}
		select {
		case <-time.After(wait):
			if _, err := r.RunOnce(); err != nil {
				logger.Error("retention_run_error", "error", err.Error())
			}
		case <-ctx.Done():
			logger.Info("retention_scheduler_stopping")
			return
		}
	}
}

// RunOnce purges every workspace whose sleep-day is older than the
// period and returns the number of purged (or would-be purged) dates.
func (r *Runner) RunOnce() (int, error) {
	nowFn := r.now
	if nowFn == nil {
		nowFn = time.Now
	}
	cutoff := nowFn().Add(-r.Period).Format("2006-01-02")
	dates, err := r.Workspaces.Dates()
	if err != nil {
		return 0, err
	}
	purged := 0
	for _, d := range dates {
		if d >= cutoff {
			continue
		}
		if r.DryRun {
			logger.Info("retention_would_purge", "date", d)
			purged++
			continue
		}
		if err := r.Workspaces.Clear(d); err != nil {
			logger.Error("retention_purge_failed", "date", d, "error", err.Error())
			continue
		}
		logger.Info("retention_purged", "date", d)
		purged++
	}
	logger.Info("retention_run_complete", "purged", purged, "cutoff", cutoff)
	return purged, nil
}
