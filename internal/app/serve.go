package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"mcqbot/internal/config"
	"mcqbot/pkg/logx"
)

// Serve runs the bot on an embedded cron schedule until ctx is done.
// The gate still applies per tick, so an hourly spec plus an 11-22
// window yields eleven posts a day. When cfgPath is set, the YAML file
// is watched and schedule/window/promo edits apply without a restart.
func (a *App) Serve(ctx context.Context, cfgPath string) error {
	a.mu.Lock()
	spec := a.cfg.Schedule.Spec
	loc := a.gate.Location()
	window := a.gate.Window()
	a.mu.Unlock()

	c := cron.New(
		cron.WithLocation(loc),
		// A slow feed must not stack runs behind itself.
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{a.log})),
	)

	job := func() {
		if err := a.RunOnce(ctx); err != nil {
			a.log.Error("scheduled run failed", logx.Err(err))
		}
	}

	entryID, err := c.AddFunc(spec, job)
	if err != nil {
		return fmt.Errorf("schedule spec %q: %w", spec, err)
	}
	c.Start()
	a.log.Info("scheduler started", logx.String("spec", spec), logx.String("window", window))

	if cfgPath != "" {
		watcher := config.NewWatcher(cfgPath, a.log)
		go func() {
			err := watcher.Watch(ctx, func(cfg *config.Config) {
				if err := a.apply(cfg); err != nil {
					a.log.Warn("config apply failed; keeping previous", logx.Err(err))
					return
				}
				// Cron keeps its start-time location; a timezone change
				// needs a restart to move the tick times.
				if cfg.Window.Timezone != "" && a.gateLocationName() != loc.String() {
					a.log.Warn("timezone change requires restart to take effect on the schedule")
				}
				if cfg.Schedule.Spec != spec {
					id, err := c.AddFunc(cfg.Schedule.Spec, job)
					if err != nil {
						a.log.Warn("invalid schedule spec; keeping previous",
							logx.String("spec", cfg.Schedule.Spec), logx.Err(err))
						return
					}
					c.Remove(entryID)
					entryID = id
					spec = cfg.Schedule.Spec
					a.log.Info("schedule updated", logx.String("spec", spec))
				}
			})
			if err != nil {
				a.log.Warn("config watcher stopped", logx.Err(err))
			}
		}()
	}

	<-ctx.Done()
	// Let an in-flight run finish before returning.
	<-c.Stop().Done()
	a.log.Info("scheduler stopped")
	return nil
}

func (a *App) gateLocationName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gate.Location().String()
}

// cronLogger adapts logx to cron's logging interface. Only the skip
// notices from SkipIfStillRunning come through here.
type cronLogger struct{ log logx.Logger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.log.Debug("cron: "+msg, logx.Any("kv", kv))
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.log.Error("cron: "+msg, logx.Err(err), logx.Any("kv", kv))
}
