// Package app wires the bot together and owns the run lifecycle:
// gate check, fetch, dispatch. One-shot by default; serve mode adds an
// embedded cron schedule.
package app

import (
	"context"
	"sync"
	"time"

	"mcqbot/internal/config"
	"mcqbot/internal/dispatch"
	"mcqbot/internal/gate"
	"mcqbot/internal/question"
	"mcqbot/internal/quotes"
	"mcqbot/internal/telegram"
	"mcqbot/pkg/logx"
)

type App struct {
	log logx.Logger

	// sender is fixed for the process lifetime: its settings come from
	// the environment, which cannot change under a running process.
	sender *telegram.Sender

	mu         sync.Mutex
	cfg        *config.Config
	gate       *gate.Gate
	fetcher    *question.Client
	dispatcher *dispatch.Dispatcher
}

func New(cfg *config.Config, log logx.Logger) (*App, error) {
	sender, err := telegram.New(telegram.Config{
		Token:      cfg.Telegram.Token,
		ChannelID:  cfg.Telegram.ChannelID,
		RatePerSec: cfg.Telegram.RatePerSec,
	}, log)
	if err != nil {
		return nil, err
	}

	a := &App{log: log, sender: sender}
	if err := a.apply(cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// apply rebuilds the per-run components from cfg. Called at startup and
// on config hot reload in serve mode.
func (a *App) apply(cfg *config.Config) error {
	g, err := gate.New(cfg.Window.Timezone, cfg.Window.StartHour, cfg.Window.EndHour)
	if err != nil {
		return err
	}

	fetcher, err := question.NewClient(cfg.Source.URL, cfg.FetchTimeout(question.DefaultFetchTimeout), a.log)
	if err != nil {
		return err
	}

	var qp dispatch.QuoteProvider
	if cfg.Promo.Enabled && cfg.Promo.QuoteFeed != "" {
		qp = quotes.NewClient(cfg.Promo.QuoteFeed, cfg.Promo.QuoteSampleSize, cfg.Promo.QuoteMaxLen, a.log)
	}
	dispatcher := dispatch.New(a.sender, qp, dispatch.PromoConfig{
		Enabled: cfg.Promo.Enabled,
		Text:    cfg.Promo.Text,
	}, a.log)

	a.mu.Lock()
	a.cfg = cfg
	a.gate = g
	a.fetcher = fetcher
	a.dispatcher = dispatcher
	a.mu.Unlock()
	return nil
}

// RunOnce performs one fetch-and-publish cycle. A run outside the
// posting window is a successful no-op; fetch or primary send failures
// propagate to the caller, which maps them to exit status 1.
func (a *App) RunOnce(ctx context.Context) error {
	a.mu.Lock()
	g := a.gate
	fetcher := a.fetcher
	dispatcher := a.dispatcher
	a.mu.Unlock()

	now := time.Now()
	if !g.Allows(now) {
		a.log.Info("outside posting window; skipping run",
			logx.String("window", g.Window()),
			logx.Time("now", now.In(g.Location())),
		)
		return nil
	}

	q, err := fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	if err := dispatcher.Dispatch(ctx, q); err != nil {
		return err
	}

	a.log.Info("run completed", logx.String("id", q.ID.String()))
	return nil
}
