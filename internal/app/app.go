package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zapdeck/zapdeck/internal/config"
	"github.com/zapdeck/zapdeck/internal/convo"
	"github.com/zapdeck/zapdeck/internal/creds"
	"github.com/zapdeck/zapdeck/internal/gateway"
	"github.com/zapdeck/zapdeck/internal/hub"
	"github.com/zapdeck/zapdeck/internal/poller"
	"github.com/zapdeck/zapdeck/internal/prefs"
	"github.com/zapdeck/zapdeck/internal/registry"
	"github.com/zapdeck/zapdeck/internal/stream"
	"github.com/zapdeck/zapdeck/internal/ui"
)

// Options configure the zapdeck application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/zapdeck/prefs.toml
	CredsPath   string // empty uses default ~/.config/zapdeck/credentials.toml
	PollSeconds int    // pairing poll cadence; zero uses config/default
}

// Run boots the zapdeck TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	account, err := creds.Load(opts.CredsPath)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	logger, closeLog := openLogger()
	defer closeLog()

	client, err := gateway.NewClient(cfg.APIBaseURL(), account.Token)
	if err != nil {
		return fmt.Errorf("init gateway client: %w", err)
	}

	if opts.PollSeconds > 0 {
		cfg.PollSeconds = opts.PollSeconds
	}
	interval := time.Duration(cfg.PollSeconds) * time.Second

	reg := registry.New()
	convos := convo.NewStore()
	poll := poller.New(client, reg, logger, interval)
	engine := hub.New(client, reg, convos, poll, logger)

	// Initial one-shot load; the push channel supersedes it from here.
	engine.Bootstrap(ctx)
	if last := userPrefs.LastSession; last != "" {
		if _, ok := reg.Get(last); ok {
			engine.SelectSession(ctx, last)
		}
	}

	sc := stream.New(cfg.StreamURL(), logger)
	go func() {
		if err := sc.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("stream terminated", slog.String("error", err.Error()))
		}
	}()
	go engine.Run(ctx, sc.Events())

	defer poll.Stop()

	uiOpts := ui.Options{
		Context:   ctx,
		Hub:       engine,
		Account:   account,
		Config:    cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
