package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/kaloriku/kaloribot/internal/config"
)

// Host delivers inbound updates to the bot dispatcher until ctx is
// cancelled.
type Host interface {
	Run(ctx context.Context) error
}

// NewHost selects the transport host from configuration.
func NewHost(cfg config.TelegramConfig, b *tgbot.Bot, log *slog.Logger) (Host, error) {
	switch cfg.Mode {
	case config.ModePolling:
		return &pollingHost{bot: b, log: log}, nil
	case config.ModeWebhook:
		return newWebhookHost(cfg.Webhook, b, log), nil
	default:
		return nil, fmt.Errorf("unknown transport mode %q", cfg.Mode)
	}
}

// pollingHost receives updates by long polling the Telegram API.
type pollingHost struct {
	bot *tgbot.Bot
	log *slog.Logger
}

func (p *pollingHost) Run(ctx context.Context) error {
	// A leftover webhook blocks getUpdates; clear it before polling.
	if _, err := p.bot.DeleteWebhook(ctx, &tgbot.DeleteWebhookParams{}); err != nil {
		p.log.Warn("Failed to delete webhook before polling", "error", err)
	}

	p.log.Info("Starting long-poll update loop")
	p.bot.Start(ctx)
	return ctx.Err()
}

// webhookHost serves the Telegram webhook endpoint and a health endpoint,
// and registers the webhook URL on startup with bounded retry.
type webhookHost struct {
	bot       *tgbot.Bot
	cfg       config.WebhookConfig
	log       *slog.Logger
	registrar *webhookRegistrar
}

func newWebhookHost(cfg config.WebhookConfig, b *tgbot.Bot, log *slog.Logger) *webhookHost {
	setWebhook := func(ctx context.Context) error {
		_, err := b.SetWebhook(ctx, &tgbot.SetWebhookParams{
			URL:                cfg.PublicURL,
			DropPendingUpdates: cfg.DropPendingOnStartup,
		})
		return err
	}
	return &webhookHost{
		bot:       b,
		cfg:       cfg,
		log:       log,
		registrar: newWebhookRegistrar(setWebhook, cfg.RegisterMaxAttempts, cfg.RegisterRetryDelay, log),
	}
}

func (w *webhookHost) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	// The liveness probe never touches bot state and must answer even when
	// webhook registration gave up.
	mux.HandleFunc("GET /", func(rw http.ResponseWriter, _ *http.Request) {
		_, _ = rw.Write([]byte("Bot is alive!"))
	})
	mux.Handle("POST /webhook", w.bot.WebhookHandler())

	srv := &http.Server{
		Addr:              w.cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w.log.Info("Starting webhook HTTP server", "addr", w.cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("webhook server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		// Registration failure is not fatal; the server keeps serving the
		// health endpoint regardless.
		w.registrar.Register(ctx)
		return nil
	})

	g.Go(func() error {
		w.bot.StartWebhook(ctx)
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
