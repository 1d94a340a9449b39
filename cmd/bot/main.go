// Package main contains the entrypoint for the Telegram calorie bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaloriku/kaloribot/internal/bot"
	"github.com/kaloriku/kaloribot/internal/bot/handlers"
	"github.com/kaloriku/kaloribot/internal/bot/tasks"
	"github.com/kaloriku/kaloribot/internal/config"
	"github.com/kaloriku/kaloribot/internal/database"
	"github.com/kaloriku/kaloribot/internal/logger"
	"github.com/kaloriku/kaloribot/internal/nutrition"
	"github.com/kaloriku/kaloribot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all application components (config, logger, db, extractor,
// telegram host, scheduler), starts the bot, and returns an exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.New(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.URL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	extractor, err := nutrition.NewGeminiExtractor(ctx, cfg.Gemini, log)
	if err != nil {
		log.Error("Failed to initialize Gemini extractor", "error", err)
		return 1
	}

	tg, err := telegram.New(cfg.Telegram.Token, log)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	h := handlers.New(handlers.Deps{
		Logger:    log,
		Store:     store,
		Extractor: extractor,
		Config:    cfg,
	})
	telegram.RegisterHandlers(tg, h)
	telegram.SetupCommands(ctx, tg, log)

	host, err := telegram.NewHost(cfg.Telegram, tg, log)
	if err != nil {
		log.Error("Failed to create transport host", "error", err)
		return 1
	}

	app, err := bot.New(log, host, tasks.RegisterAll(tasks.Deps{Logger: log, Store: store}))
	if err != nil {
		log.Error("Failed to initialize bot", "error", err)
		return 1
	}

	log.Info("Starting bot...", "mode", cfg.Telegram.Mode)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Bot stopped due to error", "error", err)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
