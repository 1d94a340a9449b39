// Package telegram owns the transport side of the bot: constructing the
// client, binding handlers, and hosting update delivery either by long
// polling or by a webhook HTTP server.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kaloriku/kaloribot/internal/bot/handlers"
	"github.com/kaloriku/kaloribot/internal/logger"
)

// New creates the Telegram bot client with the logging middleware attached.
func New(token string, log *slog.Logger, opts ...tgbot.Option) (*tgbot.Bot, error) {
	opts = append([]tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
	}, opts...)

	b, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return b, nil
}

// RegisterHandlers binds the command handlers and the photo message handler
// to the bot dispatcher.
func RegisterHandlers(b *tgbot.Bot, h *handlers.Handlers) {
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypePrefix,
		func(ctx context.Context, b *tgbot.Bot, update *models.Update) { h.Start(ctx, b, update) })
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/bmi", tgbot.MatchTypePrefix,
		func(ctx context.Context, b *tgbot.Bot, update *models.Update) { h.BMI(ctx, b, update) })
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/today", tgbot.MatchTypePrefix,
		func(ctx context.Context, b *tgbot.Bot, update *models.Update) { h.Today(ctx, b, update) })

	b.RegisterHandlerMatchFunc(
		func(update *models.Update) bool {
			return update.Message != nil && len(update.Message.Photo) > 0
		},
		func(ctx context.Context, b *tgbot.Bot, update *models.Update) { h.Photo(ctx, b, update) })
}

// SetupCommands publishes the command list shown in the Telegram client UI.
// A failure here is cosmetic and non-fatal.
func SetupCommands(ctx context.Context, b *tgbot.Bot, log *slog.Logger) {
	_, err := b.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "start", Description: "Greeting and dashboard link"},
			{Command: "bmi", Description: "Update profile: /bmi <weight_kg> <height_cm>"},
			{Command: "today", Description: "Show today's calorie totals"},
		},
	})
	if err != nil {
		log.Warn("Failed to register command list", "error", err)
	}
}
