// Package logger provides the application slog logger and a Telegram bot
// middleware that logs inbound updates.
package logger

import (
	"context"
	"log/slog"
	"os"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// New builds a slog.Logger writing to stderr at the given level, using a
// JSON handler when json is true and a text handler otherwise.
func New(level string, json bool) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// Middleware returns a bot middleware that logs every dispatched update
// before handing it to the next handler.
func Middleware(log *slog.Logger) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update != nil && update.Message != nil {
				attrs := []any{
					"update_id", update.ID,
					"chat_id", update.Message.Chat.ID,
					"kind", updateKind(update.Message),
				}
				if update.Message.From != nil {
					attrs = append(attrs,
						"user_id", update.Message.From.ID,
						"username", update.Message.From.Username)
				}
				log.Debug("Dispatching update", attrs...)
			}
			next(ctx, b, update)
		}
	}
}

func updateKind(msg *models.Message) string {
	switch {
	case len(msg.Photo) > 0:
		return "photo"
	case msg.Text != "":
		return "text"
	default:
		return "other"
	}
}
