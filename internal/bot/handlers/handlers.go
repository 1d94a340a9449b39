// Package handlers contains the Telegram command and message handlers.
// Each handler is stateless: it reads one inbound update, talks to the
// extractor and store as needed, and replies. Errors never propagate to the
// user beyond the fixed per-command message; causes are logged.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kaloriku/kaloribot/internal/config"
	"github.com/kaloriku/kaloribot/internal/database"
	"github.com/kaloriku/kaloribot/internal/nutrition"
)

// BotAPI is the slice of the Telegram bot client the handlers use. It is
// satisfied by *bot.Bot and substituted with a fake in tests.
type BotAPI interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *tgbot.EditMessageTextParams) (*models.Message, error)
	GetFile(ctx context.Context, params *tgbot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

// Deps bundles the dependencies shared by all handlers.
type Deps struct {
	Logger    *slog.Logger
	Store     database.Store
	Extractor nutrition.Extractor
	Config    *config.Config
}

// Handlers holds the bound command handlers.
type Handlers struct {
	deps Deps

	// httpClient downloads photo files from Telegram's file API.
	httpClient *http.Client

	// now is replaceable in tests.
	now func() time.Time
}

// New creates the handler set from its dependencies.
func New(deps Deps) *Handlers {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Handlers{
		deps:       deps,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (h *Handlers) messages() config.MessagesConfig {
	return h.deps.Config.Telegram.Messages
}

// reply sends a plain text message to the chat of the inbound update.
func (h *Handlers) reply(ctx context.Context, b BotAPI, update *models.Update, text string) {
	if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send reply",
			"chat_id", update.Message.Chat.ID, "error", err)
	}
}
