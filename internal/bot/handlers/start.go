package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Start greets the user and attaches an inline web-app button opening the
// calorie dashboard.
func (h *Handlers) Start(ctx context.Context, b BotAPI, update *models.Update) {
	if update.Message == nil {
		return
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{
				Text:   h.messages().DashboardLabel,
				WebApp: &models.WebAppInfo{URL: h.deps.Config.DashboardURL},
			},
		}},
	}

	if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.messages().Welcome,
		ReplyMarkup: keyboard,
	}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send welcome message",
			"chat_id", update.Message.Chat.ID, "error", err)
	}
}
