package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot/models"
)

// Today replies with the user's aggregated calorie and macro totals for the
// current day.
func (h *Handlers) Today(ctx context.Context, b BotAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	totals, err := h.deps.Store.GetDailyTotals(ctx, update.Message.From.ID, h.now())
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to aggregate daily totals",
			"user_id", update.Message.From.ID, "error", err)
		h.reply(ctx, b, update, h.messages().GeneralError)
		return
	}

	if totals.Meals == 0 {
		h.reply(ctx, b, update, h.messages().NoLogs)
		return
	}

	h.reply(ctx, b, update, fmt.Sprintf(h.messages().DailyTotal,
		totals.Calories, totals.Protein, totals.Carbs, totals.Fat, totals.Meals))
}
