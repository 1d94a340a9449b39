package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/kaloriku/kaloribot/internal/bmi"
	"github.com/kaloriku/kaloribot/internal/database"
)

// BMI handles "/bmi <weight_kg> <height_cm>": it computes the index and
// category, upserts the user's profile, and replies with the result.
// Malformed arguments get the usage hint and write nothing.
func (h *Handlers) BMI(ctx context.Context, b BotAPI, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	weight, height, err := parseBMIArgs(update.Message.Text)
	if err != nil {
		h.deps.Logger.DebugContext(ctx, "Rejected /bmi arguments",
			"user_id", update.Message.From.ID, "text", update.Message.Text, "error", err)
		h.reply(ctx, b, update, h.messages().BMIUsage)
		return
	}

	value, err := bmi.Calculate(weight, height)
	if err != nil {
		h.deps.Logger.DebugContext(ctx, "Rejected /bmi values",
			"user_id", update.Message.From.ID, "weight_kg", weight, "height_cm", height, "error", err)
		h.reply(ctx, b, update, h.messages().BMIUsage)
		return
	}
	category := bmi.CategoryOf(value)

	profile := &database.Profile{
		UserID:      update.Message.From.ID,
		WeightKg:    weight,
		HeightCm:    height,
		BMI:         value,
		BMICategory: string(category),
	}
	if username := update.Message.From.Username; username != "" {
		profile.Username = sql.NullString{String: username, Valid: true}
	}

	if err := h.deps.Store.UpsertProfile(ctx, profile); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to upsert profile",
			"user_id", update.Message.From.ID, "error", err)
		h.reply(ctx, b, update, h.messages().GeneralError)
		return
	}

	h.reply(ctx, b, update, fmt.Sprintf(h.messages().BMIResult, value, category))
}

// parseBMIArgs extracts the two positional numeric arguments from the
// command text.
func parseBMIArgs(text string) (weightKg, heightCm float64, err error) {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("expected 2 arguments, got %d", len(fields)-1)
	}

	weightKg, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid weight %q: %w", fields[1], err)
	}

	heightCm, err = strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height %q: %w", fields[2], err)
	}

	return weightKg, heightCm, nil
}
