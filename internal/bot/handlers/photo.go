package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kaloriku/kaloribot/internal/database"
)

// Photo handles an inbound food photo: it sends an "analyzing" placeholder,
// downloads the largest photo size, runs the nutrition extractor, persists
// the estimate, and edits the placeholder into either the formatted summary
// or the fixed failure message. The placeholder is always resolved.
func (h *Handlers) Photo(ctx context.Context, b BotAPI, update *models.Update) {
	if update.Message == nil || len(update.Message.Photo) == 0 || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	placeholder, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   h.messages().Analyzing,
	})
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send placeholder message",
			"chat_id", chatID, "user_id", userID, "error", err)
		return
	}

	text, err := h.analyzeAndLog(ctx, b, update.Message.Photo, userID)
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Photo analysis failed",
			"chat_id", chatID, "user_id", userID, "error", err)
		text = h.messages().AnalysisFailed
	}

	if _, err := b.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: placeholder.ID,
		Text:      text,
	}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to edit placeholder message",
			"chat_id", chatID, "message_id", placeholder.ID, "error", err)
	}
}

// analyzeAndLog runs the full photo pipeline and returns the summary text on
// success. Any failure aborts the pipeline; nothing partial is persisted.
func (h *Handlers) analyzeAndLog(ctx context.Context, b BotAPI, photos []models.PhotoSize, userID int64) (string, error) {
	image, err := h.downloadLargestPhoto(ctx, b, photos)
	if err != nil {
		return "", fmt.Errorf("download photo: %w", err)
	}

	estimate, err := h.deps.Extractor.Analyze(ctx, image)
	if err != nil {
		return "", err
	}

	rec := &database.CalorieLog{
		UserID:   userID,
		FoodName: estimate.FoodName,
		Calories: estimate.Calories,
		Protein:  estimate.Protein,
		Carbs:    estimate.Carbs,
		Fat:      estimate.Fat,
	}
	if err := h.deps.Store.InsertCalorieLog(ctx, rec); err != nil {
		return "", err
	}

	return fmt.Sprintf(h.messages().NutritionSummary,
		estimate.FoodName, estimate.Calories, estimate.Protein, estimate.Carbs, estimate.Fat), nil
}

// downloadLargestPhoto fetches the bytes of the largest photo size. Telegram
// orders the sizes ascending, so the last entry is the largest.
func (h *Handlers) downloadLargestPhoto(ctx context.Context, b BotAPI, photos []models.PhotoSize) ([]byte, error) {
	largest := photos[len(photos)-1]

	file, err := b.GetFile(ctx, &tgbot.GetFileParams{FileID: largest.FileID})
	if err != nil {
		return nil, fmt.Errorf("get file info: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.FileDownloadLink(file), nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file body: %w", err)
	}
	return data, nil
}
