package nutrition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/kaloriku/kaloribot/internal/config"
)

// analysisPrompt is the fixed instruction sent alongside every food photo.
const analysisPrompt = `Analyze this food image. Return ONLY a raw JSON object:
{"food_name": "name", "calories": 100, "protein": 5.0, "carbs": 10.0, "fat": 2.0}
Do not include markdown tags or other text.`

// GeminiExtractor implements Extractor using the Google Gemini SDK.
type GeminiExtractor struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewGeminiExtractor creates a Gemini-backed extractor from the given
// configuration.
func NewGeminiExtractor(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*GeminiExtractor, error) {
	if cfg.Token == "" {
		return nil, errors.New("gemini token is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("gemini model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Token,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiExtractor{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger.With("component", "gemini"),
	}, nil
}

// Analyze sends the image plus the fixed instruction to the model and
// parses the response into an Estimate.
func (g *GeminiExtractor) Analyze(ctx context.Context, image []byte) (*Estimate, error) {
	if len(image) == 0 {
		return nil, &ExtractionError{Stage: StageModelCall, Err: errors.New("empty image")}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: image}},
			{Text: analysisPrompt},
		},
	}}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return nil, &ExtractionError{Stage: StageModelCall, Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &ExtractionError{Stage: StageModelCall, Err: errors.New("no response candidates returned")}
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		text.WriteString(part.Text)
	}

	estimate, err := ParseEstimate(text.String())
	if err != nil {
		g.logger.ErrorContext(ctx, "Failed to parse Gemini response", "error", err, "raw_response", text.String())
		return nil, err
	}

	g.logger.InfoContext(ctx, "Food image analyzed",
		"food_name", estimate.FoodName,
		"calories", estimate.Calories,
		"duration_ms", time.Since(start).Milliseconds())

	return estimate, nil
}
