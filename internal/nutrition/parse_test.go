package nutrition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean input unchanged",
			input:    `{"food_name": "rice"}`,
			expected: `{"food_name": "rice"}`,
		},
		{
			name:     "json tagged fence",
			input:    "```json\n{\"food_name\": \"rice\"}\n```",
			expected: `{"food_name": "rice"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"food_name\": \"rice\"}\n```",
			expected: `{"food_name": "rice"}`,
		},
		{
			name:     "unterminated fence",
			input:    "```json\n{\"food_name\": \"rice\"}",
			expected: `{"food_name": "rice"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{}\n```\n ",
			expected: `{}`,
		},
		{
			name:     "preamble before fence",
			input:    "Here is the result:\n```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripFence(tt.input))
		})
	}
}

func TestStripFenceIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"food_name\": \"rice\"}\n```",
		`{"food_name": "rice"}`,
	}
	for _, input := range inputs {
		once := StripFence(input)
		assert.Equal(t, once, StripFence(once))
	}
}

func TestParseEstimate(t *testing.T) {
	const full = `{"food_name": "Nasi Goreng", "calories": 450, "protein": 15.5, "carbs": 60.0, "fat": 12.3}`

	t.Run("raw json", func(t *testing.T) {
		est, err := ParseEstimate(full)
		require.NoError(t, err)
		assert.Equal(t, &Estimate{
			FoodName: "Nasi Goreng",
			Calories: 450,
			Protein:  15.5,
			Carbs:    60.0,
			Fat:      12.3,
		}, est)
	})

	t.Run("fenced json yields same record", func(t *testing.T) {
		raw, err := ParseEstimate(full)
		require.NoError(t, err)
		fenced, err := ParseEstimate("```json\n" + full + "\n```")
		require.NoError(t, err)
		assert.Equal(t, raw, fenced)
	})

	t.Run("fractional calories rounded", func(t *testing.T) {
		est, err := ParseEstimate(`{"food_name": "soup", "calories": 99.6, "protein": 1, "carbs": 2, "fat": 3}`)
		require.NoError(t, err)
		assert.Equal(t, 100, est.Calories)
	})

	t.Run("extra fields ignored", func(t *testing.T) {
		est, err := ParseEstimate(`{"food_name": "soup", "calories": 50, "protein": 1, "carbs": 2, "fat": 3, "confidence": 0.9}`)
		require.NoError(t, err)
		assert.Equal(t, "soup", est.FoodName)
	})
}

func TestParseEstimateFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		stage string
	}{
		{
			name:  "empty response",
			input: "",
			stage: StageParse,
		},
		{
			name:  "not json",
			input: "I cannot identify this food.",
			stage: StageParse,
		},
		{
			name:  "missing calories",
			input: `{"food_name": "rice", "protein": 1, "carbs": 2, "fat": 3}`,
			stage: StageSchema,
		},
		{
			name:  "missing food name",
			input: `{"calories": 100, "protein": 1, "carbs": 2, "fat": 3}`,
			stage: StageSchema,
		},
		{
			name:  "blank food name",
			input: `{"food_name": "  ", "calories": 100, "protein": 1, "carbs": 2, "fat": 3}`,
			stage: StageSchema,
		},
		{
			name:  "missing macros",
			input: `{"food_name": "rice", "calories": 100}`,
			stage: StageSchema,
		},
		{
			name:  "non-numeric calories",
			input: `{"food_name": "rice", "calories": "lots", "protein": 1, "carbs": 2, "fat": 3}`,
			stage: StageParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := ParseEstimate(tt.input)
			assert.Nil(t, est)

			var extractErr *ExtractionError
			require.ErrorAs(t, err, &extractErr)
			assert.Equal(t, tt.stage, extractErr.Stage)
		})
	}
}

func TestExtractionErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ExtractionError{Stage: StageModelCall, Err: cause}
	assert.ErrorIs(t, err, cause)
}
