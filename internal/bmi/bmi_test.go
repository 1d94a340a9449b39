package bmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		heightCm float64
		expected float64
	}{
		{name: "typical adult", weightKg: 70, heightCm: 170, expected: 24.2},
		{name: "rounded to one decimal", weightKg: 80, heightCm: 175, expected: 26.1},
		{name: "light and short", weightKg: 45, heightCm: 160, expected: 17.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.weightKg, tt.heightCm)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCalculateInvalidInput(t *testing.T) {
	for _, tt := range []struct {
		name     string
		weightKg float64
		heightCm float64
	}{
		{name: "zero weight", weightKg: 0, heightCm: 170},
		{name: "negative weight", weightKg: -5, heightCm: 170},
		{name: "zero height", weightKg: 70, heightCm: 0},
		{name: "negative height", weightKg: 70, heightCm: -170},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.weightKg, tt.heightCm)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		bmi      float64
		expected Category
	}{
		{bmi: 18.4, expected: Underweight},
		{bmi: 18.5, expected: Normal},
		{bmi: 24.9, expected: Normal},
		{bmi: 25.0, expected: Overweight},
		{bmi: 10.0, expected: Underweight},
		{bmi: 40.0, expected: Overweight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CategoryOf(tt.bmi), "bmi=%v", tt.bmi)
	}
}
