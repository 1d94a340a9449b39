// Package bmi computes body-mass-index values and categories.
package bmi

import (
	"errors"
	"math"
)

// Category of a BMI value.
type Category string

const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
)

// Category thresholds.
const (
	underweightBelow = 18.5
	overweightFrom   = 25.0
)

// ErrInvalidInput reports non-positive weight or height.
var ErrInvalidInput = errors.New("weight and height must be positive")

// Calculate returns the BMI for weight in kilograms and height in
// centimeters, rounded to one decimal place.
func Calculate(weightKg, heightCm float64) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, ErrInvalidInput
	}

	h := heightCm / 100.0
	v := weightKg / (h * h)
	return math.Round(v*10) / 10, nil
}

// CategoryOf maps a BMI value to its category.
func CategoryOf(v float64) Category {
	switch {
	case v < underweightBelow:
		return Underweight
	case v >= overweightFrom:
		return Overweight
	default:
		return Normal
	}
}
