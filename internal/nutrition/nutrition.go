// Package nutrition turns a food photo into a structured nutrition estimate
// using a vision-capable model, treating the model output as an untrusted
// string that must pass a strict schema-validating parse.
package nutrition

import (
	"context"
	"fmt"
)

// Estimate is the five-field nutrition record derived from a food photo.
// It carries no user id; the caller attaches one before persisting.
type Estimate struct {
	FoodName string
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Extractor analyzes raw JPEG image bytes and returns a nutrition estimate.
type Extractor interface {
	Analyze(ctx context.Context, image []byte) (*Estimate, error)
}

// Extraction stages reported by ExtractionError.
const (
	StageModelCall = "model call"
	StageParse     = "parse"
	StageSchema    = "schema"
)

// ExtractionError reports a failed extraction: the model call errored, the
// cleaned text was not valid JSON, or a required field was absent. Callers
// must treat any ExtractionError as "could not analyze this image"; partial
// data is never returned alongside one.
type ExtractionError struct {
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("nutrition extraction failed at %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
