package nutrition

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
)

// StripFence removes a leading/trailing markdown code fence (with or
// without a "json" language tag) from model output. It is idempotent and
// leaves already-clean input untouched.
func StripFence(s string) string {
	s = strings.TrimSpace(s)

	start := strings.Index(s, "```json")
	if start == -1 {
		start = strings.Index(s, "```")
		if start == -1 {
			return s
		}
		start += 3
	} else {
		start += len("```json")
	}

	end := strings.Index(s[start:], "```")
	if end == -1 {
		return strings.TrimSpace(s[start:])
	}
	return strings.TrimSpace(s[start : start+end])
}

// rawEstimate uses pointer fields so absent keys are distinguishable from
// zero values.
type rawEstimate struct {
	FoodName *string  `json:"food_name"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

// ParseEstimate validates free-form model output into an Estimate. The text
// may wrap the JSON object in a markdown fence; anything that is not a JSON
// object carrying all five required fields yields an ExtractionError.
func ParseEstimate(text string) (*Estimate, error) {
	clean := StripFence(text)
	if clean == "" {
		return nil, &ExtractionError{Stage: StageParse, Err: errors.New("empty model response")}
	}

	var raw rawEstimate
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, &ExtractionError{Stage: StageParse, Err: err}
	}

	var missing []string
	if raw.FoodName == nil || strings.TrimSpace(*raw.FoodName) == "" {
		missing = append(missing, "food_name")
	}
	if raw.Calories == nil {
		missing = append(missing, "calories")
	}
	if raw.Protein == nil {
		missing = append(missing, "protein")
	}
	if raw.Carbs == nil {
		missing = append(missing, "carbs")
	}
	if raw.Fat == nil {
		missing = append(missing, "fat")
	}
	if len(missing) > 0 {
		return nil, &ExtractionError{
			Stage: StageSchema,
			Err:   errors.New("missing required fields: " + strings.Join(missing, ", ")),
		}
	}

	return &Estimate{
		FoodName: strings.TrimSpace(*raw.FoodName),
		Calories: int(math.Round(*raw.Calories)),
		Protein:  *raw.Protein,
		Carbs:    *raw.Carbs,
		Fat:      *raw.Fat,
	}, nil
}
