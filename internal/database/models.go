package database

import (
	"database/sql"
	"time"
)

// CalorieLog is one nutrition estimate produced from a food photo. Rows are
// append-only; the dashboard reads them, the bot never updates or deletes.
type CalorieLog struct {
	ID        uint      `db:"id"`
	UserID    int64     `db:"user_id"`
	FoodName  string    `db:"food_name"`
	Calories  int       `db:"calories"`
	Protein   float64   `db:"protein"`
	Carbs     float64   `db:"carbs"`
	Fat       float64   `db:"fat"`
	CreatedAt time.Time `db:"created_at"`
}

// Profile is a user's body profile, replaced wholesale on every /bmi
// invocation. user_id is the Telegram user id and the primary key, so each
// user has at most one live row.
type Profile struct {
	UserID      int64          `db:"user_id"`
	Username    sql.NullString `db:"username"`
	WeightKg    float64        `db:"weight_kg"`
	HeightCm    float64        `db:"height_cm"`
	BMI         float64        `db:"bmi"`
	BMICategory string         `db:"bmi_category"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// DailyTotals aggregates a user's calorie logs for one day.
type DailyTotals struct {
	Meals    int     `db:"meals"`
	Calories int     `db:"calories"`
	Protein  float64 `db:"protein"`
	Carbs    float64 `db:"carbs"`
	Fat      float64 `db:"fat"`
}
