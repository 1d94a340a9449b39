package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// PersistenceError wraps any transport, auth, or schema failure from the
// backing store. Handlers surface it to the user as a generic failure
// message and log the cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store defines the database operations used by the bot. Methods accept
// context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// InsertCalorieLog appends a new nutrition record. Rows never conflict;
	// each photo event produces a fresh one.
	InsertCalorieLog(ctx context.Context, rec *CalorieLog) error

	// UpsertProfile replaces the profile row for rec.UserID, inserting it
	// if absent. Last write wins.
	UpsertProfile(ctx context.Context, rec *Profile) error

	// GetDailyTotals aggregates a user's calorie logs for the day
	// containing 'at' (UTC).
	GetDailyTotals(ctx context.Context, userID int64, at time.Time) (*DailyTotals, error)

	// RunMaintenance refreshes planner statistics on the bot's tables.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore implements Store using sqlx over Postgres.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by the given connection pool.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) InsertCalorieLog(ctx context.Context, rec *CalorieLog) error {
	if rec == nil {
		return &PersistenceError{Op: "insert calorie log", Err: fmt.Errorf("nil record")}
	}
	if rec.UserID == 0 {
		return &PersistenceError{Op: "insert calorie log", Err: fmt.Errorf("record must have a non-zero user_id")}
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO calorie_logs (user_id, food_name, calories, protein, carbs, fat, created_at)
        VALUES (:user_id, :food_name, :calories, :protein, :carbs, :fat, :created_at)`

	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		s.logger.ErrorContext(ctx, "Error inserting calorie log", "user_id", rec.UserID, "error", err)
		return &PersistenceError{Op: "insert calorie log", Err: err}
	}

	s.logger.DebugContext(ctx, "Calorie log inserted",
		"user_id", rec.UserID, "food_name", rec.FoodName, "calories", rec.Calories)
	return nil
}

func (s *sqlxStore) UpsertProfile(ctx context.Context, rec *Profile) error {
	if rec == nil {
		return &PersistenceError{Op: "upsert profile", Err: fmt.Errorf("nil record")}
	}
	if rec.UserID == 0 {
		return &PersistenceError{Op: "upsert profile", Err: fmt.Errorf("record must have a non-zero user_id")}
	}
	rec.UpdatedAt = time.Now().UTC()

	query := `
        INSERT INTO profiles (user_id, username, weight_kg, height_cm, bmi, bmi_category, updated_at)
        VALUES (:user_id, :username, :weight_kg, :height_cm, :bmi, :bmi_category, :updated_at)
        ON CONFLICT (user_id) DO UPDATE SET
            username = EXCLUDED.username,
            weight_kg = EXCLUDED.weight_kg,
            height_cm = EXCLUDED.height_cm,
            bmi = EXCLUDED.bmi,
            bmi_category = EXCLUDED.bmi_category,
            updated_at = EXCLUDED.updated_at`

	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		s.logger.ErrorContext(ctx, "Error upserting profile", "user_id", rec.UserID, "error", err)
		return &PersistenceError{Op: "upsert profile", Err: err}
	}

	s.logger.DebugContext(ctx, "Profile upserted",
		"user_id", rec.UserID, "bmi", rec.BMI, "category", rec.BMICategory)
	return nil
}

func (s *sqlxStore) GetDailyTotals(ctx context.Context, userID int64, at time.Time) (*DailyTotals, error) {
	if userID == 0 {
		return nil, &PersistenceError{Op: "get daily totals", Err: fmt.Errorf("user_id cannot be zero")}
	}

	day := at.UTC().Truncate(24 * time.Hour)

	var totals DailyTotals
	query := `
        SELECT COUNT(*) AS meals,
               COALESCE(SUM(calories), 0) AS calories,
               COALESCE(SUM(protein), 0) AS protein,
               COALESCE(SUM(carbs), 0) AS carbs,
               COALESCE(SUM(fat), 0) AS fat
        FROM calorie_logs
        WHERE user_id = $1 AND created_at >= $2 AND created_at < $3`

	if err := s.db.GetContext(ctx, &totals, query, userID, day, day.Add(24*time.Hour)); err != nil {
		s.logger.ErrorContext(ctx, "Error aggregating daily totals", "user_id", userID, "error", err)
		return nil, &PersistenceError{Op: "get daily totals", Err: err}
	}

	return &totals, nil
}

func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Starting database maintenance (ANALYZE)...")

	for _, table := range []string{"calorie_logs", "profiles"} {
		if _, err := s.db.ExecContext(ctx, "ANALYZE "+table); err != nil {
			s.logger.ErrorContext(ctx, "Database maintenance failed", "table", table, "error", err)
			return &PersistenceError{Op: "analyze " + table, Err: err}
		}
	}

	s.logger.InfoContext(ctx, "Database maintenance completed successfully")
	return nil
}
