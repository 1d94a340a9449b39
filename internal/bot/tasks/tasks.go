// Package tasks defines the scheduled background jobs run alongside the
// transport host.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/kaloriku/kaloribot/internal/database"
)

// Deps bundles the dependencies shared by all tasks.
type Deps struct {
	Logger *slog.Logger
	Store  database.Store
}

// Task is one scheduled job.
type Task struct {
	Name string
	Cron string
	Fn   func()
}

// RegisterAll returns every scheduled task.
func RegisterAll(deps Deps) []Task {
	return []Task{
		newMaintenanceTask(deps),
	}
}

// newMaintenanceTask refreshes planner statistics nightly, off-peak.
func newMaintenanceTask(deps Deps) Task {
	return Task{
		Name: "db_maintenance",
		Cron: "0 4 * * *",
		Fn: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if err := deps.Store.RunMaintenance(ctx); err != nil {
				deps.Logger.Error("Scheduled database maintenance failed", "error", err)
				return
			}
			deps.Logger.Info("Scheduled database maintenance completed")
		},
	}
}
