// Package bot orchestrates the application components: the transport host
// and the background task scheduler.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/kaloriku/kaloribot/internal/bot/tasks"
	"github.com/kaloriku/kaloribot/internal/telegram"
)

// Bot runs the transport host and the scheduler together.
type Bot struct {
	log   *slog.Logger
	host  telegram.Host
	sched gocron.Scheduler
}

// New creates the orchestrator and schedules the given tasks.
func New(log *slog.Logger, host telegram.Host, taskList []tasks.Task) (*Bot, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	for _, t := range taskList {
		if _, err := sched.NewJob(
			gocron.CronJob(t.Cron, false),
			gocron.NewTask(t.Fn),
			gocron.WithName(t.Name),
		); err != nil {
			return nil, fmt.Errorf("failed to schedule task %q: %w", t.Name, err)
		}
		log.Info("Scheduled task", "name", t.Name, "cron", t.Cron)
	}

	return &Bot{log: log, host: host, sched: sched}, nil
}

// Run starts the scheduler and blocks on the transport host until ctx is
// cancelled or the host fails.
func (b *Bot) Run(ctx context.Context) error {
	b.sched.Start()
	defer func() {
		if err := b.sched.Shutdown(); err != nil {
			b.log.Error("Error shutting down scheduler", "error", err)
		}
	}()

	return b.host.Run(ctx)
}
