package telegram

import (
	"context"
	"log/slog"
	"time"
)

// RegistrationState tracks webhook registration progress:
// Idle → Attempting → {Registered | GaveUp}.
type RegistrationState int

const (
	StateIdle RegistrationState = iota
	StateAttempting
	StateRegistered
	StateGaveUp
)

func (s RegistrationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAttempting:
		return "attempting"
	case StateRegistered:
		return "registered"
	case StateGaveUp:
		return "gave up"
	default:
		return "unknown"
	}
}

// webhookRegistrar registers the webhook URL with Telegram, retrying a
// bounded number of times with a fixed delay. Container platforms may not
// have working DNS at process start. Giving up is logged but never fatal;
// the health endpoint keeps responding either way.
type webhookRegistrar struct {
	setWebhook  func(ctx context.Context) error
	maxAttempts int
	delay       time.Duration
	log         *slog.Logger

	state RegistrationState
}

func newWebhookRegistrar(setWebhook func(ctx context.Context) error, maxAttempts int, delay time.Duration, log *slog.Logger) *webhookRegistrar {
	return &webhookRegistrar{
		setWebhook:  setWebhook,
		maxAttempts: maxAttempts,
		delay:       delay,
		log:         log,
		state:       StateIdle,
	}
}

// Register runs the retry loop until registration succeeds, the attempt
// budget is exhausted, or ctx is cancelled. It returns the terminal state.
func (r *webhookRegistrar) Register(ctx context.Context) RegistrationState {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		r.state = StateAttempting

		err := r.setWebhook(ctx)
		if err == nil {
			r.state = StateRegistered
			r.log.Info("Webhook registered", "attempt", attempt)
			return r.state
		}

		r.log.Warn("Webhook registration attempt failed",
			"attempt", attempt, "max_attempts", r.maxAttempts, "error", err)

		if attempt == r.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			r.log.Warn("Webhook registration cancelled", "error", ctx.Err())
			return r.state
		case <-time.After(r.delay):
		}
	}

	r.state = StateGaveUp
	r.log.Error("Giving up on webhook registration; health endpoint stays up",
		"attempts", r.maxAttempts)
	return r.state
}

// State returns the current registration state.
func (r *webhookRegistrar) State() RegistrationState {
	return r.state
}
