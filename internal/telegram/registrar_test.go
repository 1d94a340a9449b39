package telegram

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRegistrarSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	r := newWebhookRegistrar(func(context.Context) error {
		calls++
		return nil
	}, 5, time.Millisecond, discardLogger())

	state := r.Register(context.Background())

	assert.Equal(t, StateRegistered, state)
	assert.Equal(t, StateRegistered, r.State())
	assert.Equal(t, 1, calls)
}

func TestRegistrarRetriesUntilSuccess(t *testing.T) {
	calls := 0
	r := newWebhookRegistrar(func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("dns not ready")
		}
		return nil
	}, 5, time.Millisecond, discardLogger())

	state := r.Register(context.Background())

	assert.Equal(t, StateRegistered, state)
	assert.Equal(t, 3, calls)
}

func TestRegistrarGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	r := newWebhookRegistrar(func(context.Context) error {
		calls++
		return errors.New("dns not ready")
	}, 3, time.Millisecond, discardLogger())

	state := r.Register(context.Background())

	assert.Equal(t, StateGaveUp, state)
	assert.Equal(t, 3, calls, "attempt budget is bounded")
}

func TestRegistrarStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	r := newWebhookRegistrar(func(context.Context) error {
		calls++
		cancel()
		return errors.New("dns not ready")
	}, 10, time.Minute, discardLogger())

	state := r.Register(ctx)

	assert.Equal(t, StateAttempting, state, "cancellation is not a give-up")
	assert.Equal(t, 1, calls)
}

func TestRegistrationStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "attempting", StateAttempting.String())
	assert.Equal(t, "registered", StateRegistered.String())
	assert.Equal(t, "gave up", StateGaveUp.String())
}
