package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestWrapperOpensAfterConsecutiveFailures(t *testing.T) {
	cfg := DefaultConfig("test-open")
	cfg.Timeout = time.Hour
	w := NewWrapper(cfg)
	ctx := context.Background()
	boom := errors.New("smtp down")

	calls := 0
	fail := func(context.Context) error {
		calls++
		return boom
	}

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, w.Do(ctx, fail), boom)
	}
	assert.True(t, w.IsOpen())

	err := w.Do(ctx, fail)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, calls, "open breaker must not call through")
}

func TestWrapperPassesThroughSuccess(t *testing.T) {
	w := NewWrapper(DefaultConfig("test-success"))

	called := false
	err := w.Do(context.Background(), func(context.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, gobreaker.StateClosed, w.State())
}

func TestWrapperCanceledContext(t *testing.T) {
	w := NewWrapper(DefaultConfig("test-canceled"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Do(ctx, func(context.Context) error {
		t.Fatal("must not be called")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
