package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Run("burst up to capacity", func(t *testing.T) {
		rl := newRateLimiter(10)
		for i := 0; i < 10; i++ {
			assert.True(t, rl.tryAcquire(), "request %d", i)
		}
		assert.False(t, rl.tryAcquire())
	})

	t.Run("refills over time", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		rl := newRateLimiter(60)
		rl.now = func() time.Time { return now }
		rl.lastRefill = now

		for i := 0; i < 60; i++ {
			require.True(t, rl.tryAcquire())
		}
		assert.False(t, rl.tryAcquire())

		// 60 per minute is one per second.
		now = now.Add(500 * time.Millisecond)
		assert.False(t, rl.tryAcquire())
		now = now.Add(600 * time.Millisecond)
		assert.True(t, rl.tryAcquire())
	})

	t.Run("reports wait until next token", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		rl := newRateLimiter(6)
		rl.now = func() time.Time { return now }
		rl.lastRefill = now
		rl.tokens = 0

		delay := rl.reserve()
		assert.InDelta(t, float64(10*time.Second), float64(delay), float64(time.Millisecond))
	})

	t.Run("context cancellation", func(t *testing.T) {
		rl := newRateLimiter(1)
		require.NoError(t, rl.wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() {
			done <- rl.wait(ctx)
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.True(t, errors.Is(err, context.Canceled))
		case <-time.After(5 * time.Second):
			t.Fatal("wait did not return after cancellation")
		}
	})

	t.Run("reset", func(t *testing.T) {
		rl := newRateLimiter(2)
		rl.tryAcquire()
		rl.tryAcquire()
		assert.False(t, rl.tryAcquire())

		rl.reset()
		assert.True(t, rl.tryAcquire())
	})

	t.Run("default rate", func(t *testing.T) {
		assert.InDelta(t, 15, newRateLimiter(0).capacity, 0)
	})
}
