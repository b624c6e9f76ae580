package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestLimiter(rpm int) (*rateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(rpm)
	rl.now = clock.Now
	rl.lastRefill = clock.now
	return rl, clock
}

func TestRateLimiter(t *testing.T) {
	t.Run("burst up to capacity", func(t *testing.T) {
		rl, _ := newTestLimiter(5)
		for i := 0; i < 5; i++ {
			assert.True(t, rl.tryAcquire(), "attempt %d", i+1)
		}
		assert.False(t, rl.tryAcquire())
	})

	t.Run("refills over time", func(t *testing.T) {
		rl, clock := newTestLimiter(60)
		for i := 0; i < 60; i++ {
			require.True(t, rl.tryAcquire())
		}
		assert.False(t, rl.tryAcquire())

		clock.now = clock.now.Add(1500 * time.Millisecond)
		assert.True(t, rl.tryAcquire())
		assert.False(t, rl.tryAcquire())
	})

	t.Run("reports wait until next token", func(t *testing.T) {
		rl, _ := newTestLimiter(2)
		require.True(t, rl.tryAcquire())
		require.True(t, rl.tryAcquire())

		ok, delay := rl.reserve()
		assert.False(t, ok)
		assert.Equal(t, 30*time.Second, delay)
	})

	t.Run("default rate limit", func(t *testing.T) {
		rl, _ := newTestLimiter(0)
		for i := 0; i < 60; i++ {
			require.True(t, rl.tryAcquire())
		}
		assert.False(t, rl.tryAcquire())
	})

	t.Run("context cancellation", func(t *testing.T) {
		rl, _ := newTestLimiter(1)
		require.True(t, rl.tryAcquire())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := rl.wait(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limiter canceled")
	})
}

type countingClient struct {
	calls int
}

func (c *countingClient) Extract(context.Context, Request) (Response, error) {
	c.calls++
	return Response{Text: "{}"}, nil
}

func TestLimitedClient(t *testing.T) {
	inner := &countingClient{}
	rl, _ := newTestLimiter(1)
	client := &limitedClient{client: inner, limiter: rl}

	_, err := client.Extract(context.Background(), Request{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Extract(ctx, Request{})
	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
