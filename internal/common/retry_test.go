package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/service"
)

var errBoom = errors.New("boom")

type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func TestWithRetry_BackoffSchedule(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0

	err := WithRetry(context.Background(), func() error {
		calls++
		return errBoom
	}, service.RetryOptions{
		MaxAttempts:  4,
		InitialDelay: 3 * time.Second,
		MaxDelay:     time.Minute,
		Multiplier:   1.5,
		Sleep:        sleeper.sleep,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 4, calls)
	assert.Equal(t, []time.Duration{3000 * time.Millisecond, 4500 * time.Millisecond, 6750 * time.Millisecond}, sleeper.delays)
}

func TestWithRetry_SucceedsAfterFailures(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0
	var retried []int

	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errBoom
		}
		return nil
	}, service.RetryOptions{
		MaxAttempts: 4,
		Sleep:       sleeper.sleep,
		OnRetry:     func(attempt int, _ time.Duration, _ error) { retried = append(retried, attempt) },
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestWithRetry_NonRetryableStopsImmediately(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0

	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errBoom, Retryable: false}
	}, service.RetryOptions{MaxAttempts: 4, Sleep: sleeper.sleep})

	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleeper.delays)
}

func TestWithRetry_DelayCappedAtMax(t *testing.T) {
	sleeper := &recordingSleeper{}

	_ = WithRetry(context.Background(), func() error { return errBoom }, service.RetryOptions{
		MaxAttempts:  4,
		InitialDelay: time.Second,
		MaxDelay:     1500 * time.Millisecond,
		Multiplier:   2,
		Sleep:        sleeper.sleep,
	})

	assert.Equal(t, []time.Duration{time.Second, 1500 * time.Millisecond, 1500 * time.Millisecond}, sleeper.delays)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return errBoom
	}, service.RetryOptions{MaxAttempts: 4, InitialDelay: time.Hour})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestSleep(t *testing.T) {
	require.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}
