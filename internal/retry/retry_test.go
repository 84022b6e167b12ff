package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/retry"
)

func fastConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	return cfg
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	t.Parallel()

	calls := 0
	boom := errors.New("bad request")
	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		return retry.Retryable(errors.New("503 service unavailable"))
	})
	require.ErrorIs(t, err, retry.ErrMaxAttemptsExceeded)
	assert.Equal(t, 3, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retry.Do(ctx, fastConfig(), func() error { return nil })
	require.ErrorIs(t, err, retry.ErrContextCancelled)
}

func TestDefaultIsRetryable(t *testing.T) {
	t.Parallel()

	assert.False(t, retry.DefaultIsRetryable(nil))
	assert.True(t, retry.DefaultIsRetryable(errors.New("i/o Timeout")))
	assert.True(t, retry.DefaultIsRetryable(errors.New("unexpected EOF")))
	assert.False(t, retry.DefaultIsRetryable(errors.New("not found")))
	assert.False(t, retry.DefaultIsRetryable(retry.Permanent(errors.New("connection refused"))))
	assert.True(t, retry.DefaultIsRetryable(retry.Retryable(errors.New("anything"))))
}

func TestDelay(t *testing.T) {
	t.Parallel()

	cfg := retry.Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}
	assert.Equal(t, 100*time.Millisecond, cfg.Delay(1))
	assert.Equal(t, 200*time.Millisecond, cfg.Delay(2))
	assert.Equal(t, 400*time.Millisecond, cfg.Delay(3))
	assert.Equal(t, time.Second, cfg.Delay(10))
}
