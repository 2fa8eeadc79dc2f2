package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/realkdc/top-thc-brands/pkg/retry"
)

func fastConfig() retry.Config {
	return retry.Config{
		MaxAttempts:     3,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffFactor:   2.0,
		MaxTotalTimeout: time.Second,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("always failing")
	calls := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

func TestDo_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry.Do(ctx, fastConfig(), func() error {
		calls++
		return errors.New("fail")
	})
	assert.Error(t, err)
	assert.Zero(t, calls)
}

func TestDoWithLog_CallsLogBetweenAttempts(t *testing.T) {
	var attempts []int
	err := retry.DoWithLog(context.Background(), fastConfig(), "probe",
		func() error { return errors.New("fail") },
		func(attempt int, err error, nextDelay time.Duration) {
			attempts = append(attempts, attempt)
		},
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "probe")
	// no log call after the final attempt
	assert.Equal(t, []int{1, 2}, attempts)
}
