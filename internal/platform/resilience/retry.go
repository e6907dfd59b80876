package resilience

import (
	"context"
	"fmt"
	"time"
)

// Retry runs fn until it succeeds, returns a non-retryable error, or the
// policy runs out of attempts. Waits between attempts honor ctx.
func Retry(ctx context.Context, policy RetryPolicy, retryable func(error) bool, fn func(attempt int) error) error {
	policy = NormalizeRetryPolicy(policy)
	return retryWithSleep(ctx, policy, retryable, fn, sleepContext)
}

func retryWithSleep(
	ctx context.Context,
	policy RetryPolicy,
	retryable func(error) bool,
	fn func(attempt int) error,
	sleep func(context.Context, time.Duration) error,
) error {
	delay := policy.InitialDelay
	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
		if attempt == policy.MaxRetries {
			break
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		delay = time.Duration(float64(delay) * policy.Multiplier)
		if delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", policy.MaxRetries+1, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
