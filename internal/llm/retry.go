package llm

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy describes how Retry re-invokes an operation.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, including the first one.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// Retryable reports whether err may succeed on a later attempt.
	// A nil Retryable retries every error.
	Retryable func(err error) bool

	// Backoff returns the pause before the next attempt after err.
	// A nil Backoff retries immediately.
	Backoff func(err error) time.Duration
}

// FixedBackoff returns a Backoff that always waits d.
func FixedBackoff(d time.Duration) func(error) time.Duration {
	return func(error) time.Duration { return d }
}

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// attempt budget is spent. The last error is returned unchanged so callers
// can classify it. Context errors are never retried.
func Retry(ctx context.Context, p RetryPolicy, fn func(ctx context.Context, attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		// A per-call deadline is an ordinary failure; only the caller's
		// context ending stops the loop.
		if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return err
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}

		// Last attempt: don't sleep.
		if attempt == attempts-1 {
			break
		}

		var wait time.Duration
		if p.Backoff != nil {
			wait = p.Backoff(err)
		}
		if wait <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return lastErr
}
