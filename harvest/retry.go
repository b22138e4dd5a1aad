package harvest

import (
	"context"
	"time"

	"github.com/tszym/jobharvest"
)

// AttemptFunc is one extraction attempt against a single job.
// The attempt number is 1-based.
type AttemptFunc func(ctx context.Context, attempt int) error

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// Attempt runs fn up to maxAttempts times with a pause between attempts.
// Transient errors are retried; errors classified as quota or auth failures
// abort immediately since retrying them only burns budget against a latched
// upstream condition. The logger function, if provided, is called for each
// retry. Returns nil on the first success, otherwise the last error.
func Attempt(ctx context.Context, maxAttempts int, delay time.Duration, fn AttemptFunc, logger LogFunc) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if jobharvest.ClassifyErr(err).Fatal() {
			return err
		}

		if attempt >= maxAttempts {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry (attempt %d): %v", attempt+1, err)
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}
