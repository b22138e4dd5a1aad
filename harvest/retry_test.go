package harvest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tszym/jobharvest/harvest"
)

func TestAttempt(t *testing.T) {
	t.Parallel()

	t.Run("returns nil on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := harvest.Attempt(context.Background(), 3, 0, func(_ context.Context, _ int) error {
			calls++
			return nil
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient errors up to the budget", func(t *testing.T) {
		t.Parallel()

		transient := errors.New("503 Service Temporarily Unavailable")

		calls := 0
		err := harvest.Attempt(context.Background(), 3, 0, func(_ context.Context, _ int) error {
			calls++
			return transient
		}, nil)

		assert.Equal(t, transient, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("succeeds after a transient failure", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := harvest.Attempt(context.Background(), 3, 0, func(_ context.Context, attempt int) error {
			calls++
			if attempt < 2 {
				return errors.New("connection reset by peer")
			}
			return nil
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("fatal errors abort without further attempts", func(t *testing.T) {
		t.Parallel()

		fatal := errors.New("rate limit exceeded, try again later")

		calls := 0
		err := harvest.Attempt(context.Background(), 3, 0, func(_ context.Context, _ int) error {
			calls++
			return fatal
		}, nil)

		assert.Equal(t, fatal, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("passes 1-based attempt numbers", func(t *testing.T) {
		t.Parallel()

		var seen []int
		_ = harvest.Attempt(context.Background(), 3, 0, func(_ context.Context, attempt int) error {
			seen = append(seen, attempt)
			return errors.New("transient")
		}, nil)

		assert.Equal(t, []int{1, 2, 3}, seen)
	})

	t.Run("honors context cancellation between attempts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		calls := 0
		err := harvest.Attempt(ctx, 3, 0, func(_ context.Context, _ int) error {
			calls++
			cancel()
			return errors.New("transient")
		}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("logs each retry", func(t *testing.T) {
		t.Parallel()

		logged := 0
		_ = harvest.Attempt(context.Background(), 3, 0, func(_ context.Context, _ int) error {
			return errors.New("transient")
		}, func(_ string, _ ...any) {
			logged++
		})

		assert.Equal(t, 2, logged)
	})
}
