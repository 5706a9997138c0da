package usecase

import (
	"context"
	"testing"
	"time"

	"qutlas/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	t.Run("retries conflicts then succeeds", func(t *testing.T) {
		calls := 0
		got, err := withRetry(context.Background(), policy, discardLogger(), "test", func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errs.Markf(errs.ErrConflict, "lost race")
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		_, err := withRetry(context.Background(), policy, discardLogger(), "test", func(context.Context) (int, error) {
			calls++
			return 0, errs.Markf(errs.ErrDataUnavailable, "store down")
		})
		assert.True(t, errs.Is(err, errs.ErrDataUnavailable))
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry domain errors", func(t *testing.T) {
		calls := 0
		_, err := withRetry(context.Background(), policy, discardLogger(), "test", func(context.Context) (int, error) {
			calls++
			return 0, errs.Markf(errs.ErrInvalidTransition, "nope")
		})
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := withRetry(ctx, RetryPolicy{MaxAttempts: 10, Backoff: time.Hour}, discardLogger(), "test", func(context.Context) (int, error) {
			calls++
			cancel()
			return 0, errs.Markf(errs.ErrConflict, "lost race")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
