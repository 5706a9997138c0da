package usecase

import (
	"context"
	"log/slog"
	"time"

	"qutlas/pkg/errs"
)

const (
	DefaultRetryMaxAttempts = 3
	DefaultRetryBackoff     = 50 * time.Millisecond
)

// RetryPolicy bounds how often a compare-and-set write is attempted. The
// wait between attempts grows linearly: Backoff, 2*Backoff, ...
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultRetryMaxAttempts, Backoff: DefaultRetryBackoff}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Backoff < 0 {
		p.Backoff = 0
	}
	return p
}

// withRetry runs fn until it succeeds, fails with a non-retryable error, or
// the attempts are used up. The last error is returned unchanged so callers
// still see ErrConflict or ErrDataUnavailable.
func withRetry[T any](ctx context.Context, p RetryPolicy, logger *slog.Logger, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	p = p.normalized()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !errs.IsRetryable(err) {
			return zero, err
		}
		if attempt >= p.MaxAttempts {
			logger.Error("[retry][usecase] attempts exhausted", "op", op, "attempts", attempt, "error", err.Error())
			return zero, err
		}

		wait := time.Duration(attempt) * p.Backoff
		logger.Warn("[retry][usecase] retrying", "op", op, "attempt", attempt, "wait_ms", wait.Milliseconds(), "error", err.Error())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
