package query

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/eventops/rooming-dashboard/internal/apiclient"
)

// MaxReadRetries is the number of extra attempts a failing read gets.
const MaxReadRetries = 3

// RetryFunc decides whether to try again after failureCount previous failures.
type RetryFunc func(failureCount int, err error) bool

// DefaultRetry never retries client errors (4xx) or cancellations, and
// otherwise retries up to MaxReadRetries times.
func DefaultRetry(failureCount int, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if status, ok := apiclient.StatusCode(err); ok &&
		status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return false
	}
	return failureCount < MaxReadRetries
}

// NoRetry fails a read on its first error. Mutate never retries, whatever
// the policy.
func NoRetry(int, error) bool { return false }

// Backoff doubles Base after each failure, capped at Max.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

func (b Backoff) Delay(failureCount int) time.Duration {
	delay := b.Base
	for i := 0; i < failureCount; i++ {
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			return b.Max
		}
	}
	if b.Max > 0 && delay > b.Max {
		return b.Max
	}
	return delay
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
