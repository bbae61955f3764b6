package portal

import (
	"context"
	"errors"
	"net/http"
	"time"

	"jobportal_backend/internal/apperrors"
)

// RetryPolicy bounds how often an idempotent request is reissued after a
// transient failure. Auth failures and client errors are never retried.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// Backoff returns the delay before attempt n (1-based retry index).
	Backoff func(attempt int) time.Duration
}

// DefaultRetryPolicy retries twice after the initial attempt with
// exponential backoff starting at 100ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff: func(attempt int) time.Duration {
			return 100 * time.Millisecond << (attempt - 1)
		},
	}
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) wait(ctx context.Context, attempt int) error {
	var d time.Duration
	if p.Backoff != nil {
		d = p.Backoff(attempt)
	}
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

// retryable reports whether a failed attempt may be reissued. Only safe
// methods qualify, and only errors apperrors classifies as transient.
// Superseded responses are final: their fetch lost the race.
func retryable(method string, err error) bool {
	if method != http.MethodGet && method != http.MethodHead {
		return false
	}
	if errors.Is(err, ErrStaleResponse) {
		return false
	}
	return apperrors.Retryable(err)
}
