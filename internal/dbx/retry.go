package dbx

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultRetries is the number of retries after the first attempt.
const DefaultRetries = 2

// retryBase is the first backoff step; a test seam.
var retryBase = 50 * time.Millisecond

// Retry calls fn and retries it with exponential backoff while it fails
// with a transient error (see IsTransient), at most retries more times.
// Non-transient errors and the last transient error are returned as is.
func Retry(ctx context.Context, retries uint64, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(retries, retry.NewExponential(retryBase))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}

// RetryWithResult is Retry for functions that produce a value.
func RetryWithResult[T any](ctx context.Context, retries uint64, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := Retry(ctx, retries, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
