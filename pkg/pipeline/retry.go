package pipeline

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds how a stage operation is retried. Retryable
// decides per error; non-retryable errors abort immediately.
type RetryPolicy struct {
	MaxAttempts uint
	BaseDelay   time.Duration
	Retryable   func(error) bool
}

// Retry runs op under the policy with exponential backoff (doubling
// delay, no jitter). The last error is returned after the attempts are
// exhausted.
func Retry[T any](ctx context.Context, policy RetryPolicy, op func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && policy.Retryable != nil && !policy.Retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(policy.MaxAttempts))
}
