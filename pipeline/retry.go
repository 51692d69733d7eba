package pipeline

import (
	"context"
	"time"
)

// LogFunc is the signature for a progress logging function.
type LogFunc func(format string, args ...any)

// RetryPolicy bounds how often a failing call is repeated. Every retry
// waits the same fixed Delay.
type RetryPolicy struct {
	Retries int
	Delay   time.Duration
}

// NoRetry makes exactly one attempt.
var NoRetry = RetryPolicy{}

// DefaultLoadingRetry is applied to image models that are still loading:
// one more attempt after 10s before moving to the next model.
var DefaultLoadingRetry = RetryPolicy{Retries: 1, Delay: 10 * time.Second}

// Delays returns the wait before each retry.
func (p RetryPolicy) Delays() []time.Duration {
	if p.Retries <= 0 {
		return nil
	}
	delays := make([]time.Duration, p.Retries)
	for i := range delays {
		delays[i] = p.Delay
	}
	return delays
}

// Do calls fn until it succeeds, returns an error retryable rejects, or
// the retries are spent. The last error is returned. The logger, if
// provided, is called before each retry.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) error, retryable func(error) bool, logger LogFunc) error {
	delays := p.Delays()

	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt >= len(delays) || (retryable != nil && !retryable(err)) {
			return err
		}

		if logger != nil {
			logger("retry (attempt %d) in %s: %v", attempt+2, delays[attempt], err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
}
