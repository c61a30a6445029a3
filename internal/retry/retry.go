// Package retry implements a reusable bounded-retry policy with exponential
// backoff. The policy owns the attempt count, the backoff schedule, and the
// retryable-vs-fatal classification; callers supply the operation.
package retry

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Policy describes how an operation is retried.
//
// Delays follow BaseDelay * 2^attempt, so the defaults yield 1s, 2s, 4s
// between the three attempts.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first one.
	MaxAttempts int
	// BaseDelay is the wait before the second attempt; it doubles after
	// every failed attempt.
	BaseDelay time.Duration
	// Retryable reports whether an error is transient. A nil Retryable
	// treats every error as transient.
	Retryable func(error) bool

	// Clock supplies timers so tests can simulate the backoff. A nil Clock
	// uses real time.
	Clock clock.Clock
}

// DefaultPolicy matches the remote store contract: 3 attempts, backoff
// 1s/2s/4s.
func DefaultPolicy(retryable func(error) bool) Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second, Retryable: retryable}
}

// Do runs fn until it succeeds, a non-retryable error occurs, attempts are
// exhausted, or ctx is done. The last error is returned.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	clk := p.Clock
	if clk == nil {
		clk = clock.New()
	}

	var lastErr error
	delay := p.BaseDelay

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			t := clk.Timer(delay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			}
			delay *= 2
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
