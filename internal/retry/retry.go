// Package retry provides a bounded retry loop with capped exponential backoff.
//
// The policy is deliberately separate from any HTTP or database concern so the
// behavior can be tested in isolation and reused by any caller that needs it.
package retry

import (
	"context"
	"errors"
	"time"
)

// Policy describes how many times an operation may run and how long to wait
// between attempts. The delay starts at BaseDelay, doubles after every failed
// attempt, and never exceeds MaxDelay.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultPolicy matches the upstream API's tolerance for transient failures:
// five attempts, waits of 2s, 4s, 8s, 10s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   2 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// PermanentError wraps an error that must not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as non-retryable. Do returns the underlying error
// immediately when the operation yields one.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Do runs op until it succeeds, fails permanently, exhausts p.MaxAttempts, or
// ctx is canceled while waiting between attempts. It returns nil on the first
// success and the last error otherwise.
func Do(ctx context.Context, p Policy, op func() error) error {
	delay := p.BaseDelay

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}

		var perm *PermanentError
		if errors.As(err, &perm) {
			return perm.Err
		}

		// No sleep after the final attempt.
		if attempt == p.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = nextDelay(delay, p.MaxDelay)
	}

	return err
}

// nextDelay doubles d, clamping at max when max is positive.
func nextDelay(d, max time.Duration) time.Duration {
	d *= 2
	if max > 0 && d > max {
		d = max
	}
	return d
}
