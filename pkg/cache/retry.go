package cache

import (
	"context"
	"errors"
	"time"
)

// transientError marks a failure worth retrying.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as retryable by Backoff.Retry. Nil stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was marked with Transient.
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Backoff is a retry policy for remote backends. Delay is the first wait
// and doubles after every transient failure.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff is used when connecting to Redis.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 200 * time.Millisecond}

// Retry calls fn until it succeeds, fails with an error not marked
// Transient, or runs out of attempts. The last error is returned unchanged.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for i := 0; i < max(b.Attempts, 1); i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
	}
	return err
}
