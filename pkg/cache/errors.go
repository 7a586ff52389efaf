package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnsupported reports that a backend cannot perform an operation,
	// such as Clear on a NullCache.
	ErrUnsupported = errors.New("operation not supported by cache backend")

	// ErrUnavailable reports a remote backend that did not answer.
	ErrUnavailable = errors.New("cache backend unavailable")
)

// retryableError marks a failure as transient.
type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient for RetryWithBackoff. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryableError{err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	return errors.As(err, new(retryableError))
}

// retryAttempts and retryDelay drive RetryWithBackoff; the delay doubles
// after each failed attempt.
var (
	retryAttempts = 3
	retryDelay    = time.Second
)

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// Retryable, or has run retryAttempts times. Remote backends use it for their
// initial ping.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
