package mfds

import (
	"context"
	"errors"
	"time"
)

// transientError marks a failure worth another attempt (timeouts,
// connection resets, upstream 5xx). Anything unmarked aborts the retry
// loop immediately.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func transient(err error) error {
	return &transientError{err: err}
}

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// retryPolicy reruns an operation with linearly growing pauses:
// delay, 2*delay, 3*delay, and so on between attempts.
type retryPolicy struct {
	maxRetries int
	delay      time.Duration
}

func (p retryPolicy) backoff(attempt int) time.Duration {
	return p.delay * time.Duration(attempt+1)
}

// run invokes op up to maxRetries+1 times. Non-transient errors and the
// final attempt's error are returned unwrapped from the transient marker.
func (p retryPolicy) run(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isTransient(err) || attempt == p.maxRetries {
			break
		}

		select {
		case <-time.After(p.backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var te *transientError
	if errors.As(lastErr, &te) {
		return te.err
	}
	return lastErr
}
