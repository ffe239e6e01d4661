package utils

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

type Backoff struct {
	base       time.Duration
	maxRetries int
	jitter     time.Duration
}

func NewBackoff(base time.Duration, maxRetries int) Backoff {
	return Backoff{base: base, maxRetries: maxRetries, jitter: base + base/2}
}

type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err so Do stops retrying and returns it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls fn up to maxRetries+1 times with exponential backoff plus jitter.
// The returned error is unwrapped from Permanent.
func (b Backoff) Do(ctx context.Context, fn func(i int) error) error {
	var err error
	for i := 0; i <= b.maxRetries; i++ {
		err = fn(i)
		if err == nil {
			return nil
		}
		var p *permanentError
		if errors.As(err, &p) {
			return p.err
		}
		if i == b.maxRetries {
			break
		}
		t := time.Duration(1<<i) * b.base
		if b.jitter > 0 {
			t += time.Duration(rand.Int63n(int64(b.jitter)))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t):
		}
	}
	return err
}
