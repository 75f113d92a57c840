package pkgretry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Class tells Do whether an error is worth another attempt.
type Class int

const (
	Retryable Class = iota
	Fatal
)

const (
	defaultBaseDelay = 100 * time.Millisecond
	defaultMaxDelay  = 5 * time.Second
)

// ErrExhausted is returned when every attempt failed without an error value.
var ErrExhausted = errors.New("retry: attempts exhausted")

// Policy configures retries. MaxAttempts <= 0 means retry until the context
// is done.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      time.Duration

	// Classify decides whether an error is retryable. Nil retries every error.
	Classify func(error) Class

	// OnRetry is called before each wait.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// Delay returns the wait after the given failed attempt (1-based).
func (p Policy) Delay(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = defaultBaseDelay
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = defaultMaxDelay
	}
	if attempt < 1 {
		attempt = 1
	}

	wait := maxDelay
	if shift := attempt - 1; shift < 32 {
		if d := base << shift; d > 0 && d < maxDelay {
			wait = d
		}
	}

	if p.Jitter > 0 {
		wait += rand.N(p.Jitter)
	}
	return wait
}

// Do calls fn until it succeeds, returns a Fatal error, the attempts run out
// or ctx is done.
func Do(ctx context.Context, p Policy, fn func(context.Context) error) error {
	classify := p.Classify
	if classify == nil {
		classify = func(error) Class { return Retryable }
	}

	var lastErr error
	for attempt := 1; p.MaxAttempts <= 0 || attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if classify(err) == Fatal {
			return err
		}
		if attempt == p.MaxAttempts {
			break
		}

		wait := p.Delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, wait, err)
		}

		if !Sleep(ctx, wait) {
			return ctx.Err()
		}
	}

	if lastErr == nil {
		return ErrExhausted
	}
	return lastErr
}

// Sleep waits for d and reports false if ctx ended first.
func Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
