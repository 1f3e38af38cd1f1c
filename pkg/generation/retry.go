package generation

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

var _ Generator = (*Retrier)(nil)

// Retrier wraps a Generator with bounded retry on transient failures,
// using exponential backoff with jitter. Rejections, unparseable
// responses, and invalid prompts surface after exactly one attempt.
type Retrier struct {
	inner      Generator
	maxRetries int           // max retries on transient failures
	baseDelay  time.Duration // initial backoff delay

	// sleepFunc is used for testing; defaults to a context-aware sleep.
	sleepFunc func(ctx context.Context, d time.Duration) error
	// randFunc returns a random float64 in [0,1); used for jitter. Defaults to rand.Float64.
	randFunc func() float64
}

// RetryOpts configures a Retrier.
type RetryOpts struct {
	MaxRetries int           // Max retries on transient failures (default 3).
	BaseDelay  time.Duration // Initial backoff delay (default 1s).
}

// NewRetrier wraps a Generator with transient-failure retry.
func NewRetrier(inner Generator, opts RetryOpts) *Retrier {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}

	return &Retrier{
		inner:      inner,
		maxRetries: opts.MaxRetries,
		baseDelay:  opts.BaseDelay,
		sleepFunc:  contextSleep,
		randFunc:   rand.Float64,
	}
}

// SetSleepFunc overrides the sleep function (for testing).
func (r *Retrier) SetSleepFunc(fn func(ctx context.Context, d time.Duration) error) {
	r.sleepFunc = fn
}

// SetRandFunc overrides the random number generator (for testing).
func (r *Retrier) SetRandFunc(fn func() float64) { r.randFunc = fn }

// contextSleep sleeps for d or until ctx is cancelled.
func contextSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// jitter applies ±25% random jitter to a duration.
func (r *Retrier) jitter(d time.Duration) time.Duration {
	// Scale factor in [0.75, 1.25).
	factor := 0.75 + r.randFunc()*0.5 //nolint:mnd // jitter range: ±25%

	return time.Duration(float64(d) * factor)
}

// Generate implements Generator. Transient failures are retried up to
// maxRetries times; each backoff is baseDelay·2^attempt with jitter, or
// the server's Retry-After hint when that is larger.
func (r *Retrier) Generate(ctx context.Context, req Request) (Result, error) {
	var lastErr error
	for attempt := range r.maxRetries + 1 {
		res, err := r.inner.Generate(ctx, req)
		if err == nil {
			return res, nil
		}

		var te *TransientError
		if !errors.As(err, &te) {
			return Result{}, err
		}

		lastErr = err

		if attempt >= r.maxRetries {
			break
		}

		backoff := r.jitter(max(
			r.baseDelay*time.Duration(math.Pow(2, float64(attempt))), //nolint:mnd // exponential backoff formula
			te.RetryAfter,
		))

		if err := r.sleepFunc(ctx, backoff); err != nil {
			return Result{}, err
		}
	}

	return Result{}, lastErr
}
