package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with jittered exponential
// backoff. The examiner waits on the result, so the whole call, retries
// included, is bounded by a deadline and a server Retry-After longer than
// MaxWait is cut to MaxWait.
type RetryProvider struct {
	inner    Provider
	config   RetryConfig
	deadline time.Duration
}

// WithRetry wraps p with retries. A positive deadline bounds each
// Generate call from first attempt to last.
func WithRetry(p Provider, cfg RetryConfig, deadline time.Duration) *RetryProvider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg, deadline: deadline}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if r.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.deadline)
		defer cancel()
	}

	var err error
	malformed := 0
	for attempt := 1; ; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !Retryable(err) || attempt == r.config.MaxAttempts {
			return nil, err
		}

		// A malformed suggestion is worth one more try, not a full
		// backoff sequence.
		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) {
			if malformed++; malformed > 1 {
				return nil, err
			}
		}

		wait := r.wait(attempt, err)
		if dl, ok := ctx.Deadline(); ok && time.Until(dl) < wait {
			return nil, err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait returns the pause before attempt+1.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return r.capped(rl.RetryAfter)
	}

	d := r.config.InitialWait
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * r.config.Multiplier)
		if r.config.MaxWait > 0 && d >= r.config.MaxWait {
			break
		}
	}
	d = r.capped(d)

	// ±20% jitter
	spread := int64(d) / 5
	if spread > 0 {
		d += time.Duration(rand.Int64N(2*spread+1) - spread)
	}
	return d
}

func (r *RetryProvider) capped(d time.Duration) time.Duration {
	if r.config.MaxWait > 0 && d > r.config.MaxWait {
		return r.config.MaxWait
	}
	return d
}
