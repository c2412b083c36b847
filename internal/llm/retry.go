package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryProvider is a decorator that retries failed calls with exponential
// backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *zap.Logger
}

// WithRetry wraps a Provider with retry logic. A nil logger disables
// retry logging.
func WithRetry(p Provider, cfg RetryConfig, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryProvider{inner: p, config: cfg, logger: logger}
}

// Generate calls the inner provider up to MaxAttempts times. Context
// errors end the loop immediately; anything else is retried. When every
// attempt fails the last error is wrapped in ErrRetriesExhausted.
func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	var lastErr error

	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		if attempt == attempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		r.logger.Warn("LLM request failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", attempts),
			zap.Duration("wait", wait),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, &ErrRetriesExhausted{Attempts: attempts, Err: lastErr}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func shouldRetry(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// backoff computes the wait before the next attempt: InitialWait *
// Multiplier^attempt clamped to [InitialWait, MaxWait], then ±20% jitter.
// A rate limit with a Retry-After hint overrides the computed wait.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Max(wait, float64(r.config.InitialWait))
	if r.config.MaxWait > 0 {
		wait = math.Min(wait, float64(r.config.MaxWait))
	}

	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
