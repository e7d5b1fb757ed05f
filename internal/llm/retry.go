package llm

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/viva/internal/metrics"
)

// RetryProvider is a decorator that retries transient errors after a fixed
// delay. It only handles network-level failures; whether the returned JSON
// is semantically valid is decided upstream, with its own retry policy.
type RetryProvider struct {
	inner     Provider
	config    RetryConfig
	collector *metrics.Collector
}

// WithRetry wraps a Provider with transient-failure retry.
func WithRetry(p Provider, cfg RetryConfig, collector *metrics.Collector) Provider {
	return &RetryProvider{inner: p, config: cfg, collector: collector}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidRetried := false

	for attempt := range r.config.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !r.shouldRetry(err, &invalidRetried) {
			return nil, err
		}

		// No sleep after the last attempt.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		r.collector.RecordNetworkRetry()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(err)):
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// shouldRetry determines if an error is retryable.
func (r *RetryProvider) shouldRetry(err error, invalidRetried *bool) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Max tokens is a configuration issue, not transient.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	// An unusable payload gets one retry.
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limit and provider unavailable are retryable.
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return true
	}

	// Other errors (network, etc.) are treated as transient.
	return true
}

// wait returns the delay before the next attempt. The configured fixed
// delay applies unless the provider supplied a RetryAfter hint.
func (r *RetryProvider) wait(err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	return r.config.Wait
}
