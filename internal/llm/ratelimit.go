package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a Provider with an outbound request rate
// limit. Cloud LLM APIs throttle aggressively on free tiers; waiting for
// clearance up front beats burning the request on a 429.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a provider with a token-bucket limiter. A
// requestsPerSecond of 0 disables limiting and returns the provider
// unchanged.
func WithRateLimit(inner Provider, requestsPerSecond float64, burst int) Provider {
	if requestsPerSecond <= 0 {
		return inner
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the underlying provider name
func (p *RateLimitedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the inner provider
func (p *RateLimitedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Analyze waits for rate limit clearance, then delegates
func (p *RateLimitedProvider) Analyze(ctx context.Context, claimText string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.inner.Analyze(ctx, claimText)
}
