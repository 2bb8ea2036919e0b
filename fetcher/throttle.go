package fetcher

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled wraps a PageFetcher with a token bucket shared by every source
type Throttled struct {
	next    PageFetcher
	limiter *rate.Limiter
}

// NewThrottled limits next to perSecond requests with the given burst.
// A non-positive rate disables throttling.
func NewThrottled(next PageFetcher, perSecond float64, burst int) *Throttled {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttled{next: next, limiter: rate.NewLimiter(limit, burst)}
}

// Fetch waits for a token, then delegates
func (t *Throttled) Fetch(ctx context.Context, url string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	return t.next.Fetch(ctx, url)
}
