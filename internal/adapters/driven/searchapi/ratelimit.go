package searchapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HeaderRetryAfter is the retry-after header (seconds).
const HeaderRetryAfter = "Retry-After"

// RateLimiter throttles outgoing searches with a token bucket and honours
// Retry-After from the backend.
type RateLimiter struct {
	mu         sync.Mutex
	retryAfter time.Time     // From API header
	bucket     *rate.Limiter // Proactive throttling
}

// NewRateLimiter creates a limiter allowing perSecond requests with a small
// burst. A perSecond of zero or less disables proactive throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Inf
	burst := 1
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
		burst = max(1, int(perSecond/2))
	}
	return &RateLimiter{bucket: rate.NewLimiter(limit, burst)}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	r.mu.Lock()
	until := r.retryAfter
	r.mu.Unlock()

	if wait := time.Until(until); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil
}

// UpdateFromResponse records a Retry-After hint from a 429 or 503.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return
	}
	secs, err := strconv.Atoi(resp.Header.Get(HeaderRetryAfter))
	if err != nil || secs <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAfter = time.Now().Add(time.Duration(secs) * time.Second)
}

// RetryAfter returns the time before which requests are held back.
func (r *RateLimiter) RetryAfter() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAfter
}
