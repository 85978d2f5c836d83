package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultQuota is the hourly quota assumed before the first response
	// reports one.
	DefaultQuota = 5000

	// ProactiveRate spaces listing and fetch calls (requests per second).
	ProactiveRate = 1.2

	// MinBuffer is the largest reserve of requests kept back until reset.
	MinBuffer = 100

	// Quota headers sent with every API response.
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRateReset     = "X-RateLimit-Reset"
)

// RateLimiter spaces requests with a token bucket and holds them back
// once the reported quota falls under the reserve.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetAt   time.Time
	bucket    *rate.Limiter
}

// NewRateLimiter creates a rate limiter throttling to perSecond requests.
func NewRateLimiter(perSecond rate.Limit) *RateLimiter {
	return &RateLimiter{
		remaining: DefaultQuota,
		limit:     DefaultQuota,
		bucket:    rate.NewLimiter(perSecond, 1),
	}
}

// Wait blocks until the next request may be sent, or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	exhausted := r.remaining < r.reserve() && time.Now().Before(r.resetAt)
	resetAt := r.resetAt
	r.mu.Unlock()
	if !exhausted {
		return nil
	}

	timer := time.NewTimer(time.Until(resetAt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reserve is a tenth of the quota, capped at MinBuffer, so a 60/hour
// anonymous quota still allows its first requests. Caller holds mu.
func (r *RateLimiter) reserve() int {
	return min(r.limit/10, MinBuffer)
}

// UpdateFromResponse records the quota reported by a response.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, err := strconv.Atoi(resp.Header.Get(HeaderRateRemaining)); err == nil {
		r.remaining = v
	}
	if v, err := strconv.Atoi(resp.Header.Get(HeaderRateLimit)); err == nil {
		r.limit = v
	}
	if v, err := strconv.ParseInt(resp.Header.Get(HeaderRateReset), 10, 64); err == nil {
		r.resetAt = time.Unix(v, 0)
	}
}

// Remaining returns the last reported remaining requests.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Limit returns the last reported quota.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}
