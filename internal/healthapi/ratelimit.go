package healthapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Gateway rate limits:
// - 200 requests per 5 minutes
// - 2000 requests per day

// RateLimiter manages health gateway rate limits
type RateLimiter struct {
	mu sync.Mutex

	// 5-minute window
	shortLimit    int
	shortUsage    int
	shortResetsAt time.Time

	// Daily window
	dailyLimit    int
	dailyUsage    int
	dailyResetsAt time.Time

	// Minimum interval between requests
	minInterval time.Duration
	lastRequest time.Time
}

// NewRateLimiter creates a new rate limiter with the gateway's limits
func NewRateLimiter() *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		shortLimit:    200,
		shortResetsAt: now.Add(5 * time.Minute),
		dailyLimit:    2000,
		dailyResetsAt: now.Truncate(24 * time.Hour).Add(24 * time.Hour),
		minInterval:   100 * time.Millisecond,
	}
}

// Wait blocks until a request can be made without exceeding rate limits
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()

	// Reset windows if expired
	if now.After(r.shortResetsAt) {
		r.shortUsage = 0
		r.shortResetsAt = now.Add(5 * time.Minute)
	}
	if now.After(r.dailyResetsAt) {
		r.dailyUsage = 0
		r.dailyResetsAt = now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	}

	// Check 5-minute limit
	if r.shortUsage >= r.shortLimit {
		waitTime := time.Until(r.shortResetsAt)
		r.mu.Unlock()
		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return ctx.Err()
		}
		r.mu.Lock()
		r.shortUsage = 0
		r.shortResetsAt = time.Now().Add(5 * time.Minute)
	}

	// Check daily limit
	if r.dailyUsage >= r.dailyLimit {
		waitTime := time.Until(r.dailyResetsAt)
		r.mu.Unlock()
		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return ctx.Err()
		}
		r.mu.Lock()
		r.dailyUsage = 0
		r.dailyResetsAt = time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour)
	}

	// Enforce minimum interval between requests
	elapsed := time.Since(r.lastRequest)
	if elapsed < r.minInterval {
		waitTime := r.minInterval - elapsed
		r.mu.Unlock()
		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return ctx.Err()
		}
		r.mu.Lock()
	}

	r.shortUsage++
	r.dailyUsage++
	r.lastRequest = time.Now()

	return nil
}

// UpdateFromHeaders updates rate limit state from gateway response headers.
// The gateway reports per-window usage in X-RateLimit-Usage-5m and
// X-RateLimit-Usage-Day, and the matching limits in X-RateLimit-Limit-5m
// and X-RateLimit-Limit-Day.
func (r *RateLimiter) UpdateFromHeaders(h http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, err := strconv.Atoi(h.Get("X-RateLimit-Usage-5m")); err == nil {
		r.shortUsage = v
	}
	if v, err := strconv.Atoi(h.Get("X-RateLimit-Usage-Day")); err == nil {
		r.dailyUsage = v
	}
	if v, err := strconv.Atoi(h.Get("X-RateLimit-Limit-5m")); err == nil && v > 0 {
		r.shortLimit = v
	}
	if v, err := strconv.Atoi(h.Get("X-RateLimit-Limit-Day")); err == nil && v > 0 {
		r.dailyLimit = v
	}
}

// Status returns current rate limit status
func (r *RateLimiter) Status() (shortRemaining, dailyRemaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shortLimit - r.shortUsage, r.dailyLimit - r.dailyUsage
}
