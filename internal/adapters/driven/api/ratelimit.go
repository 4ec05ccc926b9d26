package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// HeaderRateRemaining is the remaining requests header sent by the
	// express-rate-limit middleware.
	HeaderRateRemaining = "RateLimit-Remaining"

	// HeaderRateReset is the seconds-until-reset header.
	HeaderRateReset = "RateLimit-Reset"
)

// RateLimiter throttles requests with a token bucket and backs off when
// the server reports that the window is exhausted.
type RateLimiter struct {
	mu        sync.Mutex
	bucket    *rate.Limiter // nil disables proactive throttling
	remaining int           // -1 until the server reports a value
	resetTime time.Time
}

// NewRateLimiter creates a limiter allowing perSecond sustained requests
// with the given burst. A perSecond of zero disables throttling.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	r := &RateLimiter{remaining: -1}
	if perSecond > 0 {
		if burst < 1 {
			burst = 1
		}
		r.bucket = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return r
}

// Wait blocks until a request may be sent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.bucket != nil {
		if err := r.bucket.Wait(ctx); err != nil {
			return err
		}
	}

	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining == 0 && time.Now().Before(resetTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetTime)):
		}
	}
	return nil
}

// Observe updates state from response headers and returns a
// *RateLimitError for a 429 response.
func (r *RateLimiter) Observe(resp *http.Response) error {
	if resp == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v := resp.Header.Get(HeaderRateRemaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.remaining = n
		}
	}
	if v := resp.Header.Get(HeaderRateReset); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			r.resetTime = time.Now().Add(time.Duration(secs) * time.Second)
		}
	}

	if resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	resetAt := r.resetTime
	if v := resp.Header.Get(HeaderRetryAfter); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			resetAt = time.Now().Add(time.Duration(secs) * time.Second)
			r.resetTime = resetAt
		}
	}
	r.remaining = 0
	return &RateLimitError{ResetAt: resetAt}
}

// Remaining returns the last remaining count reported by the server,
// or -1 if none was reported.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}
