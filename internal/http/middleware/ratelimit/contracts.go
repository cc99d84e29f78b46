package ratelimit

import "net/http"

// Limiter is a rate limiter
type Limiter interface {
	Allow(key string) bool
}

// KeyFunc extracts the bucket key from a request.
type KeyFunc func(r *http.Request) string

// NopLimiter is a no-op limiter
type NopLimiter struct{}

// Allow always returns true
func (NopLimiter) Allow(string) bool { return true }
