package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// RetryAfter returns the seconds until the window resets, at least 1.
func (r Result) RetryAfter(now time.Time) int {
	secs := int(r.Reset.Sub(now).Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Limiter provides fixed-window rate limit checks.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Result, error)
}

// SettingsConfig captures the rate limit settings snapshot.
type SettingsConfig struct {
	Limit         int
	Window        time.Duration
	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}
