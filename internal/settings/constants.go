package settings

import "time"

// Defaults for rate limiting and upstream generation.
const (
	// DefaultRateLimit is the fallback per-client request limit per window.
	DefaultRateLimit = 10
	// DefaultRateLimitWindow is the fallback rate limit window duration.
	DefaultRateLimitWindow = 15 * time.Minute
	// DefaultRateLimitRedisPrefix is the fallback Redis key prefix.
	DefaultRateLimitRedisPrefix = "crmk:rl"
	// DefaultModel is the fallback upstream model name.
	DefaultModel = "gemini-2.0-flash"
	// DefaultMaxOutputTokens bounds the upstream response length.
	DefaultMaxOutputTokens = 8192
	// DefaultTemperature favors determinism over creativity.
	DefaultTemperature = 0.2
	// DefaultUpstreamTimeout bounds the upstream call wall clock.
	DefaultUpstreamTimeout = 60 * time.Second
	// DefaultEvictionInterval controls how often expired windows are swept.
	DefaultEvictionInterval = 5 * time.Minute
	// MaxCodeLength is the largest accepted snippet, in characters.
	MaxCodeLength = 3000
)
