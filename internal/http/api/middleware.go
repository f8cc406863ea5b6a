package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/coderemark/coderemark/internal/ratelimit"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RateLimitMiddleware enforces the per-client fixed-window limit and emits
// the X-RateLimit-* headers on every limited route, allowed or not.
func RateLimitMiddleware(manager *ratelimit.Manager, provider ratelimit.SettingsProvider, nowFn func() time.Time) gin.HandlerFunc {
	if nowFn == nil {
		nowFn = time.Now
	}
	return func(c *gin.Context) {
		cfg := provider()
		if cfg.Limit <= 0 {
			return
		}

		key := ratelimit.ClientKey(c.Request)
		result, errAllow := manager.Allow(c.Request.Context(), key)
		if errAllow != nil {
			// Fail open: a broken limiter must not take the service down.
			log.WithError(errAllow).Error("rate limit check failed")
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		if !result.Reset.IsZero() {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(result.Reset.Unix(), 10))
		}

		if !result.Allowed {
			c.Header("Retry-After", strconv.Itoa(result.RetryAfter(nowFn())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded, try again later",
			})
		}
	}
}
