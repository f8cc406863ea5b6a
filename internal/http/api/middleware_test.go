package api

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/coderemark/coderemark/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

func newLimitedEngine(limit int, window time.Duration, nowFn func() time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	provider := func() ratelimit.SettingsConfig {
		return ratelimit.SettingsConfig{Limit: limit, Window: window}
	}
	manager := ratelimit.NewManager(provider, nowFn, nil)
	engine := gin.New()
	engine.POST("/api/comment", RateLimitMiddleware(manager, provider, nowFn), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return engine
}

func doRequest(engine *gin.Engine, clientIP string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/comment", nil)
	if clientIP != "" {
		req.Header.Set("X-Real-IP", clientIP)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddlewareSetsHeadersWhenAllowed(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := newLimitedEngine(10, 15*time.Minute, func() time.Time { return now })

	w := doRequest(engine, "203.0.113.9")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "10" {
		t.Fatalf("expected limit header 10, got %q", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "9" {
		t.Fatalf("expected remaining header 9, got %q", got)
	}
	wantReset := strconv.FormatInt(now.Add(15*time.Minute).Unix(), 10)
	if got := w.Header().Get("X-RateLimit-Reset"); got != wantReset {
		t.Fatalf("expected reset header %s, got %q", wantReset, got)
	}
}

func TestRateLimitMiddlewareBlocksPastLimit(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := newLimitedEngine(1, 15*time.Minute, func() time.Time { return now })

	if w := doRequest(engine, "203.0.113.9"); w.Code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", w.Code)
	}

	w := doRequest(engine, "203.0.113.9")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("expected remaining header 0, got %q", got)
	}
	retryAfter, errParse := strconv.Atoi(w.Header().Get("Retry-After"))
	if errParse != nil {
		t.Fatalf("parse Retry-After: %v", errParse)
	}
	if retryAfter != int(15*time.Minute/time.Second) {
		t.Fatalf("expected Retry-After of a full window, got %d", retryAfter)
	}
}

func TestRateLimitMiddlewareIsolatesClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := newLimitedEngine(1, 15*time.Minute, func() time.Time { return now })

	if w := doRequest(engine, "203.0.113.9"); w.Code != http.StatusOK {
		t.Fatalf("expected first client allowed, got %d", w.Code)
	}
	if w := doRequest(engine, "198.51.100.4"); w.Code != http.StatusOK {
		t.Fatalf("expected second client unaffected, got %d", w.Code)
	}
}

func TestRateLimitMiddlewareSharesUnknownBucket(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := newLimitedEngine(1, 15*time.Minute, func() time.Time { return now })

	if w := doRequest(engine, ""); w.Code != http.StatusOK {
		t.Fatalf("expected first unidentified request allowed, got %d", w.Code)
	}
	if w := doRequest(engine, ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected unidentified clients to share one budget, got %d", w.Code)
	}
}
