package ratelimit

import (
	"net/http"
	"strings"
)

// UnknownClientKey is the shared bucket for clients whose address cannot be
// derived from headers. All such clients share one budget; accepted policy.
const UnknownClientKey = "unknown"

// ClientKey derives the limiter key for a request: the first entry of
// X-Forwarded-For, else X-Real-IP, else the unknown bucket.
func ClientKey(r *http.Request) string {
	if r == nil {
		return UnknownClientKey
	}
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first := forwarded
		if idx := strings.Index(forwarded, ","); idx >= 0 {
			first = forwarded[:idx]
		}
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return UnknownClientKey
}
