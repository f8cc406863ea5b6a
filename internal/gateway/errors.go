// Package gateway builds personality prompts, invokes the upstream
// completion provider, and recovers a well-formed result from its raw text
// output.
package gateway

import "errors"

// Error taxonomy. Validation and credential failures are detected before any
// upstream call; the remaining three only after it. No automatic retries
// anywhere; every failure is terminal for the request.
var (
	// ErrValidation indicates invalid client input.
	ErrValidation = errors.New("invalid request")
	// ErrMissingCredential indicates the upstream API key is not configured.
	ErrMissingCredential = errors.New("server configuration error: missing API key")
	// ErrUpstream indicates the provider is unreachable, overloaded, or timed out.
	ErrUpstream = errors.New("upstream provider unavailable")
	// ErrQuota indicates the provider rate limited this service.
	ErrQuota = errors.New("upstream provider quota exhausted")
	// ErrMalformedResponse indicates the provider output could not be
	// recovered as the expected shape.
	ErrMalformedResponse = errors.New("upstream response was not in the expected format")
)
