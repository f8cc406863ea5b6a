// Package upstream abstracts the text-completion provider. The service
// treats it as opaque: one prompt in, free-form text out.
package upstream

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the provider is unreachable or overloaded.
var ErrUnavailable = errors.New("upstream provider unavailable")

// ErrQuotaExhausted indicates the provider rate limited this service.
var ErrQuotaExhausted = errors.New("upstream provider quota exhausted")

// Options holds generation parameters for a single completion call.
type Options struct {
	MaxOutputTokens int
	Temperature     float64
}

// Provider produces a free-form text completion for a prompt.
type Provider interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}
