package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/coderemark/coderemark/internal/personality"
	"github.com/coderemark/coderemark/internal/settings"
	"github.com/coderemark/coderemark/internal/upstream"
	log "github.com/sirupsen/logrus"
)

// Result is the annotated snippet produced from upstream output.
type Result struct {
	Language      string `json:"language"`
	CommentedCode string `json:"commentedCode"`
}

// Options configures a Gateway. A nil Temperature means unset; an explicit
// zero is a valid deterministic-sampling request and is passed through.
type Options struct {
	MaxOutputTokens int
	Temperature     *float64
	Timeout         time.Duration
}

// Gateway validates requests, builds prompts, invokes the upstream provider,
// and recovers results from its raw output. A nil provider means no
// credential was configured; requests fail fast without an upstream call.
type Gateway struct {
	provider upstream.Provider
	opts     Options
}

// New constructs a Gateway. Zero-valued options fall back to defaults.
func New(provider upstream.Provider, opts Options) *Gateway {
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = settings.DefaultMaxOutputTokens
	}
	if opts.Temperature == nil || *opts.Temperature < 0 {
		temperature := settings.DefaultTemperature
		opts.Temperature = &temperature
	}
	if opts.Timeout <= 0 {
		opts.Timeout = settings.DefaultUpstreamTimeout
	}
	return &Gateway{provider: provider, opts: opts}
}

// Run annotates code in the given personality's style. The caller bounds the
// upstream call through ctx; on timeout the request fails as an upstream
// error rather than retrying.
func (g *Gateway) Run(ctx context.Context, code, personalityName string) (Result, error) {
	if strings.TrimSpace(code) == "" {
		return Result{}, fmt.Errorf("%w: code is required", ErrValidation)
	}
	if utf8.RuneCountInString(code) > settings.MaxCodeLength {
		return Result{}, fmt.Errorf("%w: code exceeds %d characters", ErrValidation, settings.MaxCodeLength)
	}
	p, errParse := personality.Parse(personalityName)
	if errParse != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrValidation, errParse)
	}
	if g.provider == nil {
		return Result{}, ErrMissingCredential
	}

	prompt := buildPrompt(code, p)
	ctxCall, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()
	raw, errComplete := g.provider.Complete(ctxCall, prompt, upstream.Options{
		MaxOutputTokens: g.opts.MaxOutputTokens,
		Temperature:     *g.opts.Temperature,
	})
	if errComplete != nil {
		return Result{}, classifyUpstreamError(errComplete)
	}

	result, errRecover := recoverResult(raw)
	if errRecover != nil {
		log.WithError(errRecover).Warn("gateway: upstream output not recoverable")
		return Result{}, errRecover
	}
	return result, nil
}

// classifyUpstreamError maps provider failures onto the gateway taxonomy.
// Raw provider error text stays in the wrapped error for logging; handlers
// surface only the sentinel's user-safe message.
func classifyUpstreamError(err error) error {
	if errors.Is(err, upstream.ErrQuotaExhausted) {
		return fmt.Errorf("%w: %v", ErrQuota, err)
	}
	// Timeouts, cancellations, and provider outages all read the same to the
	// caller: the upstream did not answer.
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
