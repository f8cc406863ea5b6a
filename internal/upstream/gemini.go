package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Gemini implements Provider on the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini constructs a Gemini provider for the given credential and model.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: API key is required")
	}
	client, errClient := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if errClient != nil {
		return nil, fmt.Errorf("gemini: create client: %w", errClient)
	}
	return &Gemini{client: client, model: model}, nil
}

// safetySettings relaxes category blocking to high-confidence only. A code
// review legitimately discusses exploits and dangerous patterns; default
// thresholds reject such prompts outright.
func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
		})
	}
	return settings
}

// Complete sends the prompt and returns the raw text of the first candidate.
func (g *Gemini) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	config := &genai.GenerateContentConfig{
		SafetySettings: safetySettings(),
	}
	if opts.Temperature >= 0 {
		config.Temperature = genai.Ptr(float32(opts.Temperature))
	}
	if opts.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxOutputTokens)
	}

	resp, errGen := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if errGen != nil {
		return "", classifyError(errGen)
	}

	text := collectText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return text, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// classifyError maps provider failures onto the package sentinels so callers
// can distinguish quota exhaustion from outages without importing genai.
func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
