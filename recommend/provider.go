// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable is returned when a provider cannot serve a request.
var ErrUnavailable = errors.New("recommendation provider unavailable")

// Provider generates free text from a single prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ModelID() string
}

// Config selects and configures a provider.
type Config struct {
	Provider     string // gemini, openai, mock, or empty for none
	Model        string
	GeminiAPIKey string
	OpenAIAPIKey string
	OpenAIURL    string // optional OpenAI-compatible base URL
	Timeout      time.Duration
}

// NewProvider creates a Provider from configuration. It returns a nil
// Provider when none is configured.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.Model)
	case "openai":
		p, err = NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIURL, cfg.Model)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown recommendation provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return p, nil
}
