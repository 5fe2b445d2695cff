// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/dyscover/risk"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 15 * time.Second

// Source says where a recommendation list came from.
type Source string

const (
	SourcePersonalized Source = "personalized"
	SourceDefault      Source = "default"
)

// Result is the recommendation list returned to clients.
type Result struct {
	Recommendations []string `json:"recommendations"`
	Source          Source   `json:"source"`
	Model           string   `json:"model,omitempty"`
	Areas           Areas    `json:"areas"`
}

// Service wraps a Provider with prompt building, parsing, and fallback.
type Service struct {
	provider Provider
	timeout  time.Duration
}

// NewService creates a Service. A nil provider always yields the default
// recommendations.
func NewService(p Provider, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{provider: p, timeout: timeout}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// Recommend asks the provider for personalized recommendations and falls
// back to the assessment's fixed list on any failure.
func (s *Service) Recommend(ctx context.Context, demo risk.Demographics, a *risk.Assessment, results risk.Results) Result {
	areas := Analyze(results, a.Breakdown)
	fallback := Result{
		Recommendations: append([]string(nil), a.Recommendations...),
		Source:          SourceDefault,
		Areas:           areas,
	}
	if !s.Enabled() {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.provider.Generate(ctx, BuildPrompt(demo, a, areas, results))
	if err != nil {
		slog.Warn("personalized recommendations failed, using defaults",
			"model", s.provider.ModelID(),
			"error", err,
			"duration", time.Since(start),
		)
		return fallback
	}

	recs := ParseRecommendations(text)
	if len(recs) == 0 {
		slog.Warn("model returned no usable recommendations, using defaults",
			"model", s.provider.ModelID(),
		)
		return fallback
	}

	slog.Info("generated personalized recommendations",
		"model", s.provider.ModelID(),
		"count", len(recs),
		"duration", time.Since(start),
	)
	return Result{
		Recommendations: recs,
		Source:          SourcePersonalized,
		Model:           s.provider.ModelID(),
		Areas:           areas,
	}
}
