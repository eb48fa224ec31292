package utils

import (
	"context"
	"fmt"
	"strings"

	"roadtrip/internal/models/request_models"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultGeminiModel = "gemini-2.5-pro"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// ItinerarySource asks a generative model for a road-trip itinerary and
// returns its raw text reply. The reply is untrusted and must be parsed.
type ItinerarySource interface {
	GenerateItinerary(ctx context.Context, prefs request_models.TripPreferences) (string, error)
	Close() error
}

type SourceConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// NewItinerarySource builds the client for the configured provider.
func NewItinerarySource(ctx context.Context, cfg SourceConfig) (ItinerarySource, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
		return NewOpenAIItinerarySource(cfg.APIKey, cfg.Model), nil
	case ProviderGemini, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
		src, err := NewGeminiItinerarySource(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unsupported itinerary provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}
}
