package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"roadtrip/internal/models/request_models"
)

// GeminiItinerarySource implements ItinerarySource using Google's Gemini models
type GeminiItinerarySource struct {
	client *genai.Client
	model  string
}

func NewGeminiItinerarySource(ctx context.Context, apiKey, model string) (*GeminiItinerarySource, error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiItinerarySource{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiItinerarySource) GenerateItinerary(ctx context.Context, prefs request_models.TripPreferences) (string, error) {
	m := c.client.GenerativeModel(c.model)
	// JSON-only replies; fences may still show up and are stripped by the parser.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.4)

	resp, err := m.GenerateContent(ctx, genai.Text(BuildTripPrompt(prefs)))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrUnexpectedBehaviorOfAI, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: gemini returned no candidates", ErrUnexpectedBehaviorOfAI)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty content", ErrUnexpectedBehaviorOfAI)
	}
	return text, nil
}

func (c *GeminiItinerarySource) Close() error {
	return c.client.Close()
}
