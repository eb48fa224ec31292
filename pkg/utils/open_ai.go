package utils

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"roadtrip/internal/models/request_models"
)

const plannerSystemPrompt = "You plan road trips and answer with a single JSON object only."

type OpenAIItinerarySource struct {
	client *openai.Client
	model  string
}

func NewOpenAIItinerarySource(apiKey, model string) *OpenAIItinerarySource {
	return NewOpenAIItinerarySourceWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIItinerarySourceWithConfig allows a custom base URL, e.g. a proxy.
func NewOpenAIItinerarySourceWithConfig(cfg openai.ClientConfig, model string) *OpenAIItinerarySource {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIItinerarySource{client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *OpenAIItinerarySource) GenerateItinerary(ctx context.Context, prefs request_models.TripPreferences) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: plannerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildTripPrompt(prefs)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", ErrUnexpectedBehaviorOfAI, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrUnexpectedBehaviorOfAI)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: openai returned empty content", ErrUnexpectedBehaviorOfAI)
	}
	return text, nil
}

func (c *OpenAIItinerarySource) Close() error { return nil }
