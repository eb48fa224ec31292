package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"roadtrip/internal/models/route_models"
)

// fencedBlock matches the first ``` fenced block, with an optional language tag.
var fencedBlock = regexp.MustCompile("(?s)```[A-Za-z0-9_+.-]*[ \t]*\r?\n?(.*?)```")

var openingFence = regexp.MustCompile("^```[A-Za-z0-9_+.-]*[ \t]*\r?\n?")

type ItineraryParserInterface interface {
	Parse(raw string) (*route_models.RouteModel, error)
}

// ItineraryParser turns the model's raw reply into a validated RouteModel.
// It does no I/O and never retries.
type ItineraryParser struct{}

func NewItineraryParser() *ItineraryParser {
	return &ItineraryParser{}
}

func (p *ItineraryParser) Parse(raw string) (*route_models.RouteModel, error) {
	text := StripCodeFences(raw)
	if text == "" {
		return nil, route_models.NewMalformedPayloadError(text, errors.New("empty payload"))
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, route_models.NewMalformedPayloadError(text, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, route_models.NewMalformedPayloadError(text, errors.New("trailing data after JSON object"))
	}
	if payload == nil {
		return nil, route_models.NewMalformedPayloadError(text, fmt.Errorf("payload is not a JSON object"))
	}

	return route_models.BuildRouteModel(payload)
}

// StripCodeFences trims whitespace and removes markdown code fences around the
// payload. Fences are only stripped at the ends of the text, so backticks
// inside JSON strings survive. When the text starts with prose instead, the
// content of the first fenced block is used.
func StripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(text, "```"):
		text = openingFence.ReplaceAllString(text, "")
	case strings.HasPrefix(text, "{"), strings.HasPrefix(text, "["):
	default:
		if m := fencedBlock.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
