package route_models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingEndpoint  = errors.New("missing endpoint")
	ErrNoDays           = errors.New("no days")
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidStop      = errors.New("invalid stop")
	ErrMalformedPayload = errors.New("malformed payload")
)

// ValidationError reports the first structural problem found in an itinerary
// payload. Kind is one of the Err* sentinels above and is what errors.Is matches.
type ValidationError struct {
	Kind   error
	Key    string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("validation: %v: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("validation: %v at %q: %s", e.Kind, e.Key, e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func newValidationError(kind error, key, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Key: key, Detail: fmt.Sprintf(format, args...)}
}

// ParseError is returned when the raw model text cannot be decoded at all.
// Raw keeps the text after fence stripping so callers can log or show it.
type ParseError struct {
	Kind error
	Raw  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: %v: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{e.Kind, e.Err} }

func NewMalformedPayloadError(raw string, err error) *ParseError {
	return &ParseError{Kind: ErrMalformedPayload, Raw: raw, Err: err}
}

// OptimizationWarning records a day whose waypoint optimization could not be
// applied. The day keeps its original order.
type OptimizationWarning struct {
	Day    int    `json:"day"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (w *OptimizationWarning) Error() string {
	if w.Err == nil {
		return fmt.Sprintf("day %d: optimization skipped: %s", w.Day, w.Reason)
	}
	return fmt.Sprintf("day %d: optimization skipped: %s: %v", w.Day, w.Reason, w.Err)
}

func (w *OptimizationWarning) Unwrap() error { return w.Err }
