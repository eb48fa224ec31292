package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrItineraryNotFound      = errors.New("itinerary not found")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI")
	ErrInvalidItinerary       = errors.New("invalid itinerary")
)
