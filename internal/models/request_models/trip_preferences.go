package request_models

import (
	"errors"
	"fmt"
	"strings"
)

const MaxTripDays = 30

var ErrInvalidPreferences = errors.New("invalid trip preferences")

type TripPreferences struct {
	Days             int      `json:"days"`
	StartPoint       string   `json:"start_point"`
	DestinationPoint string   `json:"destination_point"`
	Interests        []string `json:"interests"`
	IncludeMeals     bool     `json:"include_meals"`
	LunchPref        string   `json:"lunch_pref"`
	DinnerPref       string   `json:"dinner_pref"`
	TravelPace       string   `json:"travel_pace"`
	Budget           string   `json:"budget"`
	Notes            string   `json:"notes"`
	Optimize         *bool    `json:"optimize,omitempty"`
}

// Normalize trims free-text fields and drops blank interests.
func (p TripPreferences) Normalize() TripPreferences {
	p.StartPoint = strings.TrimSpace(p.StartPoint)
	p.DestinationPoint = strings.TrimSpace(p.DestinationPoint)
	p.LunchPref = strings.TrimSpace(p.LunchPref)
	p.DinnerPref = strings.TrimSpace(p.DinnerPref)
	p.TravelPace = strings.TrimSpace(p.TravelPace)
	p.Budget = strings.TrimSpace(p.Budget)
	p.Notes = strings.TrimSpace(p.Notes)

	interests := make([]string, 0, len(p.Interests))
	for _, in := range p.Interests {
		if in = strings.TrimSpace(in); in != "" {
			interests = append(interests, in)
		}
	}
	p.Interests = interests
	return p
}

func (p TripPreferences) Validate() error {
	if p.Days < 1 || p.Days > MaxTripDays {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidPreferences, MaxTripDays)
	}
	if strings.TrimSpace(p.StartPoint) == "" {
		return fmt.Errorf("%w: start_point is required", ErrInvalidPreferences)
	}
	if strings.TrimSpace(p.DestinationPoint) == "" {
		return fmt.Errorf("%w: destination_point is required", ErrInvalidPreferences)
	}
	return nil
}

// ParseItineraryRequest carries itinerary text produced elsewhere.
type ParseItineraryRequest struct {
	Raw      string `json:"raw" binding:"required"`
	Optimize *bool  `json:"optimize,omitempty"`
}
