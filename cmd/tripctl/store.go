package main

import (
	"time"

	"roadtrip/internal/models/response_models"
)

// noopStore discards itineraries; the CLI prints them instead of keeping them.
type noopStore struct{}

func (noopStore) Set(string, *response_models.ItineraryResponse, time.Duration) {}

func (noopStore) Get(string) (*response_models.ItineraryResponse, bool) { return nil, false }

func (noopStore) Delete(string) {}
