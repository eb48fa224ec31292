package mem

import (
	"sync"
	"time"

	"roadtrip/internal/models/response_models"
)

const DefaultItineraryTTL = 24 * time.Hour

// ItineraryStore keeps finished itineraries for the life of the process.
type ItineraryStore interface {
	Set(id string, itinerary *response_models.ItineraryResponse, ttl time.Duration)

	// Get returns the itinerary for id if present and not expired.
	Get(id string) (*response_models.ItineraryResponse, bool)

	Delete(id string)
}

type entry struct {
	itinerary *response_models.ItineraryResponse
	expiresAt time.Time
}

type Itineraries struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewItineraries() *Itineraries {
	return &Itineraries{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *Itineraries) Set(id string, itinerary *response_models.ItineraryResponse, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultItineraryTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
	s.data[id] = entry{
		itinerary: itinerary,
		expiresAt: now.Add(ttl),
	}
}

func (s *Itineraries) Get(id string) (*response_models.ItineraryResponse, bool) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.Delete(id) // cleanup expired
		return nil, false
	}
	return e.itinerary, true
}

func (s *Itineraries) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

func (s *Itineraries) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
