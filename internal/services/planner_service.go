package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"roadtrip/internal/models/request_models"
	"roadtrip/internal/models/response_models"
	"roadtrip/internal/models/route_models"
	mem "roadtrip/pkg/memcache"
	"roadtrip/pkg/utils"
)

type PlannerConfig struct {
	Attempts        int
	OptimizeDefault bool
	ItineraryTTL    time.Duration
}

type PlannerServiceInterface interface {
	PlanTrip(ctx context.Context, prefs request_models.TripPreferences) (*response_models.ItineraryResponse, error)
	ParseItinerary(ctx context.Context, req request_models.ParseItineraryRequest) (*response_models.ItineraryResponse, error)
	GetItinerary(ctx context.Context, id string) (*response_models.ItineraryResponse, error)
}

type PlannerService struct {
	source       utils.ItinerarySource
	orchestrator ItineraryOrchestratorInterface
	store        mem.ItineraryStore
	cfg          PlannerConfig
	logger       *zap.Logger
	now          func() time.Time
}

func NewPlannerService(
	source utils.ItinerarySource,
	orchestrator ItineraryOrchestratorInterface,
	store mem.ItineraryStore,
	cfg PlannerConfig,
	logger *zap.Logger,
) PlannerServiceInterface {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		source:       source,
		orchestrator: orchestrator,
		store:        store,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *PlannerService) optimizeFlag(v *bool) bool {
	if v == nil {
		return s.cfg.OptimizeDefault
	}
	return *v
}

// PlanTrip asks the model for an itinerary and runs it through the engine.
// A reply that fails to parse or validate is regenerated up to Attempts times;
// the last rejection is returned if none succeed.
func (s *PlannerService) PlanTrip(ctx context.Context, prefs request_models.TripPreferences) (*response_models.ItineraryResponse, error) {
	prefs = prefs.Normalize()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	if s.source == nil {
		return nil, fmt.Errorf("%w: no itinerary model configured", utils.ErrUnexpectedBehaviorOfAI)
	}

	optimize := s.optimizeFlag(prefs.Optimize)

	var lastErr error
	for attempt := 1; attempt <= s.cfg.Attempts; attempt++ {
		raw, err := s.source.GenerateItinerary(ctx, prefs)
		if err != nil {
			return nil, err
		}

		result, err := s.orchestrator.Run(ctx, raw, optimize)
		if err == nil {
			return s.save(result, optimize), nil
		}
		if !isRejectedItinerary(err) {
			return nil, err
		}

		lastErr = err
		s.logger.Warn("model itinerary rejected",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.cfg.Attempts),
			zap.Error(err))
	}

	return nil, fmt.Errorf("%w: rejected after %d attempts: %w", utils.ErrInvalidItinerary, s.cfg.Attempts, lastErr)
}

func (s *PlannerService) ParseItinerary(ctx context.Context, req request_models.ParseItineraryRequest) (*response_models.ItineraryResponse, error) {
	if strings.TrimSpace(req.Raw) == "" {
		return nil, fmt.Errorf("%w: raw itinerary is empty", utils.ErrInvalidInput)
	}

	optimize := s.optimizeFlag(req.Optimize)
	result, err := s.orchestrator.Run(ctx, req.Raw, optimize)
	if err != nil {
		return nil, err
	}
	return s.save(result, optimize), nil
}

func (s *PlannerService) GetItinerary(ctx context.Context, id string) (*response_models.ItineraryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: itinerary id must be a uuid", utils.ErrInvalidInput)
	}
	it, ok := s.store.Get(id)
	if !ok {
		return nil, utils.ErrItineraryNotFound
	}
	return it, nil
}

func (s *PlannerService) save(result *ItineraryResult, optimize bool) *response_models.ItineraryResponse {
	resp := BuildItineraryResponse(uuid.NewString(), result, optimize, s.now())
	s.store.Set(resp.ID, resp, s.cfg.ItineraryTTL)
	return resp
}

func isRejectedItinerary(err error) bool {
	var verr *route_models.ValidationError
	var perr *route_models.ParseError
	return errors.As(err, &verr) || errors.As(err, &perr)
}

func BuildItineraryResponse(id string, result *ItineraryResult, optimize bool, createdAt time.Time) *response_models.ItineraryResponse {
	resp := &response_models.ItineraryResponse{
		ID:          id,
		Start:       result.Start,
		Destination: result.Destination,
		Optimized:   optimize,
		Days:        make([]response_models.DayRouteResponse, 0, len(result.Days)),
		CreatedAt:   createdAt.UTC(),
	}

	for _, d := range result.Days {
		resp.Days = append(resp.Days, response_models.DayRouteResponse{
			Day:            d.Segment.Day,
			Key:            d.Segment.Key,
			Stops:          d.Stops,
			Origin:         d.Segment.Origin,
			Destination:    d.Segment.Destination,
			Waypoints:      d.Waypoints,
			OptimizedOrder: d.Segment.OptimizedOrder,
			NavigationURL:  d.NavigationURL,
			Warning:        response_models.BuildWarningResponse(d.Warning),
		})
	}
	for _, w := range result.Warnings {
		resp.Warnings = append(resp.Warnings, *response_models.BuildWarningResponse(w))
	}

	return resp
}
