package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"roadtrip/internal/models/route_models"
)

const DefaultMaxConcurrentDays = 4

type OrchestratorConfig struct {
	MaxConcurrentDays int
}

// DayRoute is one finished day: every stop the model listed for it, the
// resolved segment, its waypoints in final order and a directions link.
// Warning is set when optimization was skipped.
type DayRoute struct {
	Stops         []route_models.Stop
	Segment       route_models.DayRouteSegment
	Waypoints     []route_models.Stop
	NavigationURL string
	Warning       *route_models.OptimizationWarning
}

type ItineraryResult struct {
	Start       route_models.Stop
	Destination route_models.Stop
	Days        []DayRoute
	Warnings    []*route_models.OptimizationWarning
}

type ItineraryOrchestratorInterface interface {
	Run(ctx context.Context, raw string, optimize bool) (*ItineraryResult, error)
	RunModel(ctx context.Context, model *route_models.RouteModel, optimize bool) (*ItineraryResult, error)
}

type ItineraryOrchestrator struct {
	parser    ItineraryParserInterface
	resolver  DayBoundaryResolverInterface
	optimizer RouteOptimizerInterface
	links     NavigationLinkBuilderInterface
	cfg       OrchestratorConfig
	logger    *zap.Logger
}

func NewItineraryOrchestrator(
	parser ItineraryParserInterface,
	resolver DayBoundaryResolverInterface,
	optimizer RouteOptimizerInterface,
	links NavigationLinkBuilderInterface,
	cfg OrchestratorConfig,
	logger *zap.Logger,
) *ItineraryOrchestrator {
	if cfg.MaxConcurrentDays <= 0 {
		cfg.MaxConcurrentDays = DefaultMaxConcurrentDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItineraryOrchestrator{
		parser:    parser,
		resolver:  resolver,
		optimizer: optimizer,
		links:     links,
		cfg:       cfg,
		logger:    logger,
	}
}

// NewEngine wires the default parser, resolver and link builder around a
// routing client.
func NewEngine(client RoutingClient, routeTimeout time.Duration, cfg OrchestratorConfig, logger *zap.Logger) *ItineraryOrchestrator {
	return NewItineraryOrchestrator(
		NewItineraryParser(),
		NewDayBoundaryResolver(),
		NewRouteOptimizer(client, routeTimeout, logger),
		NewNavigationLinkBuilder(),
		cfg,
		logger,
	)
}

// Run parses raw model output and produces every day's route. Parse and
// validation errors are returned as is with no partial result.
func (o *ItineraryOrchestrator) Run(ctx context.Context, raw string, optimize bool) (*ItineraryResult, error) {
	model, err := o.parser.Parse(raw)
	if err != nil {
		o.logger.Info("itinerary rejected", zap.Error(err))
		return nil, err
	}
	return o.RunModel(ctx, model, optimize)
}

// RunModel optimizes the days of an already validated model concurrently.
// Results are always in day order. If ctx ends before every day is done the
// context error is returned and nothing is delivered.
func (o *ItineraryOrchestrator) RunModel(ctx context.Context, model *route_models.RouteModel, optimize bool) (*ItineraryResult, error) {
	plans := model.Days()
	segments := o.resolver.Resolve(model)
	days := make([]DayRoute, len(segments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.MaxConcurrentDays)

	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, warning := o.optimizer.Optimize(gctx, seg, optimize)
			var stops []route_models.Stop
			if i < len(plans) {
				stops = plans[i].Stops
			}
			days[i] = DayRoute{
				Stops:         stops,
				Segment:       out,
				Waypoints:     out.Ordered(),
				NavigationURL: o.links.Build(out),
				Warning:       warning,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ItineraryResult{
		Start:       model.Start(),
		Destination: model.Destination(),
		Days:        days,
	}
	for _, d := range days {
		if d.Warning != nil {
			result.Warnings = append(result.Warnings, d.Warning)
		}
	}

	o.logger.Info("itinerary resolved",
		zap.Int("days", len(days)),
		zap.Bool("optimize", optimize),
		zap.Int("warnings", len(result.Warnings)))

	return result, nil
}
