package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"roadtrip/internal/config"
	"roadtrip/internal/services"
	mem "roadtrip/pkg/memcache"
	"roadtrip/pkg/utils"
)

var Module = fx.Provide(provideOrchestrator, providePlannerService)

func provideOrchestrator(client services.RoutingClient, cfg config.Config, logger *zap.Logger) services.ItineraryOrchestratorInterface {
	return services.NewEngine(client, cfg.Routing.Timeout, services.OrchestratorConfig{
		MaxConcurrentDays: cfg.Routing.MaxConcurrentDays,
	}, logger)
}

func providePlannerService(
	source utils.ItinerarySource,
	orchestrator services.ItineraryOrchestratorInterface,
	store mem.ItineraryStore,
	cfg config.Config,
	logger *zap.Logger,
) services.PlannerServiceInterface {
	return services.NewPlannerService(source, orchestrator, store, services.PlannerConfig{
		Attempts:        cfg.Generation.Attempts,
		OptimizeDefault: cfg.Routing.OptimizeDefault,
		ItineraryTTL:    cfg.Store.ItineraryTTL,
	}, logger)
}
