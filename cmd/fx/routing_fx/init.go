package routing_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"roadtrip/internal/config"
	"roadtrip/internal/services"
)

var Module = fx.Provide(provideRoutingClient)

func provideRoutingClient(cfg config.Config, logger *zap.Logger) services.RoutingClient {
	if cfg.Routing.APIKey == "" {
		logger.Warn("GOOGLE_ROUTES_API_KEY is empty, waypoint optimization will be skipped")
	}
	google := services.NewGoogleRoutesClient(cfg.Routing.APIKey, cfg.Routing.BaseURL)
	return services.NewCachedRoutingClient(google, services.NewInMemoryRouteCache(), cfg.Routing.CacheTTL)
}
