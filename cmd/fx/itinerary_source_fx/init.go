package itinerary_source_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"roadtrip/internal/config"
	"roadtrip/pkg/utils"
)

var Module = fx.Provide(ProvideItinerarySource)

// ProvideItinerarySource creates the model client for the configured provider.
// A missing API key is logged and leaves the planner without a model, so the
// parse endpoint keeps working.
func ProvideItinerarySource(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (utils.ItinerarySource, error) {
	apiKey, model := cfg.GenerationKey()
	if apiKey == "" {
		logger.Warn("no API key for itinerary provider, trip planning disabled",
			zap.String("provider", cfg.Generation.Provider))
		return nil, nil
	}

	logger.Info("initializing itinerary source",
		zap.String("provider", cfg.Generation.Provider),
		zap.String("model", model))

	source, err := utils.NewItinerarySource(context.Background(), utils.SourceConfig{
		Provider: cfg.Generation.Provider,
		APIKey:   apiKey,
		Model:    model,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return source.Close()
		},
	})
	return source, nil
}
