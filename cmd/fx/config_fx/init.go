package config_fx

import (
	"os"

	"go.uber.org/fx"

	"roadtrip/internal/config"
)

var Module = fx.Provide(provideConfig)

// TRIP_CONFIG optionally points at a YAML file layered over the environment.
func provideConfig() (config.Config, error) {
	return config.Load(os.Getenv("TRIP_CONFIG"))
}
