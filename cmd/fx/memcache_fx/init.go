package memcache_fx

import (
	"go.uber.org/fx"

	mem "roadtrip/pkg/memcache"
)

var Module = fx.Provide(provideItineraryStore)

func provideItineraryStore() mem.ItineraryStore {
	return mem.NewItineraries()
}
