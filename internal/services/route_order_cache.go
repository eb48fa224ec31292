package services

import (
	"context"
	"strings"
	"sync"
	"time"
)

// --------- In-memory cache keyed by the full day request ---------

type routeKey struct {
	Mode          TravelMode
	Origin        string
	Destination   string
	Intermediates string
	Optimize      bool
}

func newRouteKey(req RouteRequest) routeKey {
	return routeKey{
		Mode:          req.Mode,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Intermediates: strings.Join(req.Intermediates, "\x1f"),
		Optimize:      req.OptimizeOrder,
	}
}

type routeCacheEntry struct {
	Response  RouteResponse
	ExpiresAt time.Time
}

type RouteOrderCache interface {
	Get(req RouteRequest) (RouteResponse, bool)
	Set(req RouteRequest, v RouteResponse, ttl time.Duration)
}

type inMemoryRouteCache struct {
	mu    sync.RWMutex
	store map[routeKey]routeCacheEntry
}

func NewInMemoryRouteCache() RouteOrderCache {
	return &inMemoryRouteCache{store: make(map[routeKey]routeCacheEntry)}
}

func (c *inMemoryRouteCache) Get(req RouteRequest) (RouteResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[newRouteKey(req)]
	if !ok || time.Now().After(it.ExpiresAt) {
		return RouteResponse{}, false
	}
	return copyRouteResponse(it.Response), true
}

func (c *inMemoryRouteCache) Set(req RouteRequest, v RouteResponse, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, it := range c.store {
		if now.After(it.ExpiresAt) {
			delete(c.store, k)
		}
	}
	c.store[newRouteKey(req)] = routeCacheEntry{Response: copyRouteResponse(v), ExpiresAt: now.Add(ttl)}
}

func copyRouteResponse(r RouteResponse) RouteResponse {
	r.OptimizedOrder = append([]int(nil), r.OptimizedOrder...)
	return r
}

// CachedRoutingClient serves repeated day requests from the cache. Only found
// routes are cached; errors and empty results always go to the next client.
type CachedRoutingClient struct {
	Next  RoutingClient
	Cache RouteOrderCache
	TTL   time.Duration
}

func NewCachedRoutingClient(next RoutingClient, cache RouteOrderCache, ttl time.Duration) *CachedRoutingClient {
	if cache == nil {
		cache = NewInMemoryRouteCache()
	}
	return &CachedRoutingClient{Next: next, Cache: cache, TTL: ttl}
}

func (c *CachedRoutingClient) ComputeRoute(ctx context.Context, req RouteRequest) (*RouteResponse, error) {
	if c.TTL <= 0 {
		return c.Next.ComputeRoute(ctx, req)
	}
	if v, ok := c.Cache.Get(req); ok {
		return &v, nil
	}
	resp, err := c.Next.ComputeRoute(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.RouteFound {
		c.Cache.Set(req, *resp, c.TTL)
	}
	return resp, nil
}
