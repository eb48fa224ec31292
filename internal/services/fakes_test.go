package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type fakeRoutingClient struct {
	mu       sync.Mutex
	calls    []RouteRequest
	count    atomic.Int32
	delay    time.Duration
	delayFor map[string]time.Duration
	respond  func(req RouteRequest) (*RouteResponse, error)
}

func (f *fakeRoutingClient) ComputeRoute(ctx context.Context, req RouteRequest) (*RouteResponse, error) {
	f.count.Add(1)
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	delay := f.delay
	if d, ok := f.delayFor[req.Origin]; ok {
		delay = d
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.respond != nil {
		return f.respond(req)
	}
	return reverseOrder(req), nil
}

func (f *fakeRoutingClient) Calls() []RouteRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RouteRequest(nil), f.calls...)
}

// reverseOrder answers with the intermediates visited back to front.
func reverseOrder(req RouteRequest) *RouteResponse {
	k := len(req.Intermediates)
	order := make([]int, k)
	for i := range order {
		order[i] = k - 1 - i
	}
	return &RouteResponse{RouteFound: true, OptimizedOrder: order, DistanceMeters: 1000 * k}
}
