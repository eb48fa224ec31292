package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"roadtrip/internal/models/route_models"
)

const DefaultRouteTimeout = 10 * time.Second

const (
	ReasonRequestFailed = "routing request failed"
	ReasonTimeout       = "routing request timed out"
	ReasonNoRoute       = "no route found"
	ReasonBadOrder      = "routing service returned no usable waypoint order"
)

type RouteOptimizerInterface interface {
	Optimize(ctx context.Context, seg route_models.DayRouteSegment, optimize bool) (route_models.DayRouteSegment, *route_models.OptimizationWarning)
}

// RouteOptimizer asks the routing service for a better visiting order of one
// day's intermediates. It never fails a day: any problem leaves the original
// order in place and comes back as a warning.
type RouteOptimizer struct {
	client  RoutingClient
	timeout time.Duration
	logger  *zap.Logger
}

func NewRouteOptimizer(client RoutingClient, timeout time.Duration, logger *zap.Logger) *RouteOptimizer {
	if timeout <= 0 {
		timeout = DefaultRouteTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouteOptimizer{client: client, timeout: timeout, logger: logger}
}

func (o *RouteOptimizer) Optimize(ctx context.Context, seg route_models.DayRouteSegment, optimize bool) (route_models.DayRouteSegment, *route_models.OptimizationWarning) {
	k := len(seg.Intermediates)
	if !optimize || k < 2 {
		return seg, nil
	}

	warn := func(reason string, err error) (route_models.DayRouteSegment, *route_models.OptimizationWarning) {
		o.logger.Warn("waypoint optimization skipped",
			zap.Int("day", seg.Day),
			zap.String("reason", reason),
			zap.Error(err))
		return seg.WithOrder(nil), &route_models.OptimizationWarning{Day: seg.Day, Reason: reason, Err: err}
	}

	if o.client == nil {
		return warn(ReasonRequestFailed, ErrRoutingDisabled)
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.ComputeRoute(callCtx, RouteRequest{
		Origin:        seg.Origin.Name,
		Destination:   seg.Destination.Name,
		Intermediates: seg.IntermediateNames(),
		Mode:          TravelModeDrive,
		OptimizeOrder: true,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return warn(ReasonTimeout, err)
		}
		return warn(ReasonRequestFailed, err)
	}
	if resp == nil || !resp.RouteFound {
		return warn(ReasonNoRoute, nil)
	}
	if err := route_models.ValidateOrder(resp.OptimizedOrder, k); err != nil {
		return warn(ReasonBadOrder, err)
	}

	o.logger.Debug("waypoint order optimized",
		zap.Int("day", seg.Day),
		zap.Ints("order", resp.OptimizedOrder))

	return seg.WithOrder(resp.OptimizedOrder), nil
}
