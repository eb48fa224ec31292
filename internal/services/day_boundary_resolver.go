package services

import (
	"roadtrip/internal/models/route_models"
)

type DayBoundaryResolverInterface interface {
	Resolve(model *route_models.RouteModel) []route_models.DayRouteSegment
}

// DayBoundaryResolver works out where each day starts and ends so that
// consecutive days chain together. Continuity is always computed from the
// unoptimized stop lists.
type DayBoundaryResolver struct{}

func NewDayBoundaryResolver() *DayBoundaryResolver {
	return &DayBoundaryResolver{}
}

// Resolve returns exactly one segment per day, in day order.
//
//   - origin: trip start on the first day, otherwise the previous day's last stop
//     (or the previous segment's destination when that day had no stops).
//   - destination: trip destination on the last day, otherwise this day's last
//     stop (or, for an empty day, the next non-empty day's first stop).
//   - intermediates: first day drops its last stop, last day drops its first
//     stop, middle days drop both. A one-day trip keeps every stop.
func (r *DayBoundaryResolver) Resolve(model *route_models.RouteModel) []route_models.DayRouteSegment {
	if model == nil {
		return nil
	}

	days := model.Days()
	n := len(days)
	start := model.Start()
	destination := model.Destination()

	segments := make([]route_models.DayRouteSegment, 0, n)

	if n == 1 {
		return append(segments, route_models.DayRouteSegment{
			Day:           1,
			Key:           days[0].Key(),
			Origin:        start,
			Destination:   destination,
			Intermediates: days[0].Stops,
		})
	}

	for i, day := range days {
		first := i == 0
		last := i == n-1

		var origin route_models.Stop
		switch {
		case first:
			origin = start
		default:
			if prevLast, ok := days[i-1].LastStop(); ok {
				origin = prevLast
			} else {
				origin = segments[i-1].Destination
			}
		}

		var dest route_models.Stop
		switch {
		case last:
			dest = destination
		default:
			if own, ok := day.LastStop(); ok {
				dest = own
			} else {
				dest = nextAnchor(days[i+1:], destination)
			}
		}

		segments = append(segments, route_models.DayRouteSegment{
			Day:           i + 1,
			Key:           day.Key(),
			Origin:        origin,
			Destination:   dest,
			Intermediates: trimIntermediates(day.Stops, first, last),
		})
	}

	return segments
}

// nextAnchor is the first stop of the next day that has any, falling back to
// the trip destination.
func nextAnchor(rest []route_models.DayPlan, fallback route_models.Stop) route_models.Stop {
	for _, d := range rest {
		if s, ok := d.FirstStop(); ok {
			return s
		}
	}
	return fallback
}

func trimIntermediates(stops []route_models.Stop, first, last bool) []route_models.Stop {
	lo, hi := 0, len(stops)
	if !last {
		hi--
	}
	if !first {
		lo++
	}
	if lo >= hi {
		return []route_models.Stop{}
	}
	out := make([]route_models.Stop, hi-lo)
	copy(out, stops[lo:hi])
	return out
}
