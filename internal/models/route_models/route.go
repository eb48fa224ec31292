package route_models

import "fmt"

// Stop is a named place. Coordinates are optional and each axis may be absent
// on its own; the model never geocodes.
type Stop struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (s Stop) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

func (s Stop) clone() Stop {
	out := Stop{Name: s.Name}
	if s.Latitude != nil {
		lat := *s.Latitude
		out.Latitude = &lat
	}
	if s.Longitude != nil {
		lng := *s.Longitude
		out.Longitude = &lng
	}
	return out
}

func cloneStops(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	for i, s := range stops {
		out[i] = s.clone()
	}
	return out
}

// DayPlan holds the stops of one day in visiting order. Index is the number
// taken from the "day-<n>" key, which may have gaps.
type DayPlan struct {
	Index int
	Stops []Stop
}

func (d DayPlan) Key() string { return DayKey(d.Index) }

func (d DayPlan) LastStop() (Stop, bool) {
	if len(d.Stops) == 0 {
		return Stop{}, false
	}
	return d.Stops[len(d.Stops)-1], true
}

func (d DayPlan) FirstStop() (Stop, bool) {
	if len(d.Stops) == 0 {
		return Stop{}, false
	}
	return d.Stops[0], true
}

// RouteModel is a validated multi-day itinerary. Fields are unexported so the
// model stays immutable after BuildRouteModel; accessors hand out copies.
type RouteModel struct {
	start       Stop
	destination Stop
	days        []DayPlan
}

func (m *RouteModel) Start() Stop       { return m.start.clone() }
func (m *RouteModel) Destination() Stop { return m.destination.clone() }
func (m *RouteModel) DayCount() int     { return len(m.days) }

// Days returns the day plans sorted by ascending day index.
func (m *RouteModel) Days() []DayPlan {
	out := make([]DayPlan, len(m.days))
	for i, d := range m.days {
		out[i] = DayPlan{Index: d.Index, Stops: cloneStops(d.Stops)}
	}
	return out
}

// ToMap re-serializes the model into the same untyped shape BuildRouteModel accepts.
func (m *RouteModel) ToMap() map[string]any {
	out := make(map[string]any, len(m.days)+2)
	out["start"] = stopToMap(m.start)
	out["destination"] = stopToMap(m.destination)
	for _, d := range m.days {
		stops := make([]any, 0, len(d.Stops))
		for _, s := range d.Stops {
			stops = append(stops, stopToMap(s))
		}
		out[d.Key()] = map[string]any{"stops": stops}
	}
	return out
}

func stopToMap(s Stop) map[string]any {
	out := map[string]any{"name": s.Name}
	if s.Latitude != nil {
		out["latitude"] = *s.Latitude
	}
	if s.Longitude != nil {
		out["longitude"] = *s.Longitude
	}
	return out
}

// DayRouteSegment is the resolved route for one day. OptimizedOrder, when set,
// is a permutation of Intermediates indices chosen by the routing service.
// Segments are values; optimization returns a new one.
type DayRouteSegment struct {
	Day            int    `json:"day"`
	Key            string `json:"key"`
	Origin         Stop   `json:"origin"`
	Destination    Stop   `json:"destination"`
	Intermediates  []Stop `json:"intermediates"`
	OptimizedOrder []int  `json:"optimized_order,omitempty"`
}

// Ordered returns the intermediates in display order. An OptimizedOrder that
// is not a permutation of the intermediates is ignored.
func (s DayRouteSegment) Ordered() []Stop {
	if len(s.OptimizedOrder) == 0 || ValidateOrder(s.OptimizedOrder, len(s.Intermediates)) != nil {
		return cloneStops(s.Intermediates)
	}
	out := make([]Stop, 0, len(s.Intermediates))
	for _, idx := range s.OptimizedOrder {
		out = append(out, s.Intermediates[idx].clone())
	}
	return out
}

func (s DayRouteSegment) WithOrder(order []int) DayRouteSegment {
	next := DayRouteSegment{
		Day:           s.Day,
		Key:           s.Key,
		Origin:        s.Origin.clone(),
		Destination:   s.Destination.clone(),
		Intermediates: cloneStops(s.Intermediates),
	}
	if order != nil {
		next.OptimizedOrder = append([]int(nil), order...)
	}
	return next
}

// IntermediateNames lists the intermediate stop names in their original order.
func (s DayRouteSegment) IntermediateNames() []string {
	names := make([]string, 0, len(s.Intermediates))
	for _, st := range s.Intermediates {
		names = append(names, st.Name)
	}
	return names
}

// ValidateOrder checks that order contains each of 0..k-1 exactly once.
func ValidateOrder(order []int, k int) error {
	if len(order) != k {
		return fmt.Errorf("order has %d entries, want %d", len(order), k)
	}
	seen := make([]bool, k)
	for _, idx := range order {
		if idx < 0 || idx >= k {
			return fmt.Errorf("index %d out of range [0,%d)", idx, k)
		}
		if seen[idx] {
			return fmt.Errorf("index %d repeated", idx)
		}
		seen[idx] = true
	}
	return nil
}
