package route_models

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var dayKeyPattern = regexp.MustCompile(`^day-([1-9][0-9]*)$`)

func DayKey(n int) string { return fmt.Sprintf("day-%d", n) }

// ParseDayKey returns the day number of a "day-<n>" key. Keys that are not of
// that form, including "day-0" and zero-padded numbers, report false.
func ParseDayKey(key string) (int, bool) {
	m := dayKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// BuildRouteModel validates an untyped itinerary payload and returns the
// typed model. The first problem found is returned as a *ValidationError.
func BuildRouteModel(raw map[string]any) (*RouteModel, error) {
	if raw == nil {
		return nil, newValidationError(ErrMissingEndpoint, "start", "payload is empty")
	}

	start, err := decodeEndpoint(raw, "start")
	if err != nil {
		return nil, err
	}
	destination, err := decodeEndpoint(raw, "destination")
	if err != nil {
		return nil, err
	}

	indices := make([]int, 0, len(raw))
	for key := range raw {
		if n, ok := ParseDayKey(key); ok {
			indices = append(indices, n)
		}
	}
	if len(indices) == 0 {
		return nil, newValidationError(ErrNoDays, "", "no day-<n> keys found")
	}
	sort.Ints(indices)

	days := make([]DayPlan, 0, len(indices))
	for _, n := range indices {
		key := DayKey(n)
		stops, err := decodeDay(key, raw[key])
		if err != nil {
			return nil, err
		}
		days = append(days, DayPlan{Index: n, Stops: stops})
	}

	return &RouteModel{start: start, destination: destination, days: days}, nil
}

func decodeEndpoint(raw map[string]any, key string) (Stop, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return Stop{}, newValidationError(ErrMissingEndpoint, key, "key is missing")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return Stop{}, newValidationError(ErrMissingEndpoint, key, "expected an object, got %T", v)
	}
	stop, ok := decodeStop(obj)
	if !ok {
		return Stop{}, newValidationError(ErrMissingEndpoint, key, "name is missing or empty")
	}
	return stop, nil
}

func decodeDay(key string, v any) ([]Stop, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, newValidationError(ErrInvalidDay, key, "expected an object, got %T", v)
	}

	rawStops, present := obj["stops"]
	if !present || rawStops == nil {
		return []Stop{}, nil
	}
	list, ok := rawStops.([]any)
	if !ok {
		return nil, newValidationError(ErrInvalidDay, key, "stops must be an array, got %T", rawStops)
	}

	stops := make([]Stop, 0, len(list))
	for i, item := range list {
		stopObj, ok := item.(map[string]any)
		if !ok {
			return nil, newValidationError(ErrInvalidStop, fmt.Sprintf("%s.stops[%d]", key, i), "expected an object, got %T", item)
		}
		stop, ok := decodeStop(stopObj)
		if !ok {
			return nil, newValidationError(ErrInvalidStop, fmt.Sprintf("%s.stops[%d]", key, i), "name is missing or empty")
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

func decodeStop(obj map[string]any) (Stop, bool) {
	name, _ := obj["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return Stop{}, false
	}
	return Stop{
		Name:      name,
		Latitude:  decodeCoordinate(obj["latitude"]),
		Longitude: decodeCoordinate(obj["longitude"]),
	}, true
}

// decodeCoordinate accepts JSON numbers and numeric strings. Anything else,
// including null, leaves the axis unset.
func decodeCoordinate(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case int:
		f = float64(t)
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
