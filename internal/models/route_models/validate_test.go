package route_models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestBuildRouteModelSortsDaysAndIgnoresUnknownKeys(t *testing.T) {
	raw := decode(t, `{
		"start": {"name": "Golden Gate Bridge", "latitude": 37.8199, "longitude": -122.4783},
		"destination": {"name": "Chinatown"},
		"day-10": {"stops": [{"name": "Muir Woods"}]},
		"day-2": {"stops": [{"name": "Lombard Street", "latitude": "37.8021"}]},
		"day-0": {"stops": [{"name": "ignored"}]},
		"day-02": {"stops": []},
		"notes": "have fun"
	}`)

	model, err := BuildRouteModel(raw)
	require.NoError(t, err)

	days := model.Days()
	require.Len(t, days, 2)
	assert.Equal(t, 2, days[0].Index)
	assert.Equal(t, 10, days[1].Index)

	assert.Equal(t, "Golden Gate Bridge", model.Start().Name)
	assert.True(t, model.Start().HasCoordinates())
	assert.False(t, model.Destination().HasCoordinates())

	lombard := days[0].Stops[0]
	require.NotNil(t, lombard.Latitude)
	assert.InDelta(t, 37.8021, *lombard.Latitude, 1e-9)
	assert.Nil(t, lombard.Longitude)
}

func TestBuildRouteModelMissingEndpoint(t *testing.T) {
	cases := map[string]string{
		"no start":          `{"destination": {"name": "B"}, "day-1": {"stops": []}}`,
		"empty destination": `{"start": {"name": "A"}, "destination": {"name": "  "}, "day-1": {"stops": []}}`,
		"start not object":  `{"start": "A", "destination": {"name": "B"}, "day-1": {"stops": []}}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildRouteModel(decode(t, payload))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
			assert.ErrorIs(t, err, ErrMissingEndpoint)
		})
	}
}

func TestBuildRouteModelNoDays(t *testing.T) {
	_, err := BuildRouteModel(decode(t, `{"start": {"name": "A"}, "destination": {"name": "B"}, "day-x": {}}`))
	assert.ErrorIs(t, err, ErrNoDays)
}

func TestBuildRouteModelStartCheckedBeforeDays(t *testing.T) {
	_, err := BuildRouteModel(decode(t, `{"destination": {"name": "B"}}`))
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}

func TestBuildRouteModelInvalidStops(t *testing.T) {
	_, err := BuildRouteModel(decode(t, `{"start": {"name": "A"}, "destination": {"name": "B"}, "day-1": {"stops": "C"}}`))
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = BuildRouteModel(decode(t, `{"start": {"name": "A"}, "destination": {"name": "B"}, "day-1": {"stops": [{"name": "C"}, {"latitude": 1}]}}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrInvalidStop)
	assert.Equal(t, "day-1.stops[1]", verr.Key)
}

func TestBuildRouteModelEmptyAndMissingStops(t *testing.T) {
	model, err := BuildRouteModel(decode(t, `{"start": {"name": "A"}, "destination": {"name": "B"}, "day-1": {}, "day-2": {"stops": null}}`))
	require.NoError(t, err)
	for _, d := range model.Days() {
		assert.Empty(t, d.Stops)
	}
}

func TestRouteModelAccessorsReturnCopies(t *testing.T) {
	model, err := BuildRouteModel(decode(t, `{"start": {"name": "A", "latitude": 1, "longitude": 2}, "destination": {"name": "B"}, "day-1": {"stops": [{"name": "C"}]}}`))
	require.NoError(t, err)

	days := model.Days()
	days[0].Stops[0].Name = "mutated"
	start := model.Start()
	*start.Latitude = 99

	assert.Equal(t, "C", model.Days()[0].Stops[0].Name)
	assert.Equal(t, 1.0, *model.Start().Latitude)
}

func TestDuplicateStopNamesAreKept(t *testing.T) {
	model, err := BuildRouteModel(decode(t, `{"start": {"name": "A"}, "destination": {"name": "A"}, "day-1": {"stops": [{"name": "C"}, {"name": "C"}]}}`))
	require.NoError(t, err)
	assert.Len(t, model.Days()[0].Stops, 2)
}

func TestSegmentOrdered(t *testing.T) {
	seg := DayRouteSegment{
		Day:           1,
		Intermediates: []Stop{{Name: "X"}, {Name: "Y"}, {Name: "Z"}},
	}
	assert.Equal(t, []Stop{{Name: "X"}, {Name: "Y"}, {Name: "Z"}}, seg.Ordered())

	next := seg.WithOrder([]int{2, 0, 1})
	assert.Equal(t, []Stop{{Name: "Z"}, {Name: "X"}, {Name: "Y"}}, next.Ordered())
	assert.Nil(t, seg.OptimizedOrder)
}

func TestSegmentOrdered_IgnoresInvalidOrder(t *testing.T) {
	stops := []Stop{{Name: "X"}, {Name: "Y"}, {Name: "Z"}}
	cases := map[string][]int{
		"out of range": {0, 5, 1},
		"negative":     {0, -1, 1},
		"repeated":     {0, 0, 1},
		"too short":    {1, 0},
	}
	for name, order := range cases {
		t.Run(name, func(t *testing.T) {
			seg := DayRouteSegment{Day: 1, Intermediates: stops, OptimizedOrder: order}
			assert.NotPanics(t, func() { seg.Ordered() })
			assert.Equal(t, stops, seg.Ordered())
		})
	}
}

func TestValidateOrder(t *testing.T) {
	assert.NoError(t, ValidateOrder([]int{2, 0, 1}, 3))
	assert.NoError(t, ValidateOrder(nil, 0))
	assert.Error(t, ValidateOrder([]int{0, 1}, 3))
	assert.Error(t, ValidateOrder([]int{0, 3, 1}, 3))
	assert.Error(t, ValidateOrder([]int{1, 1, 0}, 3))
}
