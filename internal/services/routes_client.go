package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultRoutesBaseURL = "https://routes.googleapis.com"
	computeRoutesPath    = "/directions/v2:computeRoutes"
	routesFieldMask      = "routes.optimizedIntermediateWaypointIndex,routes.distanceMeters,routes.duration"
)

type TravelMode string

const TravelModeDrive TravelMode = "DRIVE"

var ErrRoutingDisabled = errors.New("routing service is not configured")

type RouteRequest struct {
	Origin        string
	Destination   string
	Intermediates []string
	Mode          TravelMode
	OptimizeOrder bool
}

// RouteResponse is what the engine needs back from a routing service.
// OptimizedOrder[i] is the index into the request's Intermediates that should
// be visited i-th.
type RouteResponse struct {
	RouteFound      bool
	OptimizedOrder  []int
	DistanceMeters  int
	DurationSeconds int
}

type RoutingClient interface {
	ComputeRoute(ctx context.Context, req RouteRequest) (*RouteResponse, error)
}

// -------------- Google Routes API client ---------------

// GoogleRoutesClient has no client-level timeout; each call is bounded by the
// caller's context deadline.
type GoogleRoutesClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewGoogleRoutesClient(apiKey, baseURL string) *GoogleRoutesClient {
	if baseURL == "" {
		baseURL = DefaultRoutesBaseURL
	}
	return &GoogleRoutesClient{
		HTTP:    &http.Client{},
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

type routesWaypoint struct {
	Address string `json:"address"`
}

type computeRoutesRequest struct {
	Origin                routesWaypoint   `json:"origin"`
	Destination           routesWaypoint   `json:"destination"`
	Intermediates         []routesWaypoint `json:"intermediates,omitempty"`
	TravelMode            TravelMode       `json:"travelMode"`
	OptimizeWaypointOrder bool             `json:"optimizeWaypointOrder"`
}

type computeRoutesResponse struct {
	Routes []struct {
		OptimizedIntermediateWaypointIndex []int  `json:"optimizedIntermediateWaypointIndex"`
		DistanceMeters                     int    `json:"distanceMeters"`
		Duration                           string `json:"duration"`
	} `json:"routes"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("routes api status %d: %s", e.Code, e.Body)
}

func (c *GoogleRoutesClient) ComputeRoute(ctx context.Context, in RouteRequest) (*RouteResponse, error) {
	if c.APIKey == "" {
		return nil, ErrRoutingDisabled
	}

	mode := in.Mode
	if mode == "" {
		mode = TravelModeDrive
	}

	body := computeRoutesRequest{
		Origin:                routesWaypoint{Address: in.Origin},
		Destination:           routesWaypoint{Address: in.Destination},
		TravelMode:            mode,
		OptimizeWaypointOrder: in.OptimizeOrder,
	}
	for _, name := range in.Intermediates {
		body.Intermediates = append(body.Intermediates, routesWaypoint{Address: name})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal routes request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+computeRoutesPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create routes request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.APIKey)
	req.Header.Set("X-Goog-FieldMask", routesFieldMask)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routes http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var decoded computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode routes response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return &RouteResponse{RouteFound: false}, nil
	}

	route := decoded.Routes[0]
	out := &RouteResponse{
		RouteFound:     true,
		OptimizedOrder: route.OptimizedIntermediateWaypointIndex,
		DistanceMeters: route.DistanceMeters,
	}
	if route.Duration != "" {
		if d, err := time.ParseDuration(route.Duration); err == nil {
			out.DurationSeconds = int(d.Seconds())
		}
	}
	return out, nil
}
