package services

import (
	"net/url"
	"strings"

	"roadtrip/internal/models/route_models"
)

const DefaultMapsDirectionsURL = "https://www.google.com/maps/dir/"

type NavigationLinkBuilderInterface interface {
	Build(seg route_models.DayRouteSegment) string
}

// NavigationLinkBuilder renders a Google Maps directions URL for a day. The
// waypoints follow the segment's display order.
type NavigationLinkBuilder struct {
	BaseURL string
}

func NewNavigationLinkBuilder() *NavigationLinkBuilder {
	return &NavigationLinkBuilder{BaseURL: DefaultMapsDirectionsURL}
}

func (b *NavigationLinkBuilder) Build(seg route_models.DayRouteSegment) string {
	base := b.BaseURL
	if base == "" {
		base = DefaultMapsDirectionsURL
	}

	params := []string{
		"api=1",
		"origin=" + url.QueryEscape(seg.Origin.Name),
		"destination=" + url.QueryEscape(seg.Destination.Name),
	}

	ordered := seg.Ordered()
	if len(ordered) > 0 {
		names := make([]string, 0, len(ordered))
		for _, s := range ordered {
			names = append(names, s.Name)
		}
		params = append(params, "waypoints="+url.QueryEscape(strings.Join(names, "|")))
	}
	params = append(params, "travelmode=driving")

	return base + "?" + strings.Join(params, "&")
}
