package response_models

import (
	"time"

	"roadtrip/internal/models/route_models"
)

type WarningResponse struct {
	Day    int    `json:"day"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

type DayRouteResponse struct {
	Day            int                 `json:"day"`
	Key            string              `json:"key"`
	Stops          []route_models.Stop `json:"stops"`
	Origin         route_models.Stop   `json:"origin"`
	Destination    route_models.Stop   `json:"destination"`
	Waypoints      []route_models.Stop `json:"waypoints"`
	OptimizedOrder []int               `json:"optimized_order,omitempty"`
	NavigationURL  string              `json:"navigation_url"`
	Warning        *WarningResponse    `json:"warning,omitempty"`
}

type ItineraryResponse struct {
	ID          string             `json:"id"`
	Start       route_models.Stop  `json:"start"`
	Destination route_models.Stop  `json:"destination"`
	Optimized   bool               `json:"optimized"`
	Days        []DayRouteResponse `json:"days"`
	Warnings    []WarningResponse  `json:"warnings,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

func BuildWarningResponse(w *route_models.OptimizationWarning) *WarningResponse {
	if w == nil {
		return nil
	}
	out := &WarningResponse{Day: w.Day, Reason: w.Reason}
	if w.Err != nil {
		out.Detail = w.Err.Error()
	}
	return out
}
