package utils

import (
	"fmt"
	"strings"

	"roadtrip/internal/models/request_models"
)

const itineraryExample = `{
  "start": {"name": "Golden Gate Bridge, San Francisco, CA", "latitude": 37.8199, "longitude": -122.4783},
  "destination": {"name": "Chinatown, Stockton St, San Francisco, CA 94108", "latitude": 37.7941, "longitude": -122.4078},
  "day-1": {
    "stops": [{"name": "Fisherman's Wharf, 505 Beach St, San Francisco, CA 94133", "latitude": 37.8080, "longitude": -122.4177}]
  },
  "day-2": {
    "stops": [{"name": "Lombard Street, San Francisco, CA", "latitude": 37.8021, "longitude": -122.4187}]
  }
}`

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

// BuildTripPrompt renders the planning instruction sent to the model.
func BuildTripPrompt(p request_models.TripPreferences) string {
	var b strings.Builder

	b.WriteString("You are a road-trip route planner.\n")
	b.WriteString("Based on these preferences:\n")
	fmt.Fprintf(&b, "- Length of trip: %d days\n", p.Days)
	fmt.Fprintf(&b, "- Start point: %s\n", orNotSpecified(p.StartPoint))
	fmt.Fprintf(&b, "- Destination point: %s\n", orNotSpecified(p.DestinationPoint))
	fmt.Fprintf(&b, "- Interests: %s\n", orNotSpecified(strings.Join(p.Interests, ", ")))
	if p.IncludeMeals {
		b.WriteString("- Accommodate meals: Yes\n")
		fmt.Fprintf(&b, "  Lunch: %s, Dinner: %s\n",
			orDefault(p.LunchPref, "No preference"), orDefault(p.DinnerPref, "No preference"))
	} else {
		b.WriteString("- Accommodate meals: No\n")
	}
	fmt.Fprintf(&b, "- Travel pace: %s\n", orNotSpecified(p.TravelPace))
	fmt.Fprintf(&b, "- Budget range: %s\n", orNotSpecified(p.Budget))
	fmt.Fprintf(&b, "- Additional notes: %s\n", orNotSpecified(p.Notes))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Return ONLY a JSON object with keys \"start\", \"destination\" and \"day-1\" through \"day-%d\".\n", p.Days)
	b.WriteString("Each day has a \"stops\" array in visiting order. Every place has a \"name\" that Google Maps can find, ")
	b.WriteString("plus numeric \"latitude\" and \"longitude\" when known.\n")
	b.WriteString("Example:\n")
	b.WriteString(itineraryExample)
	b.WriteString("\nNo comments, no markdown.\n")

	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
