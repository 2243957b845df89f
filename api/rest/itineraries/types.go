package itineraries

import (
	"context"
	"time"

	"codeberg.org/atlasagency/server/internal/paywall"
	"codeberg.org/atlasagency/server/internal/planner"
	"codeberg.org/atlasagency/server/internal/trip"
)

// generates split itineraries from trip requests
type Planner interface {
	Plan(ctx context.Context, req trip.Request) (*planner.Result, error)
}

// gated itinerary as returned to the client
type Response struct {
	Destination string       `json:"destination"`
	Duration    int          `json:"duration"`
	DayCount    int          `json:"day_count"`
	Model       string       `json:"model,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
	View        paywall.View `json:"view"`
}
