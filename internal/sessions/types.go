package sessions

import (
	"context"
	"time"

	"codeberg.org/atlasagency/server/internal/itinerary"
	"codeberg.org/atlasagency/server/internal/paywall"
	"codeberg.org/atlasagency/server/internal/trip"
)

// per-visitor state: the unlock gate and the last generated itinerary
type Session struct {
	ID           string               `json:"id"`
	Gate         paywall.Gate         `json:"gate"`
	Request      *trip.Request        `json:"request,omitempty"`
	Itinerary    *itinerary.Itinerary `json:"itinerary,omitempty"`
	GeneratedAt  time.Time            `json:"generated_at"`
	CreatedAt    time.Time            `json:"created_at"`
	LastActivity time.Time            `json:"last_activity"`
}

// Store keeps sessions by id. Update applies fn atomically to the stored
// session, creating it when absent, so concurrent requests of one visitor
// never overwrite each other's changes.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session)) (*Session, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

func newSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Gate:         paywall.Locked,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// returns a copy safe to hand out of the store
func (s *Session) clone() *Session {
	c := *s
	return &c
}
