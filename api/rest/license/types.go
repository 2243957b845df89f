package license

import (
	"context"

	"codeberg.org/atlasagency/server/internal/license"
	"codeberg.org/atlasagency/server/internal/paywall"
)

// validates license keys against the payment platform
type Verifier interface {
	Verify(ctx context.Context, key string) license.Result
}

type VerifyRequest struct {
	LicenseKey string `json:"license_key" binding:"required"`
}

type VerifyResponse struct {
	Status   license.Status `json:"status"`
	Message  string         `json:"message"`
	Unlocked bool           `json:"unlocked"`

	// present when the session already holds an itinerary
	View *paywall.View `json:"view,omitempty"`
}

type StatusResponse struct {
	Unlocked      bool   `json:"unlocked"`
	HasItinerary  bool   `json:"has_itinerary"`
	CheckoutURL   string `json:"checkout_url,omitempty"`
	CheckoutLabel string `json:"checkout_label,omitempty"`
}
