package options

import "codeberg.org/atlasagency/server/internal/trip"

// form catalogs plus where to buy a license
type Response struct {
	trip.FormOptions
	CheckoutURL string `json:"checkout_url"`
}
