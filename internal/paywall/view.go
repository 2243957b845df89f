package paywall

import (
	"fmt"

	"codeberg.org/atlasagency/server/internal/itinerary"
)

const (
	PurchaseLabel = "Buy your Unique License Key (9,99€)"
	UnlockPrompt  = "Love this preview? Unlock the full trip!"
	ImageCredit   = "Image dynamically sourced from Unsplash."
)

// a day as the client is allowed to see it
type DayView struct {
	Number       int    `json:"number"`
	Heading      string `json:"heading"`
	Title        string `json:"title"`
	Locked       bool   `json:"locked"`
	Body         string `json:"body,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	ImageCaption string `json:"image_caption,omitempty"`
	ImageCredit  string `json:"image_credit,omitempty"`
}

// the gated rendering of an itinerary
type View struct {
	Unlocked bool      `json:"unlocked"`
	Free     DayView   `json:"free"`
	Locked   []DayView `json:"locked"`

	// withheld while locked, placeholder when the document has none
	Summary       string `json:"summary,omitempty"`
	SummaryLocked bool   `json:"summary_locked"`

	Paywall *PaywallInfo `json:"paywall,omitempty"`
}

// purchase details shown while the gate is locked
type PaywallInfo struct {
	Message       string `json:"message"`
	CheckoutURL   string `json:"checkout_url"`
	CheckoutLabel string `json:"checkout_label"`
}

// Render builds what the client may see of it. While the gate is locked
// only the first day carries content; the other days keep their heading
// and the summary is withheld.
func Render(it *itinerary.Itinerary, gate Gate, checkoutURL string) View {
	view := View{
		Unlocked: gate.Unlocked(),
		Free:     openDay(it.Free()),
		Locked:   make([]DayView, 0, len(it.Locked())),
	}

	for _, day := range it.Locked() {
		if gate.Unlocked() {
			view.Locked = append(view.Locked, openDay(day))
			continue
		}

		view.Locked = append(view.Locked, DayView{
			Number:  day.Number,
			Heading: day.Heading,
			Title:   day.Title,
			Locked:  true,
		})
	}

	hasSummary := it != nil && it.HasSummary

	switch {
	case !hasSummary:
		// nothing to withhold
		view.Summary = itinerary.SummaryPlaceholder
	case gate.Unlocked():
		view.Summary = it.Summary
	default:
		view.SummaryLocked = true
	}

	if !gate.Unlocked() {
		view.Paywall = &PaywallInfo{
			Message:       UnlockPrompt,
			CheckoutURL:   checkoutURL,
			CheckoutLabel: PurchaseLabel,
		}
	}

	return view
}

func openDay(day itinerary.Day) DayView {
	view := DayView{
		Number:   day.Number,
		Heading:  day.Heading,
		Title:    day.Title,
		Body:     day.Body,
		ImageURL: day.ImageURL,
	}

	if day.ImageURL != "" {
		view.ImageCaption = fmt.Sprintf("Inspiration for %s", day.ImageKeyword)
		view.ImageCredit = ImageCredit
	}

	return view
}
