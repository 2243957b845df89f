package itinerary

// one day of the generated itinerary
type Day struct {
	Number       int    `json:"number"`
	Heading      string `json:"heading"` // heading line without markdown markers, e.g. "DAY 1 : Arrival"
	Title        string `json:"title"`   // heading text after the colon
	Body         string `json:"body"`    // display text, image field removed
	ImageKeyword string `json:"image_keyword,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
}

// a generated document split into day blocks and an optional budget summary
type Itinerary struct {
	Raw        string `json:"raw"`
	Days       []Day  `json:"days"`
	Summary    string `json:"summary,omitempty"`
	HasSummary bool   `json:"has_summary"`
}

// returns the free preview day
func (it *Itinerary) Free() Day {
	if it == nil || len(it.Days) == 0 {
		return Day{}
	}
	return it.Days[0]
}

// returns the days behind the paywall
func (it *Itinerary) Locked() []Day {
	if it == nil || len(it.Days) < 2 {
		return nil
	}
	return it.Days[1:]
}
