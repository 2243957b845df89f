package planner

import (
	"codeberg.org/atlasagency/server/internal/itinerary"
	"codeberg.org/atlasagency/server/internal/llm"
)

// turns trip requests into split itineraries
type Planner struct {
	generator llm.TextGenerator
}

// contains the split itinerary and generation metadata
type Result struct {
	Itinerary    *itinerary.Itinerary `json:"itinerary"`
	Model        string               `json:"model"`
	InputTokens  int                  `json:"input_tokens"`
	OutputTokens int                  `json:"output_tokens"`
}
