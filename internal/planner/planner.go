package planner

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/atlasagency/server/internal/itinerary"
	"codeberg.org/atlasagency/server/internal/llm"
	"codeberg.org/atlasagency/server/internal/trip"
)

// returned (wrapped) when the generation service call fails
var ErrGeneration = errors.New("itinerary generation failed")

func New(generator llm.TextGenerator) *Planner {
	return &Planner{generator: generator}
}

// builds the prompt, calls the generator once and splits the response.
// generation failures wrap ErrGeneration, formatting failures wrap
// itinerary.ErrUnparseable. nothing is retried.
func (p *Planner) Plan(ctx context.Context, req trip.Request) (*Result, error) {
	prompt := trip.BuildPrompt(req)

	response, err := p.generator.GenerateText(ctx, llm.TextGenerationRequest{
		Messages: []llm.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	it, err := itinerary.Split(response.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to split itinerary: %w", err)
	}

	return &Result{
		Itinerary:    it,
		Model:        p.generator.Model(),
		InputTokens:  response.Usage.InputTokens,
		OutputTokens: response.Usage.OutputTokens,
	}, nil
}
