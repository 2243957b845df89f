package main

import (
	"fmt"

	"codeberg.org/atlasagency/server/internal/config"
	"codeberg.org/atlasagency/server/internal/license"
	"codeberg.org/atlasagency/server/internal/llm"
	"codeberg.org/atlasagency/server/internal/planner"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config) (*Services, error) {
	generator, err := llm.NewGenerator(llm.Config{
		Provider:    llm.Provider(cfg.Generator.Provider),
		APIKey:      cfg.Generator.APIKey,
		Model:       cfg.Generator.Model,
		MaxTokens:   cfg.Generator.MaxTokens,
		Temperature: &cfg.Generator.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	verifier := license.NewVerifier(license.Config{
		APIKey:    cfg.License.APIKey,
		ProductID: cfg.License.ProductID,
		StoreID:   cfg.License.StoreID,
	})

	return NewServices(generator, verifier), nil
}

func NewServices(generator llm.TextGenerator, verifier *license.Verifier) *Services {
	return &Services{
		Generator: generator,
		Planner:   planner.New(generator),
		Verifier:  verifier,
	}
}
