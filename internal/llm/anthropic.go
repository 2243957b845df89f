package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com"
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
)

type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
}

type anthropicResponse struct {
	ID      string `json:"id"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string `json:"model"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type AnthropicGenerator struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewAnthropicGenerator(config Config) *AnthropicGenerator {
	config = applyDefaults(config)

	if config.Model == "" {
		config.Model = defaultAnthropicModel
	}

	if config.BaseURL == "" {
		config.BaseURL = anthropicBaseURL
	}

	return &AnthropicGenerator{
		config:     config,
		httpClient: generationHTTPClient,
		limiter:    newRateLimiter(),
	}
}

func (a *AnthropicGenerator) Model() string {
	return a.config.Model
}

func (a *AnthropicGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	reqBody := anthropicRequest{
		Model:       a.config.Model,
		MaxTokens:   maxTokensFor(req, a.config),
		System:      req.SystemPrompt,
		Temperature: a.config.temperature(),
		Messages:    req.Messages,
	}

	var apiResp anthropicResponse
	err := postJSON(ctx, a.httpClient, a.limiter, strings.TrimRight(a.config.BaseURL, "/")+"/v1/messages", map[string]string{
		"x-api-key":         a.config.APIKey,
		"anthropic-version": anthropicVersion,
	}, reqBody, &apiResp)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, c := range apiResp.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}

	if text.Len() == 0 {
		return nil, fmt.Errorf("no content in response")
	}

	return &TextGenerationResponse{
		Text: strings.TrimSpace(text.String()),
		Usage: Usage{
			InputTokens:  apiResp.Usage.InputTokens,
			OutputTokens: apiResp.Usage.OutputTokens,
		},
	}, nil
}
