package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

const (
	openaiBaseURL      = "https://api.openai.com"
	defaultOpenAIModel = "gpt-4o"
)

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float32   `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type OpenAIGenerator struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewOpenAIGenerator(config Config) *OpenAIGenerator {
	config = applyDefaults(config)

	if config.Model == "" {
		config.Model = defaultOpenAIModel
	}

	if config.BaseURL == "" {
		config.BaseURL = openaiBaseURL
	}

	return &OpenAIGenerator{
		config:     config,
		httpClient: generationHTTPClient, // use shared client with proper timeouts and connection pooling
		limiter:    newRateLimiter(),
	}
}

func (o *OpenAIGenerator) Model() string {
	return o.config.Model
}

func (o *OpenAIGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	messages := make([]Message, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, Message{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, req.Messages...)

	reqBody := chatCompletionRequest{
		Model:       o.config.Model,
		Messages:    messages,
		MaxTokens:   maxTokensFor(req, o.config),
		Temperature: o.config.temperature(),
	}

	var apiResp chatCompletionResponse
	err := postJSON(ctx, o.httpClient, o.limiter, strings.TrimRight(o.config.BaseURL, "/")+"/v1/chat/completions", map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", o.config.APIKey),
	}, reqBody, &apiResp)
	if err != nil {
		return nil, err
	}

	if len(apiResp.Choices) == 0 || strings.TrimSpace(apiResp.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("no content in response")
	}

	return &TextGenerationResponse{
		Text: strings.TrimSpace(apiResp.Choices[0].Message.Content),
		Usage: Usage{
			InputTokens:  apiResp.Usage.PromptTokens,
			OutputTokens: apiResp.Usage.CompletionTokens,
		},
	}, nil
}
