package license

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	lemonSqueezyBaseURL = "https://api.lemonsqueezy.com"
	validatePath        = "/v1/licenses/validate"
	jsonAPIContentType  = "application/vnd.api+json"
)

var verificationHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

// checks license keys against Lemon Squeezy. stateless: every call
// goes to the service, nothing is cached.
type Verifier struct {
	config     Config
	httpClient *http.Client
}

func NewVerifier(config Config) *Verifier {
	if config.BaseURL == "" {
		config.BaseURL = lemonSqueezyBaseURL
	}

	return &Verifier{
		config:     config,
		httpClient: verificationHTTPClient,
	}
}

// creates a verifier using the given HTTP client
func NewVerifierWithClient(config Config, client *http.Client) *Verifier {
	v := NewVerifier(config)
	if client != nil {
		v.httpClient = client
	}
	return v
}

// Verify validates key and classifies the outcome. Transport and decoding
// failures come back as StatusConnectionError rather than an error value.
func (v *Verifier) Verify(ctx context.Context, key string) Result {
	resp, err := v.validate(ctx, strings.TrimSpace(key))
	if err != nil {
		return Result{
			Status:  StatusConnectionError,
			Message: fmt.Sprintf("Error connecting to verification API: %v", err),
		}
	}

	return v.classify(resp)
}

func (v *Verifier) classify(resp *validateResponse) Result {
	if !resp.Valid {
		msg := strings.TrimSpace(resp.Error)
		if msg == "" {
			msg = MessageInvalid
		}
		return Result{Status: StatusInvalid, Message: msg}
	}

	if resp.productID() != strings.TrimSpace(v.config.ProductID) {
		return Result{Status: StatusWrongProduct, Message: MessageWrongProduct}
	}

	// a key from another store is treated like a key for another product
	if store := resp.storeID(); store != "" && v.config.StoreID != "" && store != strings.TrimSpace(v.config.StoreID) {
		return Result{Status: StatusWrongProduct, Message: MessageWrongProduct}
	}

	return Result{Status: StatusValid, Message: MessageValid}
}

// the body is decoded whatever the status code: the service reports
// rejected keys with a 4xx and a JSON error
func (v *Verifier) validate(ctx context.Context, key string) (*validateResponse, error) {
	payload, err := json.Marshal(map[string]string{"license_key": key})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(v.config.BaseURL, "/") + validatePath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", jsonAPIContentType)
	req.Header.Set("Content-Type", jsonAPIContentType)
	req.Header.Set("Authorization", "Bearer "+v.config.APIKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close() //nolint:errcheck

	var out validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	return &out, nil
}
