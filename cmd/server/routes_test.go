package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/atlasagency/server/api/rest/itineraries"
	apilicense "codeberg.org/atlasagency/server/api/rest/license"
	apierrors "codeberg.org/atlasagency/server/internal/errors"
	"codeberg.org/atlasagency/server/internal/config"
	"codeberg.org/atlasagency/server/internal/itinerary"
	"codeberg.org/atlasagency/server/internal/license"
	"codeberg.org/atlasagency/server/internal/llm"
	"codeberg.org/atlasagency/server/internal/sessions"
	"codeberg.org/atlasagency/server/internal/trip"
)

const twoDayLisbon = `Here is your trip!

### DAY 1 : Alfama and the castle
- 📷 **Image :** [Lisbon Alfama]
- **Morning:** Castelo de São Jorge.

### DAY 2 : Belém
- 📷 **Image :** [Belem,Tower]
- **Morning:** Jerónimos Monastery and its cloister.`

// implements llm.TextGenerator for testing
type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	text    string
	err     error
}

func (f *fakeGenerator) GenerateText(_ context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prompts = append(f.prompts, req.Messages[0].Content)
	if f.err != nil {
		return nil, f.err
	}

	return &llm.TextGenerationResponse{Text: f.text}, nil
}

func (f *fakeGenerator) Model() string {
	return "fake-model"
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompts[len(f.prompts)-1]
}

// fake license service accepting "GOOD-KEY" for product 123
func newLicenseService(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch body["license_key"] {
		case "GOOD-KEY":
			_, _ = w.Write([]byte(`{"valid": true, "instance": {"product_id": "123"}, "meta": {"store_id": 9, "product_id": 123}}`))
		case "OTHER-PRODUCT":
			_, _ = w.Write([]byte(`{"valid": true, "instance": {"product_id": "999"}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"valid": false, "error": "expired"}`))
		}
	}))
	t.Cleanup(server.Close)

	return server
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "0",
		License: config.LicenseConfig{
			ProductID:   "123",
			StoreID:     "9",
			CheckoutURL: "https://shop.example/buy",
		},
		Session: config.SessionConfig{
			Secret: "test-secret-test-secret-test-secret",
			Store:  config.StoreMemory,
			TTL:    time.Hour,
		},
		GenerateRateLimit: "100-M",
	}
}

func newTestServer(t *testing.T, gen *fakeGenerator) *Server {
	t.Helper()

	cfg := testConfig()
	lemon := newLicenseService(t)

	verifier := license.NewVerifier(license.Config{
		APIKey:    "ls-key",
		ProductID: cfg.License.ProductID,
		StoreID:   cfg.License.StoreID,
		BaseURL:   lemon.URL,
	})

	store := sessions.NewMemoryStore(cfg.Session.TTL)
	t.Cleanup(func() { _ = store.Close() })

	srv, err := newServer(cfg, NewServices(gen, verifier), store, nil)
	require.NoError(t, err)

	return srv
}

// a browser keeping its session cookie between requests
type visitor struct {
	t      *testing.T
	srv    *Server
	cookie *http.Cookie
}

func (v *visitor) do(method, path string, body any) *httptest.ResponseRecorder {
	v.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(v.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if v.cookie != nil {
		req.AddCookie(v.cookie)
	}

	w := httptest.NewRecorder()
	v.srv.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == sessions.CookieName {
			v.cookie = c
		}
	}

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func lisbonRequest() map[string]any {
	return map[string]any{
		"destination": "Lisbon",
		"duration":    3,
		"budget":      "Economic",
		"language":    "English",
	}
}

func TestLisbonScenario(t *testing.T) {
	gen := &fakeGenerator{text: twoDayLisbon}
	srv := newTestServer(t, gen)
	alice := &visitor{t: t, srv: srv}

	// generate
	w := alice.do(http.MethodPost, "/api/v1/itineraries", lisbonRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	prompt := gen.lastPrompt()
	assert.Contains(t, prompt, "Lisbon")
	assert.Contains(t, prompt, "3 days")

	resp := decode[itineraries.Response](t, w)
	assert.Equal(t, "Lisbon", resp.Destination)
	assert.Equal(t, 2, resp.DayCount)
	assert.False(t, resp.View.Unlocked)

	assert.Equal(t, 1, resp.View.Free.Number)
	assert.Equal(t, "Alfama and the castle", resp.View.Free.Title)
	assert.Contains(t, resp.View.Free.Body, "Castelo de São Jorge")
	assert.NotContains(t, resp.View.Free.Body, "📷")
	assert.Equal(t, "https://source.unsplash.com/800x600/?Lisbon,Alfama", resp.View.Free.ImageURL)

	require.Len(t, resp.View.Locked, 1)
	assert.Equal(t, 2, resp.View.Locked[0].Number)
	assert.True(t, resp.View.Locked[0].Locked)
	assert.Empty(t, resp.View.Locked[0].Body)
	assert.NotContains(t, w.Body.String(), "Jerónimos")

	assert.Equal(t, itinerary.SummaryPlaceholder, resp.View.Summary)
	require.NotNil(t, resp.View.Paywall)
	assert.Equal(t, "https://shop.example/buy", resp.View.Paywall.CheckoutURL)

	// the stored itinerary is served again
	w = alice.do(http.MethodGet, "/api/v1/itineraries/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Jerónimos")

	// a rejected key keeps the gate closed
	w = alice.do(http.MethodPost, "/api/v1/license/verify", map[string]string{"license_key": "OLD-KEY"})
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	errResp := decode[apierrors.ErrorResponse](t, w)
	assert.Equal(t, apierrors.CodeLicenseInvalid, errResp.Error)
	assert.Equal(t, "expired", errResp.Message)

	w = alice.do(http.MethodPost, "/api/v1/license/verify", map[string]string{"license_key": "OTHER-PRODUCT"})
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, apierrors.CodeWrongProduct, decode[apierrors.ErrorResponse](t, w).Error)

	status := decode[apilicense.StatusResponse](t, alice.do(http.MethodGet, "/api/v1/license/status", nil))
	assert.False(t, status.Unlocked)
	assert.True(t, status.HasItinerary)

	// a valid key unlocks the rest
	w = alice.do(http.MethodPost, "/api/v1/license/verify", map[string]string{"license_key": "  GOOD-KEY "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	verified := decode[apilicense.VerifyResponse](t, w)
	assert.True(t, verified.Unlocked)
	assert.Equal(t, license.MessageValid, verified.Message)
	require.NotNil(t, verified.View)
	assert.Contains(t, verified.View.Locked[0].Body, "Jerónimos")
	assert.Nil(t, verified.View.Paywall)

	// a new itinerary does not lock the session again
	w = alice.do(http.MethodPost, "/api/v1/itineraries", lisbonRequest())
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[itineraries.Response](t, w).View.Unlocked)

	w = alice.do(http.MethodPost, "/api/v1/license/verify", map[string]string{"license_key": "OLD-KEY"})
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	status = decode[apilicense.StatusResponse](t, alice.do(http.MethodGet, "/api/v1/license/status", nil))
	assert.True(t, status.Unlocked)
	assert.Empty(t, status.CheckoutURL)
}

func TestSessionsDoNotLeak(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{text: twoDayLisbon})
	alice := &visitor{t: t, srv: srv}
	bob := &visitor{t: t, srv: srv}

	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/api/v1/itineraries", lisbonRequest()).Code)
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/api/v1/license/verify", map[string]string{"license_key": "GOOD-KEY"}).Code)

	w := bob.do(http.MethodGet, "/api/v1/itineraries/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierrors.CodeNoItinerary, decode[apierrors.ErrorResponse](t, w).Error)

	require.Equal(t, http.StatusOK, bob.do(http.MethodPost, "/api/v1/itineraries", lisbonRequest()).Code)
	w = bob.do(http.MethodGet, "/api/v1/itineraries/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[itineraries.Response](t, w).View.Unlocked)
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		gen    *fakeGenerator
		body   map[string]any
		status int
		code   string
	}{
		{
			name:   "generation service error",
			gen:    &fakeGenerator{err: errors.New("API request failed with status 500: boom")},
			body:   lisbonRequest(),
			status: http.StatusBadGateway,
			code:   apierrors.CodeGenerationFailed,
		},
		{
			name:   "no day headings",
			gen:    &fakeGenerator{text: "I am unable to plan this trip."},
			body:   lisbonRequest(),
			status: http.StatusUnprocessableEntity,
			code:   apierrors.CodeUnparseable,
		},
		{
			name:   "missing destination",
			gen:    &fakeGenerator{text: twoDayLisbon},
			body:   map[string]any{"duration": 3, "budget": "Economic", "language": "English"},
			status: http.StatusBadRequest,
			code:   apierrors.CodeValidationError,
		},
		{
			name:   "duration out of range",
			gen:    &fakeGenerator{text: twoDayLisbon},
			body:   map[string]any{"destination": "Lisbon", "duration": 31, "budget": "Economic", "language": "English"},
			status: http.StatusBadRequest,
			code:   apierrors.CodeValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &visitor{t: t, srv: newTestServer(t, tt.gen)}

			w := v.do(http.MethodPost, "/api/v1/itineraries", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode[apierrors.ErrorResponse](t, w).Error)

			// nothing is stored for a failed attempt
			assert.Equal(t, http.StatusNotFound, v.do(http.MethodGet, "/api/v1/itineraries/current", nil).Code)
		})
	}
}

func TestUnparseableMessage(t *testing.T) {
	v := &visitor{t: t, srv: newTestServer(t, &fakeGenerator{text: "nothing useful"})}

	w := v.do(http.MethodPost, "/api/v1/itineraries", lisbonRequest())
	assert.Equal(t, apierrors.UnparseableMessage, decode[apierrors.ErrorResponse](t, w).Message)
}

func TestVerify_LicenseServiceDown(t *testing.T) {
	cfg := testConfig()

	down := httptest.NewServer(http.NotFoundHandler())
	url := down.URL
	down.Close()

	verifier := license.NewVerifier(license.Config{ProductID: "123", BaseURL: url})
	store := sessions.NewMemoryStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })

	srv, err := newServer(cfg, NewServices(&fakeGenerator{text: twoDayLisbon}, verifier), store, nil)
	require.NoError(t, err)

	v := &visitor{t: t, srv: srv}
	w := v.do(http.MethodPost, "/api/v1/license/verify", map[string]string{"license_key": "GOOD-KEY"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decode[apierrors.ErrorResponse](t, w)
	assert.Equal(t, apierrors.CodeLicenseUnavailable, resp.Error)
	assert.True(t, strings.HasPrefix(resp.Message, "Error connecting to verification API:"))

	status := decode[apilicense.StatusResponse](t, v.do(http.MethodGet, "/api/v1/license/status", nil))
	assert.False(t, status.Unlocked)
}

func TestVerify_EmptyKey(t *testing.T) {
	v := &visitor{t: t, srv: newTestServer(t, &fakeGenerator{text: twoDayLisbon})}

	w := v.do(http.MethodPost, "/api/v1/license/verify", map[string]string{"license_key": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicRoutes(t *testing.T) {
	v := &visitor{t: t, srv: newTestServer(t, &fakeGenerator{})}

	w := v.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = v.do(http.MethodGet, "/api/v1/options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var opts map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Len(t, opts["budgets"], 3)
	assert.Equal(t, "https://shop.example/buy", opts["checkout_url"])

	// no session cookie on public routes
	assert.Nil(t, v.cookie)
}

func TestGenerate_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.GenerateRateLimit = "1-M"

	store := sessions.NewMemoryStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })

	srv, err := newServer(cfg, NewServices(&fakeGenerator{text: twoDayLisbon}, license.NewVerifier(license.Config{})), store, nil)
	require.NoError(t, err)

	v := &visitor{t: t, srv: srv}
	require.Equal(t, http.StatusOK, v.do(http.MethodPost, "/api/v1/itineraries", lisbonRequest()).Code)

	w := v.do(http.MethodPost, "/api/v1/itineraries", lisbonRequest())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// reading the stored itinerary is not limited
	assert.Equal(t, http.StatusOK, v.do(http.MethodGet, "/api/v1/itineraries/current", nil).Code)
}

func TestNewServices_SharesGenerator(t *testing.T) {
	gen := &fakeGenerator{text: twoDayLisbon}
	services := NewServices(gen, license.NewVerifier(license.Config{APIKey: "k"}))

	assert.Same(t, gen, services.Generator)
	assert.Equal(t, gen.Model(), services.Generator.Model())

	result, err := services.Planner.Plan(context.Background(), trip.Request{
		Destination: "Lisbon",
		Duration:    2,
		Budget:      trip.BudgetEconomic,
		Language:    trip.LanguageEnglish,
	})
	require.NoError(t, err)
	assert.Equal(t, gen.Model(), result.Model)
}
