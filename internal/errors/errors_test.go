package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestUnparseable(t *testing.T) {
	c, w := newContext()
	Unparseable(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode(t, w)
	assert.Equal(t, CodeUnparseable, resp.Error)
	assert.Equal(t, UnparseableMessage, resp.Message)
}

func TestGenerationFailed_IncludesDetailsOutsideProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	c, w := newContext()
	GenerationFailed(c, fmt.Errorf("API request failed with status 500: boom"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decode(t, w)
	assert.Equal(t, CodeGenerationFailed, resp.Error)
	assert.Contains(t, resp.Details, "boom")
}

func TestGenerationFailed_SanitizedInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	c, w := newContext()
	GenerationFailed(c, fmt.Errorf("API request failed with status 500: secret upstream body"))

	resp := decode(t, w)
	assert.Equal(t, "upstream service error", resp.Details)
}

func TestLicenseRejected_DefaultsCode(t *testing.T) {
	c, w := newContext()
	LicenseRejected(c, "", "expired")

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	resp := decode(t, w)
	assert.Equal(t, CodeLicenseInvalid, resp.Error)
	assert.Equal(t, "expired", resp.Message)
}

func TestClassifyError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	tests := []struct {
		name     string
		err      error
		category string
	}{
		{"deadline", context.DeadlineExceeded, CategoryTimeout},
		{"canceled", fmt.Errorf("wrapped: %w", context.Canceled), CategoryTimeout},
		{"dial", fmt.Errorf("dial tcp: connection refused"), CategoryNetwork},
		{"upstream", fmt.Errorf("API request failed with status 503"), CategoryUpstream},
		{"validation", fmt.Errorf("Key: 'Duration' failed on the 'max' tag: validation"), CategoryValidation},
		{"unknown", fmt.Errorf("something odd"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := classifyError(tt.err)
			assert.Equal(t, tt.category, info.category)
			assert.NotEmpty(t, info.sanitized)
		})
	}
}
