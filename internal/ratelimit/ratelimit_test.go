package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/atlasagency/server/internal/errors"
)

func newRouter(t *testing.T, formatted string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mw, err := Middleware(formatted, nil)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/generate", mw, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestMiddleware_LimitsPerClient(t *testing.T) {
	r := newRouter(t, "2-M")

	for range 2 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errors.CodeTooManyRequests, resp.Error)
}

func TestMiddleware_InvalidRate(t *testing.T) {
	_, err := Middleware("lots", nil)
	assert.ErrorContains(t, err, "invalid rate limit")
}
