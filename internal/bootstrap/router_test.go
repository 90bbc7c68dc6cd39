package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Route wiring smoke test: no database needed for the stateless endpoints.
func TestBuildRouter_Wiring(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := BuildRouter(RouterDeps{
		ServiceName: "tco-backend",
		Version:     "test",
	})

	t.Run("root", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("calculate", func(t *testing.T) {
		body := `{"initial_price": 100000, "useful_life_years": 5}`
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/calculate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total_cost":100000`)
	})

	t.Run("request id echoed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-Id", "abc-123")
		router.ServeHTTP(rr, req)
		assert.Equal(t, "abc-123", rr.Header().Get("X-Request-Id"))
	})

	t.Run("cors headers", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodOptions, "/calculate", nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})
}
