package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"handimatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performHealth(t *testing.T, snapshot func() utils.HealthStatus) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health", healthHandler(snapshot))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealthRouteReportsOK(t *testing.T) {
	snap := utils.HealthStatus{Mongo: true, Cache: true, AuthCache: true, CheckedAt: time.Now()}
	w, body := performHealth(t, func() utils.HealthStatus { return snap })

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	deps, ok := body["dependencies"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, deps["mongo"])
	assert.Equal(t, true, deps["cache"])
	assert.Equal(t, true, deps["authCache"])
}

func TestHealthRouteBeforeFirstProbe(t *testing.T) {
	// Startup window: no snapshot yet, the endpoint still answers ok.
	w, body := performHealth(t, func() utils.HealthStatus { return utils.HealthStatus{} })

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthRouteReportsDegraded(t *testing.T) {
	snap := utils.HealthStatus{Mongo: false, Cache: true, AuthCache: true, CheckedAt: time.Now()}
	w, body := performHealth(t, func() utils.HealthStatus { return snap })

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", body["status"])
}
