package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcncore/internal/controllers"
)

func TestHealthReportsStatusAndBufferSize(t *testing.T) {
	controller := controllers.NewHealthController(&stubTracingService{bufferSize: 42})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	controller.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Status        string  `json:"status"`
		Uptime        string  `json:"uptime"`
		UptimeSeconds float64 `json:"uptime_seconds"`
		BufferSize    int     `json:"buffer_size"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 42, resp.BufferSize)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
	assert.NotEmpty(t, resp.Uptime)
}

func TestHealthRejectsNonGetMethods(t *testing.T) {
	controller := controllers.NewHealthController(&stubTracingService{})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()

	controller.Health(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
