package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blockd/internal/models"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController_Health(t *testing.T) {
	shield := &mockShieldService{active: true, day: "2026-09-01", seconds: 1800}
	attempts := &mockAttemptService{events: []models.AttemptEvent{
		{ID: "1", Kind: models.AttemptApp, Identifier: "com.example.game"},
		{ID: "2", Kind: models.AttemptCategory, Identifier: "social"},
	}}
	controller := NewHealthController(shield, attempts)

	rec := httptest.NewRecorder()
	controller.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.ShieldActive)
	assert.Equal(t, float64(1800), resp.BlockedSecondsToday)
	assert.Equal(t, 2, resp.AttemptsToday)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, float64(0))
}

func TestHealthController_MethodNotAllowed(t *testing.T) {
	controller := NewHealthController(&mockShieldService{}, &mockAttemptService{})

	rec := httptest.NewRecorder()
	controller.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m42s", formatDuration(42*time.Second))
	assert.Equal(t, "1h30m0s", formatDuration(90*time.Minute))
	assert.Equal(t, "25h0m5s", formatDuration(25*time.Hour+5*time.Second))
}
