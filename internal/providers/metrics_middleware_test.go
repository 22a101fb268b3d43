package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingMetrics struct {
	countingMetrics
	endpoint string
	status   int
	observed time.Duration
}

func (r *recordingMetrics) IncRequestsTotal(endpoint string, status int) {
	r.endpoint = endpoint
	r.status = status
}

func (r *recordingMetrics) ObserveRequestDuration(_ string, duration time.Duration) {
	r.observed = duration
}

func TestMetricsMiddleware_RecordsStatusAndDuration(t *testing.T) {
	metrics := &recordingMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plan", nil))

	assert.Equal(t, "/plan", metrics.endpoint)
	assert.Equal(t, http.StatusNotFound, metrics.status)
	assert.GreaterOrEqual(t, metrics.observed, time.Duration(0))
}

func TestStatusWriter_HijackWithoutSupport(t *testing.T) {
	sw := &statusWriter{ResponseWriter: httptest.NewRecorder()}
	_, _, err := sw.Hijack()
	assert.ErrorIs(t, err, http.ErrNotSupported)
}

func TestMetricsMiddleware_DefaultsToOK(t *testing.T) {
	metrics := &recordingMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/decision", nil))

	assert.Equal(t, http.StatusOK, metrics.status)
}
