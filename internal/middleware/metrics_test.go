package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	domai "github.com/bryanwahyu/skinai/internal/domain/ai"
	"github.com/bryanwahyu/skinai/internal/domain/analysis"
	"github.com/bryanwahyu/skinai/internal/domain/media"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{fmt.Errorf("parse: %w", analysis.ErrMalformedResponse), "malformed"},
		{analysis.ErrIncompleteResponse, "incomplete"},
		{analysis.ErrEmptyResponse, "empty"},
		{media.ErrTooLarge, "too_large"},
		{domai.ErrQuotaExceeded, "quota"},
		{domai.ErrNotConfigured, "not_configured"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err))
	}
}

func TestMetricsMiddlewareAndExposition(t *testing.T) {
	m := NewMetrics()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/v1/flows/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/flows/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	m.AnalysisStarted()
	m.AnalysisFinished(analysis.ErrMalformedResponse, 2*time.Second)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap["requests_total"])
	assert.Equal(t, uint64(1), snap["requests_success"])
	assert.Equal(t, uint64(1), snap["requests_failed"])
	assert.Equal(t, uint64(1), snap["analyses_failed"])
	assert.Equal(t, int64(0), snap["analyses_running"])

	rec := httptest.NewRecorder()
	m.PrometheusHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `skinai_http_requests_total{method="GET",route="/v1/flows/{id}",status="404"} 1`)
	assert.Contains(t, body, `skinai_analyses_total{outcome="malformed"} 1`)
}
