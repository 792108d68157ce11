package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domai "github.com/bryanwahyu/skinai/internal/domain/ai"
	"github.com/bryanwahyu/skinai/internal/domain/analysis"
	"github.com/bryanwahyu/skinai/internal/domain/media"
)

// Metrics stores application metrics: counter atomic untuk snapshot JSON
// dan collector prometheus untuk /metrics
type Metrics struct {
	RequestsTotal      uint64
	RequestsInProgress int64
	RequestsSuccess    uint64
	RequestsFailed     uint64
	AnalysesTotal      uint64
	AnalysesRunning    int64
	AnalysesFailed     uint64
	StartTime          time.Time

	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	analyses         *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	analysesInFlight prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		StartTime: time.Now(),
		registry:  prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skinai",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skinai",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skinai",
			Name:      "analyses_total",
			Help:      "Skin analysis requests by outcome.",
		}, []string{"outcome"}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "skinai",
			Name:      "analysis_duration_seconds",
			Help:      "Latency of the AI analysis call including parsing.",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120},
		}),
		analysesInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skinai",
			Name:      "analyses_in_flight",
			Help:      "Analysis requests currently waiting on the AI provider.",
		}),
	}
	m.registry.MustRegister(
		m.requests, m.requestDuration, m.analyses, m.analysisDuration, m.analysesInFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// AnalysisStarted dipanggil service analisa sebelum request AI
func (m *Metrics) AnalysisStarted() {
	atomic.AddUint64(&m.AnalysesTotal, 1)
	atomic.AddInt64(&m.AnalysesRunning, 1)
	m.analysesInFlight.Inc()
}

// AnalysisFinished dipanggil setelah request AI selesai
func (m *Metrics) AnalysisFinished(err error, d time.Duration) {
	atomic.AddInt64(&m.AnalysesRunning, -1)
	m.analysesInFlight.Dec()
	m.analysisDuration.Observe(d.Seconds())
	if err != nil {
		atomic.AddUint64(&m.AnalysesFailed, 1)
	}
	m.analyses.WithLabelValues(Outcome(err)).Inc()
}

// Outcome label metrics untuk satu error analisa
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, analysis.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, analysis.ErrIncompleteResponse):
		return "incomplete"
	case errors.Is(err, analysis.ErrEmptyResponse):
		return "empty"
	case errors.Is(err, media.ErrTooLarge):
		return "too_large"
	case errors.Is(err, domai.ErrQuotaExceeded):
		return "quota"
	case errors.Is(err, domai.ErrNotConfigured):
		return "not_configured"
	default:
		return "error"
	}
}

// Snapshot returns current metrics
func (m *Metrics) Snapshot() map[string]interface{} {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return map[string]interface{}{
		"requests_total":       atomic.LoadUint64(&m.RequestsTotal),
		"requests_in_progress": atomic.LoadInt64(&m.RequestsInProgress),
		"requests_success":     atomic.LoadUint64(&m.RequestsSuccess),
		"requests_failed":      atomic.LoadUint64(&m.RequestsFailed),
		"analyses_total":       atomic.LoadUint64(&m.AnalysesTotal),
		"analyses_running":     atomic.LoadInt64(&m.AnalysesRunning),
		"analyses_failed":      atomic.LoadUint64(&m.AnalysesFailed),
		"uptime_seconds":       time.Since(m.StartTime).Seconds(),
		"memory": map[string]interface{}{
			"alloc_bytes":       ms.Alloc,
			"total_alloc_bytes": ms.TotalAlloc,
			"sys_bytes":         ms.Sys,
			"num_gc":            ms.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// Middleware tracks request metrics
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddUint64(&m.RequestsTotal, 1)
		atomic.AddInt64(&m.RequestsInProgress, 1)
		defer atomic.AddInt64(&m.RequestsInProgress, -1)

		start := time.Now()
		wrapped := wrapWriter(w)
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			atomic.AddUint64(&m.RequestsSuccess, 1)
		} else {
			atomic.AddUint64(&m.RequestsFailed, 1)
		}
		route := routePattern(r)
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// JSONHandler returns metrics as JSON
func (m *Metrics) JSONHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m.Snapshot())
}

// PrometheusHandler exposition format
func (m *Metrics) PrometheusHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
