package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appanalysis "github.com/bryanwahyu/skinai/internal/application/analysis"
	appcapture "github.com/bryanwahyu/skinai/internal/application/capture"
	appcatalog "github.com/bryanwahyu/skinai/internal/application/catalog"
	domai "github.com/bryanwahyu/skinai/internal/domain/ai"
	"github.com/bryanwahyu/skinai/internal/domain/media"
	"github.com/bryanwahyu/skinai/internal/middleware"
	"github.com/bryanwahyu/skinai/internal/web"
)

// Deps semua yang dibutuhkan router
type Deps struct {
	Capture     *appcapture.Service
	Analysis    *appanalysis.Service
	Catalog     *appcatalog.Service
	AISettings  domai.Settings
	Pages       *web.Renderer
	Metrics     *middleware.Metrics
	Limiter     *middleware.RateLimiter
	Checkers    map[string]middleware.HealthChecker
	AdminKeys   map[string]string
	CORSOrigins []string
	TrustProxy  bool
	MaxUpload   int64
	Logger      *slog.Logger
}

type Router struct {
	capture   *appcapture.Service
	analysis  *appanalysis.Service
	catalog   *appcatalog.Service
	ai        domai.Settings
	pages     *web.Renderer
	maxUpload int64
	logger    *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	r := &Router{
		capture:   d.Capture,
		analysis:  d.Analysis,
		catalog:   d.Catalog,
		ai:        d.AISettings,
		pages:     d.Pages,
		maxUpload: d.MaxUpload,
		logger:    d.Logger,
	}
	if r.maxUpload <= 0 {
		r.maxUpload = media.DefaultMaxUploadBytes
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	metrics := d.Metrics
	if metrics == nil {
		metrics = middleware.NewMetrics()
	}
	limiter := d.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(10, 1)
	}

	mux := chi.NewRouter()
	mux.Use(chimw.Recoverer)
	// RemoteAddr dari header proxy hanya kalau proxy-nya dipercaya
	if d.TrustProxy {
		mux.Use(chimw.RealIP)
	}
	mux.Use(middleware.Logging(r.logger))
	mux.Use(metrics.Middleware)
	if len(d.CORSOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	mux.Get("/health", middleware.HealthHandler(d.Checkers))
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/health/ready", middleware.ReadinessHandler(d.Checkers, d.AISettings.HasAPIKey))

	mux.Group(func(rt chi.Router) {
		rt.Use(middleware.APIKeyAuth(d.AdminKeys))
		rt.Handle("/metrics", metrics.PrometheusHandler())
		rt.Get("/metrics.json", metrics.JSONHandler)
	})

	mux.Route("/v1", func(rt chi.Router) {
		rt.Get("/config/ai", r.wrap(r.handleAISettings))

		rt.Post("/flows", r.wrap(r.handleStartFlow))
		rt.Route("/flows/{id}", func(ft chi.Router) {
			ft.Get("/", r.wrap(r.handleGetFlow))
			ft.Get("/image", r.wrap(r.handleFlowImage))
			ft.Post("/method", r.wrap(r.handleSelectMethod))
			ft.Post("/permission", r.wrap(r.handlePermission))
			ft.Post("/retake", r.wrap(r.flowAction(r.capture.Retake)))
			ft.Post("/choose-different", r.wrap(r.flowAction(r.capture.ChooseDifferent)))
			ft.Post("/cancel", r.wrap(r.flowAction(r.capture.Cancel)))
			ft.Post("/confirm", r.wrap(r.flowAction(r.capture.Confirm)))
			ft.Post("/reset", r.wrap(r.flowAction(r.capture.Reset)))

			// endpoint mahal: decode gambar dan panggil AI
			ft.Group(func(lt chi.Router) {
				lt.Use(middleware.RateLimit(limiter))
				lt.Post("/capture", r.wrap(r.handleCapture))
				lt.Post("/upload", r.wrap(r.handleUpload))
				lt.Post("/analyze", r.wrap(r.handleAnalyze))
			})
		})

		rt.Route("/results/{handoff}", func(ht chi.Router) {
			ht.Get("/", r.wrap(r.handleResult))
			ht.Delete("/", r.wrap(r.handleDiscard))
			ht.Get("/image", r.wrap(r.handleResultImage))
			ht.Get("/recommendations", r.wrap(r.handleRecommendations))
		})

		rt.Get("/products", r.wrap(r.handleProducts))
		rt.Get("/products/{id}", r.wrap(r.handleProduct))
	})

	mux.Handle("/static/*", web.Static())
	mux.Get("/", r.page(r.pageLanding))
	mux.Get("/analysis", r.page(r.pageAnalysis))
	mux.Get("/results/{handoff}", r.page(r.pageResults))
	mux.Get("/products", r.page(r.pageProducts))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			code, msg := statusFor(err)
			if code >= 500 {
				r.logger.Error("request failed", "path", req.URL.Path, "status", code, "error", err)
			}
			writeJSON(w, code, map[string]string{"error": msg})
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

// GET /v1/config/ai
func (r *Router) handleAISettings(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, r.ai)
}
