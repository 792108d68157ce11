package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/skinai/internal/application"
	appanalysis "github.com/bryanwahyu/skinai/internal/application/analysis"
	appcapture "github.com/bryanwahyu/skinai/internal/application/capture"
	appcatalog "github.com/bryanwahyu/skinai/internal/application/catalog"
	"github.com/bryanwahyu/skinai/internal/config"
	"github.com/bryanwahyu/skinai/internal/domain/handoff"
	aiopenai "github.com/bryanwahyu/skinai/internal/infra/ai/openai"
	"github.com/bryanwahyu/skinai/internal/infra/catalog"
	"github.com/bryanwahyu/skinai/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/skinai/internal/infra/db/mysql"
	pgp "github.com/bryanwahyu/skinai/internal/infra/db/postgres"
	"github.com/bryanwahyu/skinai/internal/infra/httpserver"
	"github.com/bryanwahyu/skinai/internal/infra/imaging"
	"github.com/bryanwahyu/skinai/internal/infra/storage"
	"github.com/bryanwahyu/skinai/internal/logging"
	"github.com/bryanwahyu/skinai/internal/middleware"
	"github.com/bryanwahyu/skinai/internal/web"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.NoColor)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checkers := map[string]middleware.HealthChecker{}

	// handoff store
	handoffs, closeDB, err := openHandoffs(ctx, cfg, checkers)
	if err != nil {
		return err
	}
	defer closeDB()

	// image store: minio kalau enabled, selain itu memory
	var images handoff.ImageStore = storage.NewMemoryStore()
	if cfg.Minio.Enabled {
		store, err := storage.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		images = store
		checkers["minio"] = middleware.CheckFunc(store.Check)
	}

	temperature := float32(-1)
	if cfg.OpenAI.Temperature != nil {
		temperature = *cfg.OpenAI.Temperature
	}
	ai := aiopenai.NewClient(aiopenai.Options{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: temperature,
		Detail:      cfg.OpenAI.Detail,
		HTTPClient:  &http.Client{Timeout: cfg.OpenAITimeout()},
	})
	settings := ai.Settings()
	if !settings.HasAPIKey {
		logger.Warn("OPENAI_API_KEY not set, analysis requests will fail")
	}

	pages, err := web.NewRenderer()
	if err != nil {
		return err
	}

	clock := application.SystemClock{}
	metrics := middleware.NewMetrics()
	flows := memory.NewFlowRepository()

	processor := imaging.NewProcessor(cfg.Upload.JPEGQuality, cfg.Upload.MaxEdge, logger)
	processor.MaxPixels = cfg.Upload.MaxPixels

	captureSvc := &appcapture.Service{
		Repo:      flows,
		Images:    processor,
		Clock:     clock,
		MaxUpload: cfg.Upload.MaxBytes,
		Logger:    logger,
	}
	analysisSvc := &appanalysis.Service{
		Flows:    flows,
		AI:       ai,
		Handoffs: handoffs,
		Images:   images,
		Clock:    clock,
		TTL:      cfg.SessionTTL(),
		Metrics:  metrics,
		Logger:   logger,
	}
	catalogSvc := &appcatalog.Service{Repo: catalog.NewStaticRepository()}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)
	go limiter.Run(ctx)
	go janitor(ctx, cfg, captureSvc, analysisSvc, logger)

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(httpserver.Deps{
		Capture:     captureSvc,
		Analysis:    analysisSvc,
		Catalog:     catalogSvc,
		AISettings:  settings,
		Pages:       pages,
		Metrics:     metrics,
		Limiter:     limiter,
		Checkers:    checkers,
		AdminKeys:   cfg.Server.AdminKeys,
		CORSOrigins: cfg.Server.CORSOrigins,
		TrustProxy:  cfg.Server.TrustProxy,
		MaxUpload:   cfg.Upload.MaxBytes,
		Logger:      logger,
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
		// analisa bisa lama, tunggu AI sampai timeout client + margin
		WriteTimeout: cfg.OpenAITimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "storage", cfg.Storage.Driver, "model", settings.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	// graceful shutdown
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx2)
}

// openHandoffs pilih backend handoff sesuai storage.driver
func openHandoffs(ctx context.Context, cfg *config.Config, checkers map[string]middleware.HealthChecker) (handoff.Repository, func(), error) {
	var (
		db   *sql.DB
		err  error
		repo handoff.Repository
	)
	switch cfg.Storage.Driver {
	case "mysql":
		db, err = mysqlp.Connect(ctx, mysqlp.Options{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("mysql connect: %w", err)
		}
		err = mysqlp.EnsureSchema(ctx, db)
		repo = mysqlp.NewHandoffRepository(db)
	case "postgres":
		db, err = pgp.Connect(ctx, pgp.Options{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Name:     cfg.Postgres.Name,
			SSLMode:  cfg.Postgres.SSLMode,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		err = pgp.EnsureSchema(ctx, db)
		repo = pgp.NewHandoffRepository(db)
	default:
		return memory.NewHandoffRepository(), func() {}, nil
	}
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	return repo, func() { db.Close() }, nil
}
