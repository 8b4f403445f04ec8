package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nahid/floodcast/internal/adapters/http/api"
	"github.com/nahid/floodcast/internal/adapters/openmeteo"
	app "github.com/nahid/floodcast/internal/app"
	"github.com/nahid/floodcast/internal/config"
	"github.com/nahid/floodcast/internal/domain/model"
	"github.com/nahid/floodcast/internal/domain/risk"
	"github.com/nahid/floodcast/internal/domain/weather"
	"github.com/nahid/floodcast/pkg/logger"
	"github.com/nahid/floodcast/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Load the classifier artifact. A missing model is survivable: the
	// service starts and answers weather/health routes while predictions
	// return 503 until an artifact is provided.
	ensemble, err := model.Load(cfg.ModelPath, cfg.ModelMetaPath)
	if err != nil {
		log.Error(ctx, "failed to load model; predictions unavailable",
			logger.String("model_path", cfg.ModelPath),
			logger.Error(err),
		)
		ensemble = nil
	} else {
		meta := ensemble.Metadata()
		log.Info(ctx, "model loaded",
			logger.String("model_name", meta.ModelName),
			logger.String("version", meta.Version),
			logger.Int("features", meta.FeatureCount),
		)
	}

	// Weather source and aggregation
	source := openmeteo.NewClient(
		openmeteo.WithBaseURL(cfg.WeatherBaseURL),
		openmeteo.WithTimeout(time.Duration(cfg.WeatherTimeoutMS)*time.Millisecond),
		openmeteo.WithRateLimit(cfg.WeatherRPS, cfg.WeatherBurst),
	)
	weatherSvc := weather.New(source)

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(log),
		app.WithClassifier(ensemble),
		app.WithWeather(weatherSvc),
		app.WithRiskThresholds(risk.Thresholds{Low: cfg.RiskLowThreshold, Medium: cfg.RiskMediumThreshold}),
		app.WithBatchLimit(cfg.BatchMaxSize),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
