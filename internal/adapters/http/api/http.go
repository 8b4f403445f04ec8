// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nahid/floodcast/internal/domain/features"
	"github.com/nahid/floodcast/internal/domain/model"
	"github.com/nahid/floodcast/internal/domain/risk"
	"github.com/nahid/floodcast/internal/domain/weather"
	"github.com/nahid/floodcast/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service identity reported on the banner and health routes.
const (
	serviceName    = "Bangladesh Flood Prediction API"
	serviceVersion = "1.0.0"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Prediction operations.
	Predict(ctx context.Context, req features.Request) (risk.Assessment, error)
	PredictBatch(ctx context.Context, reqs []features.Request) ([]risk.BatchItem, error)

	// Weather lookups backing the form auto-fill and trends chart.
	LiveWeather(ctx context.Context, lat, lon float64) (weather.LiveConditions, error)
	WeatherHistory(ctx context.Context, lat, lon float64) (weather.Series, error)

	// Model introspection.
	ModelInfo() (model.Metadata, error)
	ModelLoaded() bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	predictHandler *PredictHandler
	weatherHandler *WeatherHandler
	modelHandler   *ModelInfoHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		predictHandler: NewPredictHandler(deps),
		weatherHandler: NewWeatherHandler(deps),
		modelHandler:   NewModelInfoHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/", RequestIDMiddleware(MetricsMiddleware(s.handleRoot, "root")))
	mux.HandleFunc("/health", RequestIDMiddleware(MetricsMiddleware(s.healthHandler.HandleHealth, "health")))
	mux.HandleFunc("/stats", RequestIDMiddleware(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/predict", RequestIDMiddleware(MetricsMiddleware(s.predictHandler.HandlePredict, "predict")))
	mux.HandleFunc("/predict/batch", RequestIDMiddleware(MetricsMiddleware(s.predictHandler.HandlePredictBatch, "predict_batch")))
	mux.HandleFunc("/weather/live", RequestIDMiddleware(MetricsMiddleware(s.weatherHandler.HandleLive, "weather_live")))
	mux.HandleFunc("/weather/history", RequestIDMiddleware(MetricsMiddleware(s.weatherHandler.HandleHistory, "weather_history")))
	mux.HandleFunc("/model/info", RequestIDMiddleware(MetricsMiddleware(s.modelHandler.HandleModelInfo, "model_info")))

	// Prometheus exposition on the custom registry
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// handleRoot serves the service banner on GET /. The catch-all pattern also
// owns unknown paths, which get a 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": serviceName,
		"version": serviceVersion,
		"health":  "/health",
	})
}

// predictionResponse mirrors the wire schema for a single prediction.
type predictionResponse struct {
	FloodProbability float64 `json:"flood_probability"`
	RiskLevel        string  `json:"risk_level"`
	IsFloodPredicted bool    `json:"is_flood_predicted"`
	Confidence       float64 `json:"confidence"`
	// Error is set only on failed items inside a batch response.
	Error string `json:"error,omitempty"`
}

func toPredictionResponse(a risk.Assessment) predictionResponse {
	return predictionResponse{
		FloodProbability: a.Probability,
		RiskLevel:        string(a.Level),
		IsFloodPredicted: a.FloodPredicted,
		Confidence:       a.Confidence,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

// writeDomainError translates sentinel errors from the lower layers to their
// HTTP status: validation problems are the caller's fault (422), a missing
// model means the service cannot serve yet (503), a broken upstream weather
// source is a bad gateway (502), anything else is internal (500).
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, features.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "ValidationError", err)
	case errors.Is(err, ErrBatchSize):
		writeError(w, http.StatusUnprocessableEntity, "ValidationError", err)
	case errors.Is(err, ErrModelUnavailable):
		writeError(w, http.StatusServiceUnavailable, "ServiceUnavailable", err)
	case errors.Is(err, ErrSourceUnavailable):
		writeError(w, http.StatusBadGateway, "WeatherSourceUnavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "InternalServerError", err)
	}
}
