// Package service provides the core prediction service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nahid/floodcast/internal/domain/features"
	"github.com/nahid/floodcast/internal/domain/model"
	"github.com/nahid/floodcast/internal/domain/risk"
	"github.com/nahid/floodcast/internal/domain/weather"
	"github.com/nahid/floodcast/pkg/logger"
	"github.com/nahid/floodcast/pkg/metrics"
)

// Classifier is the loaded model the service predicts with.
type Classifier interface {
	Loaded() bool
	Metadata() model.Metadata
	PredictProba(vector []float64) ([2]float64, error)
}

// WeatherProvider aggregates live conditions and historical series for a
// coordinate.
type WeatherProvider interface {
	Live(ctx context.Context, lat, lon float64) (weather.LiveConditions, error)
	History(ctx context.Context, lat, lon float64) (weather.Series, error)
}

// Service implements the API dependencies for the flood prediction system.
type Service struct {
	mu sync.RWMutex

	// Core components
	classifier Classifier
	weather    WeatherProvider

	// Configuration
	thresholds risk.Thresholds
	batchLimit int

	// State
	started   bool
	startTime time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClassifier sets the loaded model used for predictions.
func WithClassifier(c Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithWeather sets the weather aggregation provider.
func WithWeather(w WeatherProvider) Option {
	return func(s *Service) {
		if w != nil {
			s.weather = w
		}
	}
}

// WithRiskThresholds sets the tier boundaries used when scoring.
func WithRiskThresholds(t risk.Thresholds) Option {
	return func(s *Service) {
		if t.Valid() {
			s.thresholds = t
		}
	}
}

// WithBatchLimit sets the maximum number of items in one batch request.
func WithBatchLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.batchLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		thresholds: risk.DefaultThresholds(),
		batchLimit: 1000,
		logger:     nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start marks the service ready and publishes the model health state.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	loaded := s.classifier != nil && s.classifier.Loaded()
	metrics.SetModelLoaded(loaded)

	s.started = true
	s.startTime = time.Now()
	s.logger.Info(ctx, "prediction service started",
		logger.Bool("modelLoaded", loaded),
		logger.Int("batchLimit", s.batchLimit),
		logger.Float64("riskLowThreshold", s.thresholds.Low),
		logger.Float64("riskMediumThreshold", s.thresholds.Medium),
	)

	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "prediction service stopped")
}

// Predict validates one request, assembles the feature vector in the model's
// trained column order and returns the scored assessment.
func (s *Service) Predict(ctx context.Context, req features.Request) (risk.Assessment, error) {
	start := time.Now()

	if !s.ModelLoaded() {
		return risk.Assessment{}, ErrModelUnavailable
	}

	if err := req.Validate(); err != nil {
		metrics.RecordValidationReject()
		return risk.Assessment{}, err
	}

	vector, err := req.Vector(s.classifier.Metadata().FeatureNames)
	if err != nil {
		metrics.RecordPredictionError()
		return risk.Assessment{}, fmt.Errorf("assemble features: %w", err)
	}

	proba, err := s.classifier.PredictProba(vector)
	if err != nil {
		metrics.RecordPredictionError()
		return risk.Assessment{}, fmt.Errorf("predict: %w", err)
	}

	assessment := risk.Assess(proba[1], s.thresholds)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.RecordPrediction(string(assessment.Level), elapsed)

	s.logger.Debug(ctx, "prediction served",
		logger.Float64("lat", req.Lat),
		logger.Float64("lon", req.Lon),
		logger.Float64("probability", assessment.Probability),
		logger.String("riskLevel", string(assessment.Level)),
	)

	return assessment, nil
}

// PredictBatch scores a batch of independent requests. One bad item records
// its error in place; it never fails the batch. The whole batch is rejected
// only for an empty or oversized payload, or a missing model.
func (s *Service) PredictBatch(ctx context.Context, reqs []features.Request) ([]risk.BatchItem, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("batch must contain at least one location: %w", ErrBatchSize)
	}
	if len(reqs) > s.batchLimit {
		return nil, fmt.Errorf("batch of %d exceeds the limit of %d: %w",
			len(reqs), s.batchLimit, ErrBatchSize)
	}
	if !s.ModelLoaded() {
		return nil, ErrModelUnavailable
	}

	items := make([]risk.BatchItem, len(reqs))
	highRisk := 0
	for i, req := range reqs {
		assessment, err := s.Predict(ctx, req)
		items[i] = risk.BatchItem{Assessment: assessment, Err: err}
		if err == nil && assessment.Level == risk.High {
			highRisk++
		}
	}

	metrics.RecordBatch(len(items), highRisk)
	s.logger.Info(ctx, "batch prediction served",
		logger.Int("items", len(items)),
		logger.Int("highRisk", highRisk),
	)

	return items, nil
}

// LiveWeather returns the live-derived feature patch for a coordinate.
func (s *Service) LiveWeather(ctx context.Context, lat, lon float64) (weather.LiveConditions, error) {
	if err := features.ValidateCoordinates(lat, lon); err != nil {
		metrics.RecordValidationReject()
		return weather.LiveConditions{}, err
	}
	return s.weather.Live(ctx, lat, lon)
}

// WeatherHistory returns the fixed-length historical series for a coordinate.
func (s *Service) WeatherHistory(ctx context.Context, lat, lon float64) (weather.Series, error) {
	if err := features.ValidateCoordinates(lat, lon); err != nil {
		metrics.RecordValidationReject()
		return nil, err
	}
	return s.weather.History(ctx, lat, lon)
}

// ModelInfo returns the loaded model's metadata.
func (s *Service) ModelInfo() (model.Metadata, error) {
	if !s.ModelLoaded() {
		return model.Metadata{}, ErrModelUnavailable
	}
	return s.classifier.Metadata(), nil
}

// ModelLoaded reports whether predictions can currently be served.
func (s *Service) ModelLoaded() bool {
	return s.classifier != nil && s.classifier.Loaded()
}

// RiskThresholds returns the tier boundaries in effect.
func (s *Service) RiskThresholds() risk.Thresholds {
	return s.thresholds
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"modelLoaded": s.ModelLoaded(),
		"batchLimit":  s.batchLimit,
	}
	if s.started {
		stats["uptimeSeconds"] = time.Since(s.startTime).Seconds()
	}
	return stats
}
