// Package metrics provides Prometheus metrics for the flood prediction service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	predictionsTotal    *prometheus.CounterVec
	predictionLatency   prometheus.Histogram
	batchItemsTotal     prometheus.Counter
	batchHighRiskTotal  prometheus.Counter
	predictionErrors    prometheus.Counter
	validationRejects   prometheus.Counter

	// External source metrics
	sourceRequests prometheus.Counter
	sourceErrors   prometheus.Counter

	// Model health
	modelLoaded prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "floodcast",
		subsystem:        "prediction",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.predictionsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Total predictions served, labeled by risk tier",
	}, []string{"risk_level"})

	m.predictionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "latency_milliseconds",
		Help:      "Histogram of end-to-end prediction latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.batchItemsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_items_total",
		Help:      "Total items processed through batch predictions",
	})

	m.batchHighRiskTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_high_risk_total",
		Help:      "Total high-risk items seen in batch predictions",
	})

	m.predictionErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Total predictions that failed inside the pipeline",
	})

	m.validationRejects = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_rejects_total",
		Help:      "Total requests rejected by input validation",
	})

	m.sourceRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "weather",
		Name:      "source_requests_total",
		Help:      "Total outbound requests to the weather/elevation source",
	})

	m.sourceErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "weather",
		Name:      "source_errors_total",
		Help:      "Total failed or malformed responses from the weather source",
	})

	m.modelLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "model",
		Name:      "loaded",
		Help:      "1 when the classifier artifact is loaded, 0 otherwise",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Current number of goroutines",
	})
}

// GetRegistry returns the registry backing the global manager, for serving
// the /metrics endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Global helpers delegating to the singleton manager.

// RecordPrediction counts one served prediction and its latency.
func RecordPrediction(riskLevel string, durationMs float64) {
	globalManager.predictionsTotal.WithLabelValues(riskLevel).Inc()
	globalManager.predictionLatency.Observe(durationMs)
}

// RecordBatch accounts for one completed batch prediction.
func RecordBatch(totalItems, highRiskItems int) {
	globalManager.batchItemsTotal.Add(float64(totalItems))
	globalManager.batchHighRiskTotal.Add(float64(highRiskItems))
}

// RecordPredictionError counts a pipeline failure.
func RecordPredictionError() {
	globalManager.predictionErrors.Inc()
}

// RecordValidationReject counts a request rejected by validation.
func RecordValidationReject() {
	globalManager.validationRejects.Inc()
}

// RecordSourceRequest counts one outbound weather source call; failed marks
// it as errored as well.
func RecordSourceRequest(failed bool) {
	globalManager.sourceRequests.Inc()
	if failed {
		globalManager.sourceErrors.Inc()
	}
}

// SetModelLoaded publishes the model health state.
func SetModelLoaded(loaded bool) {
	if loaded {
		globalManager.modelLoaded.Set(1)
		return
	}
	globalManager.modelLoaded.Set(0)
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records the latency of one HTTP request.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// UpdateSystemMemoryUsage publishes the current heap allocation.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount publishes the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}
