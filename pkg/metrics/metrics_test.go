package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager_New(t *testing.T) {
	Convey("Given a metrics manager on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("floodcast_test"),
			WithPrometheusRegistry(registry),
		)

		Convey("Then all metric families register without collision", func() {
			So(m, ShouldNotBeNil)
			So(m.predictionsTotal, ShouldNotBeNil)
			So(m.predictionLatency, ShouldNotBeNil)
			So(m.sourceRequests, ShouldNotBeNil)
			So(m.modelLoaded, ShouldNotBeNil)
			So(m.httpRequests, ShouldNotBeNil)
		})

		Convey("When metrics are recorded", func() {
			m.predictionsTotal.WithLabelValues("high").Inc()
			m.predictionLatency.Observe(12.5)
			m.batchItemsTotal.Add(10)
			m.batchHighRiskTotal.Add(3)
			m.sourceRequests.Inc()
			m.sourceErrors.Inc()
			m.modelLoaded.Set(1)
			m.httpRequests.WithLabelValues("/predict", "POST", "200").Inc()
			m.httpRequestDuration.WithLabelValues("/predict", "POST", "200").Observe(3.2)
			m.systemMemoryUsage.Set(1024)
			m.systemGoroutineCount.Set(8)

			Convey("Then they appear in a gather", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 5)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["floodcast_test_prediction_predictions_total"], ShouldBeTrue)
				So(names["floodcast_test_weather_source_requests_total"], ShouldBeTrue)
				So(names["floodcast_test_model_loaded"], ShouldBeTrue)
				So(names["floodcast_test_http_requests_total"], ShouldBeTrue)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the helpers do not panic", func() {
			RecordPrediction("low", 4.2)
			RecordBatch(5, 1)
			RecordPredictionError()
			RecordValidationReject()
			RecordSourceRequest(false)
			RecordSourceRequest(true)
			SetModelLoaded(true)
			SetModelLoaded(false)
			RecordHTTPRequest("/health", "GET", "200")
			RecordHTTPRequestDuration("/health", "GET", "200", 0.8)
			UpdateSystemMemoryUsage(2048)
			UpdateSystemGoroutineCount(12)
		})

		Convey("Then the registry is exposed for the metrics endpoint", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
