package config_test

import (
	"testing"

	"github.com/nahid/floodcast/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.ModelPath, convey.ShouldEqual, "models/flood_gbdt.json")
			convey.So(cfg.ModelMetaPath, convey.ShouldEqual, "models/model_meta.json")
			convey.So(cfg.WeatherBaseURL, convey.ShouldEqual, "https://api.open-meteo.com/v1")
			convey.So(cfg.WeatherTimeoutMS, convey.ShouldEqual, 10_000)
			convey.So(cfg.RiskLowThreshold, convey.ShouldEqual, 0.3)
			convey.So(cfg.RiskMediumThreshold, convey.ShouldEqual, 0.6)
			convey.So(cfg.BatchMaxSize, convey.ShouldEqual, 1000)
		})
	})
}
