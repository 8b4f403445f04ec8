package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nahid/floodcast/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger_Init(t *testing.T) {
	Convey("Given the global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)

			// Must not panic with an assortment of field types.
			l.Info(context.Background(), "test message",
				logger.String("key", "value"),
				logger.Int("count", 3),
				logger.Float64("probability", 0.42),
				logger.Bool("flag", true),
				logger.Error(errors.New("boom")),
			)
		})

		Convey("Then Named returns a scoped logger", func() {
			l := logger.Named("weather")
			So(l, ShouldNotBeNil)
			l.Debug(context.Background(), "scoped message")
		})

		Convey("Then Sync never fails", func() {
			So(logger.Sync(), ShouldBeNil)
		})
	})
}

func TestLogger_SetLevelString(t *testing.T) {
	Convey("Given level parsing", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then known levels are accepted", func() {
			for _, level := range []string{"debug", "info", "warn", "warning", "error", "", "  INFO  "} {
				So(logger.SetLevelString(level), ShouldBeNil)
			}
		})

		Convey("Then unknown levels are rejected", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
