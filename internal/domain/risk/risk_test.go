package risk_test

import (
	"testing"

	"github.com/nahid/floodcast/internal/domain/risk"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAssess_TierBoundaries(t *testing.T) {
	Convey("Given the default 0.3/0.6 tier thresholds", t, func() {
		th := risk.DefaultThresholds()

		Convey("When the probability is just below the low boundary", func() {
			a := risk.Assess(0.29999, th)

			Convey("Then the tier should be Low", func() {
				So(a.Level, ShouldEqual, risk.Low)
				So(a.FloodPredicted, ShouldBeFalse)
			})
		})

		Convey("When the probability is just above the low boundary", func() {
			a := risk.Assess(0.30001, th)

			Convey("Then the tier should be Medium", func() {
				So(a.Level, ShouldEqual, risk.Medium)
			})
		})

		Convey("When the probability is just below the medium boundary", func() {
			a := risk.Assess(0.59999, th)

			Convey("Then the tier should still be Medium", func() {
				So(a.Level, ShouldEqual, risk.Medium)
				So(a.FloodPredicted, ShouldBeTrue)
			})
		})

		Convey("When the probability is just above the medium boundary", func() {
			a := risk.Assess(0.60001, th)

			Convey("Then the tier should be High", func() {
				So(a.Level, ShouldEqual, risk.High)
			})
		})

		Convey("When the probability sits exactly on a boundary", func() {
			Convey("Then the boundary belongs to the upper tier", func() {
				So(risk.Assess(0.3, th).Level, ShouldEqual, risk.Medium)
				So(risk.Assess(0.6, th).Level, ShouldEqual, risk.High)
			})
		})
	})
}

func TestAssess_FloodDecision(t *testing.T) {
	Convey("Given the binary flood decision boundary", t, func() {
		th := risk.DefaultThresholds()

		Convey("Then 0.5 and above predicts a flood", func() {
			So(risk.Assess(0.5, th).FloodPredicted, ShouldBeTrue)
			So(risk.Assess(0.49999, th).FloodPredicted, ShouldBeFalse)
			So(risk.Assess(1.0, th).FloodPredicted, ShouldBeTrue)
		})

		Convey("And the decision stays independent of the tier split", func() {
			// A probability of 0.55 is Medium tier yet a positive flood call.
			a := risk.Assess(0.55, th)
			So(a.Level, ShouldEqual, risk.Medium)
			So(a.FloodPredicted, ShouldBeTrue)
		})
	})
}

func TestConfidence(t *testing.T) {
	Convey("Given the confidence score", t, func() {
		Convey("Then it is 0 at the decision boundary", func() {
			So(risk.Confidence(0.5), ShouldEqual, 0.0)
		})

		Convey("Then it is 1 at the extremes", func() {
			So(risk.Confidence(0.0), ShouldEqual, 1.0)
			So(risk.Confidence(1.0), ShouldEqual, 1.0)
		})

		Convey("Then it is symmetric around 0.5", func() {
			for _, p := range []float64{0.1, 0.25, 0.4, 0.45, 0.49} {
				So(risk.Confidence(p), ShouldAlmostEqual, risk.Confidence(1-p), 1e-12)
			}
		})

		Convey("Then it never exceeds 1 even for out-of-range input", func() {
			So(risk.Confidence(1.2), ShouldEqual, 1.0)
		})
	})
}

func TestThresholds_Fallback(t *testing.T) {
	Convey("Given misordered thresholds", t, func() {
		bad := risk.Thresholds{Low: 0.8, Medium: 0.2}

		Convey("When assessing a probability", func() {
			a := risk.Assess(0.4, bad)

			Convey("Then the default split applies", func() {
				So(a.Level, ShouldEqual, risk.Medium)
			})
		})
	})
}
