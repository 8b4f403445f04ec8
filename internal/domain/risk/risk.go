// Package risk converts a raw flood probability into a discrete risk tier
// and a confidence score.
package risk

import "math"

// Level is the discrete risk tier reported to callers.
type Level string

// Risk tiers ordered by severity.
const (
	Low    Level = "Low"
	Medium Level = "Medium"
	High   Level = "High"
)

// Default tier boundaries. The binary flood decision uses its own boundary
// and is intentionally independent of the tier split.
const (
	DefaultLowThreshold    = 0.3
	DefaultMediumThreshold = 0.6
	floodDecisionBoundary  = 0.5
)

// Thresholds holds the tier boundaries: probabilities below Low map to the
// Low tier, below Medium to the Medium tier, and everything else to High.
type Thresholds struct {
	Low    float64
	Medium float64
}

// DefaultThresholds returns the standard 0.3/0.6 tier split.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: DefaultLowThreshold, Medium: DefaultMediumThreshold}
}

// Valid reports whether the boundaries are ordered and inside (0, 1).
func (t Thresholds) Valid() bool {
	return t.Low > 0 && t.Low < t.Medium && t.Medium < 1
}

// Assessment is the scored outcome for a single prediction.
type Assessment struct {
	Probability    float64
	Level          Level
	FloodPredicted bool
	Confidence     float64
}

// BatchItem carries the outcome of one item in a batch assessment. Items are
// independent; a failed item records its error without affecting siblings.
type BatchItem struct {
	Assessment Assessment
	Err        error
}

// Assess maps a flood probability onto a tier, a binary flood decision, and
// a confidence score. Invalid thresholds fall back to the defaults.
func Assess(probability float64, t Thresholds) Assessment {
	if !t.Valid() {
		t = DefaultThresholds()
	}
	return Assessment{
		Probability:    probability,
		Level:          tier(probability, t),
		FloodPredicted: probability >= floodDecisionBoundary,
		Confidence:     Confidence(probability),
	}
}

func tier(p float64, t Thresholds) Level {
	switch {
	case p < t.Low:
		return Low
	case p < t.Medium:
		return Medium
	default:
		return High
	}
}

// Confidence rescales the distance from the 0.5 decision boundary to [0, 1]:
// 0 at p=0.5, 1 at p=0 or p=1. It is a calibration proxy, not a statistical
// confidence interval.
func Confidence(probability float64) float64 {
	c := math.Abs(probability-floodDecisionBoundary) * 2
	return math.Min(c, 1)
}
