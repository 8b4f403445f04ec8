// Package weather aggregates raw daily samples from a point-weather source
// into the rolling precipitation windows and the fixed-length historical
// series the prediction pipeline consumes.
package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Window sizes, in days.
const (
	// HistoryDays is the fixed length of the historical series: 30
	// consecutive calendar days ending today.
	HistoryDays = 30

	// RecentDays covers the longest rolling precipitation window.
	RecentDays = 14
)

// Sample is one calendar day of observations at a fixed coordinate.
// Missing marks a day the provider had no data for; such gaps are flagged
// explicitly, never interpolated or dropped.
type Sample struct {
	Date            time.Time
	PrecipitationMM float64
	MaxTempC        float64
	Missing         bool
}

// Series is a chronologically ordered run of daily samples. For historical
// queries it always spans exactly HistoryDays entries, index 0 oldest.
type Series []Sample

// LiveConditions is the partial feature patch derived from live data:
// elevation plus the four rolling precipitation sums. Slope, landcover and
// discharge stay caller-supplied.
type LiveConditions struct {
	Elevation float64 `json:"elevation"`
	Precip1d  float64 `json:"precip_1d"`
	Precip3d  float64 `json:"precip_3d"`
	Precip7d  float64 `json:"precip_7d"`
	Precip14d float64 `json:"precip_14d"`
}

// Totals holds the rolling precipitation sums for the standard windows.
type Totals struct {
	Day1  float64
	Day3  float64
	Day7  float64
	Day14 float64
}

// Source abstracts the external point-weather/elevation provider.
type Source interface {
	// Recent returns daily samples for the trailing days calendar days
	// ending today, chronological order. The run may be shorter than asked
	// when the provider has gaps.
	Recent(ctx context.Context, lat, lon float64, days int) ([]Sample, error)

	// Elevation returns the terrain elevation at the point, in meters.
	Elevation(ctx context.Context, lat, lon float64) (float64, error)
}

// RollingTotals computes the trailing 1/3/7/14-day precipitation sums over
// daily values in chronological order (most recent last). Days preceding
// the available history count as zero; short input never errors.
func RollingTotals(daily []float64) Totals {
	return Totals{
		Day1:  trailingSum(daily, 1),
		Day3:  trailingSum(daily, 3),
		Day7:  trailingSum(daily, 7),
		Day14: trailingSum(daily, 14),
	}
}

func trailingSum(daily []float64, window int) float64 {
	start := len(daily) - window
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, v := range daily[start:] {
		sum += v
	}
	return sum
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClock swaps the time source, letting tests pin "today".
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// Service derives live aggregates and historical series from a Source.
type Service struct {
	source Source
	clock  clockwork.Clock
}

// New creates an aggregation service over the given source.
func New(source Source, opts ...Option) *Service {
	s := &Service{
		source: source,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Live fetches recent samples and elevation for a coordinate and computes
// the rolling precipitation windows. Source failures propagate unchanged so
// callers can distinguish them from bad input.
func (s *Service) Live(ctx context.Context, lat, lon float64) (LiveConditions, error) {
	samples, err := s.source.Recent(ctx, lat, lon, RecentDays)
	if err != nil {
		return LiveConditions{}, fmt.Errorf("fetch recent samples: %w", err)
	}

	elevation, err := s.source.Elevation(ctx, lat, lon)
	if err != nil {
		return LiveConditions{}, fmt.Errorf("fetch elevation: %w", err)
	}

	daily := make([]float64, 0, len(samples))
	for _, sample := range samples {
		if sample.Missing {
			daily = append(daily, 0)
			continue
		}
		daily = append(daily, sample.PrecipitationMM)
	}

	totals := RollingTotals(daily)
	return LiveConditions{
		Elevation: elevation,
		Precip1d:  totals.Day1,
		Precip3d:  totals.Day3,
		Precip7d:  totals.Day7,
		Precip14d: totals.Day14,
	}, nil
}

// History returns exactly HistoryDays chronologically ordered samples ending
// today. Days the provider did not cover are flagged Missing; the series is
// never silently shortened.
func (s *Service) History(ctx context.Context, lat, lon float64) (Series, error) {
	samples, err := s.source.Recent(ctx, lat, lon, HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch historical samples: %w", err)
	}

	byDay := make(map[string]Sample, len(samples))
	for _, sample := range samples {
		byDay[dayKey(sample.Date)] = sample
	}

	today := startOfDay(s.clock.Now().UTC())
	series := make(Series, 0, HistoryDays)
	for i := HistoryDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		if sample, ok := byDay[dayKey(day)]; ok && !sample.Missing {
			sample.Date = day
			series = append(series, sample)
			continue
		}
		series = append(series, Sample{Date: day, Missing: true})
	}
	return series, nil
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
