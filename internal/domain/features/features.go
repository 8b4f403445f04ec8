// Package features defines the prediction request shape and assembles the
// ordered numeric vector the classifier consumes. Column order is dictated
// by the model metadata, never by input field order.
package features

import (
	"fmt"
	"math"
)

// Validation bounds for request fields.
const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
	minDayOfYear = 1
	maxDayOfYear = 365
)

// Names is the canonical training column order. The model artifact's
// metadata must list exactly these names; the assembler follows whatever
// order the metadata dictates.
var Names = []string{
	"lat", "lon", "date", "elevation", "slope", "landcover",
	"precip_1d", "precip_3d", "precip_7d", "precip_14d",
	"dis_last", "dis_trend_3", "dayofyear",
}

// Request is a single-location prediction request. All 13 fields feed the
// classifier. Date and DayOfYear are redundant on purpose: both appear in
// the trained column order and are passed through unchanged.
type Request struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Date      int     `json:"date"`
	Elevation float64 `json:"elevation"`
	Slope     float64 `json:"slope"`
	// Landcover is a nominal category code (e.g. 11=urban, 20=cropland,
	// 50=forest). It is never treated as an ordered quantity.
	Landcover int     `json:"landcover"`
	Precip1d  float64 `json:"precip_1d"`
	Precip3d  float64 `json:"precip_3d"`
	Precip7d  float64 `json:"precip_7d"`
	Precip14d float64 `json:"precip_14d"`
	DisLast   float64 `json:"dis_last"`
	DisTrend3 float64 `json:"dis_trend_3"`
	DayOfYear int     `json:"dayofyear"`
}

// Validate checks field ranges. Non-finite floats pass validation; they are
// zeroed during assembly instead (the model was trained with zero as the
// only missing-value marker).
func (r Request) Validate() error {
	switch {
	case !finiteWithin(r.Lat, minLatitude, maxLatitude):
		return fieldError("lat", "must be within [-90, 90]")
	case !finiteWithin(r.Lon, minLongitude, maxLongitude):
		return fieldError("lon", "must be within [-180, 180]")
	case r.Date < minDayOfYear || r.Date > maxDayOfYear:
		return fieldError("date", "must be a day of year within [1, 365]")
	case r.Slope < 0:
		return fieldError("slope", "must be >= 0")
	case r.Precip1d < 0:
		return fieldError("precip_1d", "must be >= 0")
	case r.Precip3d < 0:
		return fieldError("precip_3d", "must be >= 0")
	case r.Precip7d < 0:
		return fieldError("precip_7d", "must be >= 0")
	case r.Precip14d < 0:
		return fieldError("precip_14d", "must be >= 0")
	case r.DisLast < 0:
		return fieldError("dis_last", "must be >= 0")
	case r.DayOfYear < minDayOfYear || r.DayOfYear > maxDayOfYear:
		return fieldError("dayofyear", "must be a day of year within [1, 365]")
	}
	return nil
}

// ValidateCoordinates checks a standalone lat/lon pair, as supplied to the
// weather lookups that take coordinates without a full request.
func ValidateCoordinates(lat, lon float64) error {
	if !finiteWithin(lat, minLatitude, maxLatitude) {
		return fieldError("lat", "must be within [-90, 90]")
	}
	if !finiteWithin(lon, minLongitude, maxLongitude) {
		return fieldError("lon", "must be within [-180, 180]")
	}
	return nil
}

func fieldError(field, msg string) error {
	return fmt.Errorf("%s %s: %w", field, msg, ErrValidation)
}

func finiteWithin(v, lo, hi float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= lo && v <= hi
}

// Vector assembles the single-row feature vector in the column order given
// by names. Non-finite values are replaced with 0.0 before inference. An
// unrecognized name means the loaded model disagrees with this build and is
// reported as an error, not papered over.
func (r Request) Vector(names []string) ([]float64, error) {
	vec := make([]float64, len(names))
	for i, name := range names {
		v, ok := r.value(name)
		if !ok {
			return nil, fmt.Errorf("feature %q: %w", name, ErrUnknownFeature)
		}
		vec[i] = sanitize(v)
	}
	return vec, nil
}

// value maps a metadata column name to the request field. The mapping is
// fixed at compile time; there is no runtime keyed lookup that could drop
// or misorder a field silently.
func (r Request) value(name string) (float64, bool) {
	switch name {
	case "lat":
		return r.Lat, true
	case "lon":
		return r.Lon, true
	case "date":
		return float64(r.Date), true
	case "elevation":
		return r.Elevation, true
	case "slope":
		return r.Slope, true
	case "landcover":
		return float64(r.Landcover), true
	case "precip_1d":
		return r.Precip1d, true
	case "precip_3d":
		return r.Precip3d, true
	case "precip_7d":
		return r.Precip7d, true
	case "precip_14d":
		return r.Precip14d, true
	case "dis_last":
		return r.DisLast, true
	case "dis_trend_3":
		return r.DisTrend3, true
	case "dayofyear":
		return float64(r.DayOfYear), true
	default:
		return 0, false
	}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.0
	}
	return v
}
