// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/nahid/floodcast/internal/domain/weather"
)

// WeatherDependencies defines the interface for weather lookups.
type WeatherDependencies interface {
	LiveWeather(ctx context.Context, lat, lon float64) (weather.LiveConditions, error)
	WeatherHistory(ctx context.Context, lat, lon float64) (weather.Series, error)
}

// WeatherHandler handles live and historical weather requests.
type WeatherHandler struct {
	deps WeatherDependencies
}

// NewWeatherHandler creates a new weather handler.
func NewWeatherHandler(deps WeatherDependencies) *WeatherHandler {
	return &WeatherHandler{deps: deps}
}

// historyResponse is the columnar trends payload: parallel arrays ordered
// oldest first. Missing marks days the source had no data for.
type historyResponse struct {
	Dates         []string  `json:"dates"`
	Precipitation []float64 `json:"precipitation"`
	Temperature   []float64 `json:"temperature"`
	Missing       []bool    `json:"missing"`
}

// HandleLive handles GET /weather/live?lat=..&lon=.. requests.
func (h *WeatherHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	const op = "api.weather_live"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	lat, lon, err := coordinates(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", WrapKind(op, ErrBadRequest, err))
		return
	}

	live, err := h.deps.LiveWeather(r.Context(), lat, lon)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, live)
}

// HandleHistory handles GET /weather/history?lat=..&lon=.. requests.
func (h *WeatherHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.weather_history"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	lat, lon, err := coordinates(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", WrapKind(op, ErrBadRequest, err))
		return
	}

	series, err := h.deps.WeatherHistory(r.Context(), lat, lon)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}

	resp := historyResponse{
		Dates:         make([]string, len(series)),
		Precipitation: make([]float64, len(series)),
		Temperature:   make([]float64, len(series)),
		Missing:       make([]bool, len(series)),
	}
	for i, sample := range series {
		resp.Dates[i] = sample.Date.Format(time.DateOnly)
		resp.Precipitation[i] = sample.PrecipitationMM
		resp.Temperature[i] = sample.MaxTempC
		resp.Missing[i] = sample.Missing
	}
	writeJSON(w, http.StatusOK, resp)
}

// coordinates extracts the mandatory lat/lon query parameters.
func coordinates(r *http.Request) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return 0, 0, ErrBadRequest
	}
	lon, err = strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		return 0, 0, ErrBadRequest
	}
	return lat, lon, nil
}
