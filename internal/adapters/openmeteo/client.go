// Package openmeteo implements the weather.Source contract against the
// Open-Meteo point forecast and elevation APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nahid/floodcast/internal/domain/weather"
	"github.com/nahid/floodcast/pkg/metrics"
	"golang.org/x/time/rate"
)

// Default client tuning. Open-Meteo's free tier tolerates modest request
// rates; the limiter keeps bursts of concurrent predictions from tripping it.
const (
	defaultBaseURL = "https://api.open-meteo.com/v1"
	defaultTimeout = 10 * time.Second
	defaultRPS     = 5.0
	defaultBurst   = 5
	dateLayout     = "2006-01-02"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Tests point this at an httptest
// server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout bounds each outbound request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRateLimit caps outbound requests per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// Client fetches daily weather and elevation samples for a coordinate.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates an Open-Meteo client with bounded timeouts and rate
// limiting.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ weather.Source = (*Client)(nil)

// forecastResponse mirrors the daily block of the /forecast endpoint.
// Entries may be null for days the provider has no data; pointers keep
// those gaps visible instead of collapsing them to zero.
type forecastResponse struct {
	Daily struct {
		Time             []string   `json:"time"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
		TemperatureMax   []*float64 `json:"temperature_2m_max"`
	} `json:"daily"`
}

type elevationResponse struct {
	Elevation []float64 `json:"elevation"`
}

// Recent returns daily precipitation and max-temperature samples for the
// trailing days calendar days ending today, in chronological order.
func (c *Client) Recent(ctx context.Context, lat, lon float64, days int) ([]weather.Sample, error) {
	params := url.Values{
		"latitude":      {formatCoord(lat)},
		"longitude":     {formatCoord(lon)},
		"daily":         {"precipitation_sum,temperature_2m_max"},
		"past_days":     {strconv.Itoa(days)},
		"forecast_days": {"1"},
		"timezone":      {"UTC"},
	}

	var resp forecastResponse
	if err := c.get(ctx, c.baseURL+"/forecast?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	daily := resp.Daily
	if len(daily.PrecipitationSum) != len(daily.Time) || len(daily.TemperatureMax) != len(daily.Time) {
		return nil, fmt.Errorf("daily arrays disagree on length: %w", ErrSourceUnavailable)
	}

	samples := make([]weather.Sample, 0, len(daily.Time))
	for i, day := range daily.Time {
		date, err := time.ParseInLocation(dateLayout, day, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("bad date %q in daily series: %w", day, ErrSourceUnavailable)
		}
		sample := weather.Sample{Date: date}
		if daily.PrecipitationSum[i] == nil || daily.TemperatureMax[i] == nil {
			sample.Missing = true
		} else {
			sample.PrecipitationMM = *daily.PrecipitationSum[i]
			sample.MaxTempC = *daily.TemperatureMax[i]
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// Elevation returns the terrain elevation at the point, in meters.
func (c *Client) Elevation(ctx context.Context, lat, lon float64) (float64, error) {
	params := url.Values{
		"latitude":  {formatCoord(lat)},
		"longitude": {formatCoord(lon)},
	}

	var resp elevationResponse
	if err := c.get(ctx, c.baseURL+"/elevation?"+params.Encode(), &resp); err != nil {
		return 0, err
	}
	if len(resp.Elevation) == 0 {
		return 0, fmt.Errorf("elevation response is empty: %w", ErrSourceUnavailable)
	}
	return resp.Elevation[0], nil
}

func (c *Client) get(ctx context.Context, fullURL string, out any) (err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	defer func() { metrics.RecordSourceRequest(err != nil) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %v: %w", err, ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %w", resp.StatusCode, ErrSourceUnavailable)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %v: %w", err, ErrSourceUnavailable)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
