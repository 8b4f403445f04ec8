// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults; Load layers an optional
//     file and environment variables on top.
//   - Risk thresholds live here, not as literals, so the tier split can be
//     corrected without a code change.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// ModelPath points at the serialized classifier artifact.
	ModelPath string `koanf:"model_path"`

	// ModelMetaPath points at the metadata JSON carrying the trained
	// feature order and version.
	ModelMetaPath string `koanf:"model_meta_path"`

	// WeatherBaseURL is the point-weather/elevation API endpoint.
	WeatherBaseURL string `koanf:"weather_base_url"`

	// WeatherTimeoutMS bounds each outbound weather request, in milliseconds.
	WeatherTimeoutMS int `koanf:"weather_timeout_ms"`

	// WeatherRPS and WeatherBurst throttle outbound weather calls.
	WeatherRPS   float64 `koanf:"weather_rps"`
	WeatherBurst int     `koanf:"weather_burst"`

	// RiskLowThreshold and RiskMediumThreshold set the tier split:
	// below low -> Low, below medium -> Medium, otherwise High.
	RiskLowThreshold    float64 `koanf:"risk_low_threshold"`
	RiskMediumThreshold float64 `koanf:"risk_medium_threshold"`

	// BatchMaxSize caps the number of items in POST /predict/batch.
	BatchMaxSize int `koanf:"batch_max_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8000",
		ModelPath:           "models/flood_gbdt.json",
		ModelMetaPath:       "models/model_meta.json",
		WeatherBaseURL:      "https://api.open-meteo.com/v1",
		WeatherTimeoutMS:    10_000,
		WeatherRPS:          5,
		WeatherBurst:        5,
		RiskLowThreshold:    0.3,
		RiskMediumThreshold: 0.6,
		BatchMaxSize:        1000,
	}
}
