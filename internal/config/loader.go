package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FLOODCAST_CONFIG is set
//  3. env (prefix FLOODCAST_)
func Load(ctx context.Context) (*Config, error) {
	_ = ctx // reserved for remote providers

	base := New()

	k := koanf.New(".")

	if path := os.Getenv("FLOODCAST_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: FLOODCAST_ADDR, FLOODCAST_MODEL_PATH, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("FLOODCAST_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "floodcast_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ModelPath == "":
		return fmt.Errorf("%w: model_path must not be empty", ErrInvalidConfig)
	case c.ModelMetaPath == "":
		return fmt.Errorf("%w: model_meta_path must not be empty", ErrInvalidConfig)
	case c.WeatherBaseURL == "":
		return fmt.Errorf("%w: weather_base_url must not be empty", ErrInvalidConfig)
	case c.WeatherTimeoutMS <= 0:
		return fmt.Errorf("%w: weather_timeout_ms must be positive", ErrInvalidConfig)
	case c.RiskLowThreshold <= 0 || c.RiskLowThreshold >= c.RiskMediumThreshold || c.RiskMediumThreshold >= 1:
		return fmt.Errorf("%w: risk thresholds must satisfy 0 < low < medium < 1", ErrInvalidConfig)
	case c.BatchMaxSize <= 0:
		return fmt.Errorf("%w: batch_max_size must be positive", ErrInvalidConfig)
	}
	return nil
}
