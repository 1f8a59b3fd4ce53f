package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/analytics"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "wardcast.toml"

// AppConfig is the application configuration.
type AppConfig struct {
	Server   ServerConfig      `toml:"server"`
	Data     DataConfig        `toml:"data"`
	Analysis analytics.Options `toml:"analysis"`
	Scenario ward.Scenario     `toml:"scenario"`
	Log      LogConfig         `toml:"log"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig locates the historical dataset.
type DataConfig struct {
	Dataset string `toml:"dataset"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port: 8000,
		},
		Data: DataConfig{
			Dataset: "wards.csv",
		},
		Analysis: analytics.DefaultOptions(),
		Scenario: ward.Scenario{
			Year:                     2031,
			PopulationGrowthRate:     2.0,
			InfrastructureInvestment: 5.0,
			PolicyEffectiveness:      70.0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// WARDCAST_DATASET and WARDCAST_PORT override the file.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config TOML: %w", err)
		}
	}

	if v := os.Getenv("WARDCAST_DATASET"); v != "" {
		cfg.Data.Dataset = v
	}
	if v := os.Getenv("WARDCAST_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("WARDCAST_PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	metric, err := ward.ParseMetric(string(cfg.Analysis.Metric))
	if err != nil {
		return nil, fmt.Errorf("analysis.metric: %w", err)
	}
	cfg.Analysis.Metric = metric

	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
