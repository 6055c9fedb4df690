// Package config loads the planner's run configuration from a TOML file,
// falling back to built-in defaults when no file is given.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/aria-htn/planner/internal/temporal"
)

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// PlannerConfig configures one planning attempt's search bounds.
type PlannerConfig struct {
	MaxDepth   int    `toml:"max_depth"`
	Resolution string `toml:"resolution"`
	Verbose    bool   `toml:"verbose"`
}

// Config holds all configuration for the planner service.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Planner PlannerConfig `toml:"planner"`
}

// Default returns the built-in configuration used when no TOML file is
// supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     8080,
			LogLevel: "info",
		},
		Planner: PlannerConfig{
			MaxDepth:   100,
			Resolution: "microsecond",
		},
	}
}

// Load reads configuration from a TOML file at path, overlaying it onto
// Default. An empty path returns Default unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load %q: %w", path, err)
	}
	return cfg, nil
}

// ResolvedResolution maps the config's named resolution to a temporal.Resolution.
func (p PlannerConfig) ResolvedResolution() (temporal.Resolution, error) {
	switch p.Resolution {
	case "", "microsecond":
		return temporal.Microsecond, nil
	case "millisecond":
		return temporal.Millisecond, nil
	case "second":
		return temporal.Second, nil
	case "minute":
		return temporal.Minute, nil
	case "hour":
		return temporal.Hour, nil
	case "day":
		return temporal.Day, nil
	default:
		return 0, fmt.Errorf("config: unknown resolution %q", p.Resolution)
	}
}
