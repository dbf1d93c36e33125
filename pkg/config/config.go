// Package config loads the YAML configuration of the navigator binaries.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-anchornav/pkg/validation"
)

// Defaults recovered from the anchor history store of the mobile client
const (
	DefaultHistoryLimit  = 40
	DefaultHistoryMaxAge = 24 * time.Hour
	DefaultTickInterval  = 100 * time.Millisecond
	DefaultMetricsAddr   = ":9464"
)

// Config is the root configuration document
type Config struct {
	Navigation NavigationConfig `yaml:"navigation"`
	History    HistoryConfig    `yaml:"history"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// NavigationConfig names the waypoint type tags
type NavigationConfig struct {
	DestinationType string `yaml:"destination_type"`
	WaypointType    string `yaml:"waypoint_type"`
}

// HistoryConfig controls the persisted anchor history
type HistoryConfig struct {
	Path     string        `yaml:"path"`
	Limit    int           `yaml:"limit"`
	MaxAge   time.Duration `yaml:"max_age"`
	Compress bool          `yaml:"compress"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// SimulationConfig controls scripted runs
type SimulationConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	MaxTicks     int           `yaml:"max_ticks"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Navigation: NavigationConfig{
			DestinationType: "destination",
			WaypointType:    "waypoint",
		},
		History: HistoryConfig{
			Limit:  DefaultHistoryLimit,
			MaxAge: DefaultHistoryMaxAge,
		},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Addr: DefaultMetricsAddr},
		Simulation: SimulationConfig{
			TickInterval: DefaultTickInterval,
			MaxTicks:     1000,
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section and reports all problems at once
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("config").
		Required("navigation.destination_type", c.Navigation.DestinationType).
		Required("navigation.waypoint_type", c.Navigation.WaypointType).
		Custom("navigation.waypoint_type", func() error {
			if c.Navigation.WaypointType == c.Navigation.DestinationType {
				return fmt.Errorf("must differ from destination_type %q", c.Navigation.DestinationType)
			}
			return nil
		}).
		RangeInt("history.limit", c.History.Limit, 1, 10000).
		RangeDuration("history.max_age", c.History.MaxAge, time.Minute, 365*24*time.Hour).
		OneOf("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "warning", "error"}).
		RangeDuration("simulation.tick_interval", c.Simulation.TickInterval, time.Millisecond, time.Minute).
		Positive("simulation.max_ticks", c.Simulation.MaxTicks).
		When(c.Metrics.Enabled, func(cv *validation.ConfigValidator) {
			cv.Required("metrics.addr", c.Metrics.Addr)
		})

	return cv.Validate()
}
