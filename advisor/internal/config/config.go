package config

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/cropadvisor/cropadvisor/advisor/internal/alerts"
	"github.com/cropadvisor/cropadvisor/advisor/internal/report"
	"github.com/cropadvisor/cropadvisor/advisor/internal/sensor"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultSensorPath   = "field.prom"
	DefaultOutputFormat = report.FormatText
	DefaultSchedule     = "@every 1h"
)

// Config is the top-level cropadvisor configuration.
type Config struct {
	Table    TableConfig    `yaml:"table"`
	Sensor   SensorConfig   `yaml:"sensor"`
	Output   OutputConfig   `yaml:"output"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Alerts   AlertsConfig   `yaml:"alerts"`
}

// TableConfig selects the crop reference table.
type TableConfig struct {
	// Path is a crop table YAML file. Empty uses the embedded dataset.
	Path string `yaml:"path"`
}

// SensorConfig describes where observed conditions come from in watch and
// schedule mode.
type SensorConfig struct {
	// Path is the observation file.
	Path string `yaml:"path"`

	// Format is yaml | json | prometheus. Empty picks by file extension.
	Format string `yaml:"format"`

	// Metrics maps factors to Prometheus metric names. Keys left out keep
	// their defaults.
	Metrics sensor.Metrics `yaml:"metrics"`
}

// Options converts the sensor settings for sensor.Read and sensor.Watch.
func (s SensorConfig) Options() sensor.Options {
	return sensor.Options{Format: s.Format, Metrics: s.Metrics}
}

// OutputConfig controls how results are published.
type OutputConfig struct {
	// Format is text | json | yaml.
	Format string `yaml:"format"`

	// Textfile is a path for Prometheus textfile output. Empty disables it.
	Textfile string `yaml:"textfile"`
}

// ScheduleConfig drives the schedule command.
type ScheduleConfig struct {
	// Spec is a robfig/cron expression, e.g. "0 6 * * *" or "@every 1h".
	Spec string `yaml:"spec"`
}

// AlertsConfig holds the alerting rules.
type AlertsConfig struct {
	Rules []alerts.Rule `yaml:"rules"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Sensor: SensorConfig{
			Path:    DefaultSensorPath,
			Metrics: sensor.DefaultMetrics(),
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
		Schedule: ScheduleConfig{
			Spec: DefaultSchedule,
		},
	}
}

// validate checks enums and structural constraints.
func validate(cfg *Config) error {
	if !oneOf(cfg.Output.Format, report.Formats) {
		return fmt.Errorf("output.format %q must be one of %v", cfg.Output.Format, report.Formats)
	}
	if cfg.Sensor.Format != "" && !oneOf(cfg.Sensor.Format, sensor.Formats) {
		return fmt.Errorf("sensor.format %q must be one of %v", cfg.Sensor.Format, sensor.Formats)
	}
	for f, name := range cfg.Sensor.Metrics {
		if !knownFactor(f) {
			return fmt.Errorf("sensor.metrics: unknown factor %q", f)
		}
		if name == "" {
			return fmt.Errorf("sensor.metrics.%s: metric name is required", f)
		}
	}
	if _, err := cron.ParseStandard(cfg.Schedule.Spec); err != nil {
		return fmt.Errorf("schedule.spec %q: %w", cfg.Schedule.Spec, err)
	}
	if err := alerts.Validate(cfg.Alerts.Rules); err != nil {
		return err
	}
	return nil
}

func oneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func knownFactor(f types.Factor) bool {
	for _, k := range types.Factors {
		if f == k {
			return true
		}
	}
	return false
}
