// Package config provides configuration loading for the preroll tool.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zsiec/preroll/internal/clock"
	"github.com/zsiec/preroll/internal/timing"
)

// Config holds the tunables of a batch run. The artifact directory and PIDs
// are positional arguments and are not part of the file.
type Config struct {
	// Workers bounds how many records are estimated concurrently.
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`

	// ApplyPTSAdjustment adds each section's pts_adjustment to its splice
	// time before the PTS lookup.
	ApplyPTSAdjustment bool `yaml:"apply_pts_adjustment"`

	// ClockRateHz is the rate of the timing table's reference clock, used to
	// convert results to milliseconds.
	ClockRateHz int64 `yaml:"clock_rate_hz"`

	Columns timing.Columns `yaml:"columns"`
}

// Defaults returns a Config matching the analyzer's output conventions.
func Defaults() Config {
	return Config{
		Workers:     1,
		LogLevel:    "info",
		ClockRateHz: clock.Rate27MHz,
		Columns:     timing.DefaultColumns(),
	}
}

// LoadFromFile loads configuration from a YAML file. Keys absent from the
// file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	if c.ClockRateHz <= 0 {
		return fmt.Errorf("config: clock_rate_hz must be positive, got %d", c.ClockRateHz)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	cols := c.Columns
	if cols.PacketIndex == "" || cols.ReferenceClock == "" || cols.PresentationTimestamp == "" {
		return fmt.Errorf("config: column names must not be empty")
	}
	return nil
}

// SlogLevel returns the slog level for LogLevel, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
