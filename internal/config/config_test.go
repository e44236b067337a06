package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preroll.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers: got %d, want 1", cfg.Workers)
	}
	if cfg.ClockRateHz != 27_000_000 {
		t.Errorf("ClockRateHz: got %d, want 27000000", cfg.ClockRateHz)
	}
	if cfg.Columns.PacketIndex != "pktCnt" || cfg.Columns.ReferenceClock != "pcr" || cfg.Columns.PresentationTimestamp != "pts" {
		t.Errorf("Columns: got %+v", cfg.Columns)
	}
	if cfg.ApplyPTSAdjustment {
		t.Error("pts adjustment should be off by default")
	}
}

func TestLoadFromFileOverlaysDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
workers: 4
log_level: debug
apply_pts_adjustment: true
columns:
  reference_clock: referenceClock
`)
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers: got %d, want 4", cfg.Workers)
	}
	if !cfg.ApplyPTSAdjustment {
		t.Error("ApplyPTSAdjustment: got false, want true")
	}
	if cfg.Columns.ReferenceClock != "referenceClock" {
		t.Errorf("ReferenceClock column: got %q", cfg.Columns.ReferenceClock)
	}
	if cfg.Columns.PacketIndex != "pktCnt" {
		t.Errorf("PacketIndex column should keep default, got %q", cfg.Columns.PacketIndex)
	}
	if cfg.ClockRateHz != 27_000_000 {
		t.Errorf("ClockRateHz should keep default, got %d", cfg.ClockRateHz)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel: got %v, want debug", cfg.SlogLevel())
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "workers: [", "parsing"},
		{"zero workers", "workers: 0", "workers"},
		{"bad level", "log_level: loud", "log_level"},
		{"bad rate", "clock_rate_hz: -1", "clock_rate_hz"},
		{"empty column", "columns:\n  presentation_timestamp: \"\"", "column names"},
	}
	for _, tc := range tests {
		_, err := LoadFromFile(writeConfig(t, tc.body))
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := (Config{LogLevel: tc.in}).SlogLevel(); got != tc.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
