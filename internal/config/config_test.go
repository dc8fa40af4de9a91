package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/classifier"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.InputDir != "./input" || cfg.OutputDir != "./output" {
		t.Errorf("unexpected directories: %q %q", cfg.InputDir, cfg.OutputDir)
	}
	if cfg.ReportFormat != "json" {
		t.Errorf("expected json report format, got %q", cfg.ReportFormat)
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("expected max concurrency 4, got %d", cfg.MaxConcurrency)
	}
	if !cfg.ShouldContinueOnError() {
		t.Error("continue_on_error should default to true")
	}
	if !cfg.ShouldArchiveInputs() || cfg.ArchiveTimestampSubdirs {
		t.Error("inputs should be archived flat by default")
	}
	if !reflect.DeepEqual(cfg.FilePatterns, []string{"*.csv", "*.xlsx"}) {
		t.Errorf("unexpected file patterns: %v", cfg.FilePatterns)
	}
	if cfg.LogFilePath() != "./logs/fraudscan.log" {
		t.Errorf("unexpected log file: %q", cfg.LogFilePath())
	}

	cfg.LogFile = "-"
	if cfg.LogFilePath() != "" {
		t.Errorf("\"-\" should disable file logging, got %q", cfg.LogFilePath())
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
input_dir: /data/in
report_format: XLSX
log_level: DEBUG
max_concurrency: 8
continue_on_error: false
concurrent_detectors: true
archive_inputs: false
archive_timestamp_subdirs: true
classifier:
  patterns:
    source: ["entered by"]
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.InputDir != "/data/in" {
		t.Errorf("input_dir = %q", cfg.InputDir)
	}
	if cfg.ReportFormat != "xlsx" || cfg.LogLevel != "debug" {
		t.Errorf("format/level should be lower-cased: %q %q", cfg.ReportFormat, cfg.LogLevel)
	}
	if cfg.MaxConcurrency != 8 || cfg.ShouldContinueOnError() || !cfg.ConcurrentDetectors {
		t.Errorf("processing settings not applied: %+v", cfg)
	}
	if cfg.ShouldArchiveInputs() || !cfg.ArchiveTimestampSubdirs {
		t.Errorf("archive settings not applied: %+v", cfg)
	}

	patterns, err := cfg.ClassifierPatterns()
	if err != nil {
		t.Fatalf("unexpected pattern error: %v", err)
	}
	if !classifier.New(patterns).Matches(types.RoleSource, "Entered By") {
		t.Error("override pattern should be active")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative concurrency", "max_concurrency: -1"},
		{"unknown format", "report_format: pdf"},
		{"unknown level", "log_level: loud"},
		{"unknown role", "classifier:\n  patterns:\n    colour: [x]"},
		{"bad regex", "classifier:\n  patterns:\n    date: ['(']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("input_dir: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadMainConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if _, err := LoadMainConfig(path, false); err == nil {
		t.Error("expected error for missing file when not allowed")
	}

	cfg, err := LoadMainConfig(path, true)
	if err != nil {
		t.Fatalf("missing file should yield defaults: %v", err)
	}
	if cfg.ReportFormat != "json" {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	if err := os.WriteFile(path, []byte("report_format: text\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err = LoadMainConfig(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReportFormat != "text" {
		t.Errorf("report_format = %q, want text", cfg.ReportFormat)
	}
}
