package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 1, 6, 9, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "analysis complete",
		Data: logrus.Fields{
			"rows": 3,
			"file": "my ledger.csv",
		},
	}

	out, err := (&Formatter{}).Format(entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "[2024-01-06 09:30:00] [WARN] analysis complete file=\"my ledger.csv\" rows=3\n"
	if string(out) != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
}

func TestSetup_Levels(t *testing.T) {
	tests := []struct {
		level   string
		verbose bool
		want    logrus.Level
	}{
		{"debug", false, logrus.DebugLevel},
		{"warn", false, logrus.WarnLevel},
		{"nonsense", false, logrus.InfoLevel},
		{"error", true, logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, closeFn, err := setup(&buf, tt.level, "", tt.verbose)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer closeFn()

			if logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fraudscan.log")

	var buf bytes.Buffer
	logger, closeFn, err := setup(&buf, "info", path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.WithField("file", "a.csv").Info("processed")
	logger.Debug("hidden")

	if err := closeFn(); err != nil {
		t.Fatalf("failed to close log file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	for _, out := range []string{buf.String(), string(data)} {
		if !strings.Contains(out, "processed file=a.csv") {
			t.Errorf("missing info line in %q", out)
		}
		if strings.Contains(out, "hidden") {
			t.Errorf("debug line should be filtered: %q", out)
		}
	}
}
