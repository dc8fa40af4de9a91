// =============================================================================
// Fraud Indicator Analyzer - Logging Module
// =============================================================================
//
// This module configures the application logger. Log lines are written to
// stderr, keeping stdout free for reports, and appended to the log file when
// one is configured.
//
// LINE FORMAT:
//   [2006-01-02 15:04:05] [INFO] message key=value key=value
//
// =============================================================================

package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Formatter renders one entry per line with sorted fields.
type Formatter struct{}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	fmt.Fprintf(&b, "[%s] [%s] %s", entry.Time.Format("2006-01-02 15:04:05"), level, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		value := fmt.Sprint(entry.Data[k])
		if strings.ContainsAny(value, " \t\"=") {
			value = fmt.Sprintf("%q", value)
		}
		fmt.Fprintf(&b, " %s=%s", k, value)
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Setup creates a logger for the given level and optional log file.
//
// PARAMETERS:
//   - level: "debug", "info", "warn" or "error". Unknown values mean info.
//   - filePath: Log file to append to. Empty logs to the console only.
//   - verbose: Forces the debug level.
//
// RETURNS:
//   - The configured logger.
//   - A close function for the log file (a no-op without one).
//   - An error if the log file cannot be opened.
func Setup(level, filePath string, verbose bool) (*logrus.Logger, func() error, error) {
	return setup(os.Stderr, level, filePath, verbose)
}

func setup(console io.Writer, level, filePath string, verbose bool) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(&Formatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)

	closeFn := func() error { return nil }
	writers := []io.Writer{console}

	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
		closeFn = file.Close
	}

	logger.SetOutput(io.MultiWriter(writers...))
	return logger, closeFn, nil
}

// Discard returns a logger that writes nothing. Useful in tests and for
// library callers that do not want output.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
