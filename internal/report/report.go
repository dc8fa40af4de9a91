// =============================================================================
// Fraud Indicator Analyzer - Report Module
// =============================================================================
//
// This module renders an analysis result for people and for other tools.
// Every report wraps the unchanged engine result in an envelope that records
// where the data came from and which run produced it.
//
// SUPPORTED FORMATS:
//   - text : human-readable summary for the terminal
//   - json : indented JSON document
//   - yaml : YAML document
//   - xml  : XML document (<fraudReport> root)
//   - xlsx : Excel workbook, a Summary sheet plus one sheet of flagged rows
//            per active indicator
//
// =============================================================================

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/detector"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for an unsupported report format name.
var ErrUnknownFormat = errors.New("unknown report format")

// =============================================================================
// FORMATS
// =============================================================================

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatXML, FormatXLSX}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// =============================================================================
// REPORT ENVELOPE
// =============================================================================

// Report is the envelope written for one analysed file.
type Report struct {
	// RunID identifies the analysis run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Source is the input file name (or "-" for stdin).
	Source string `json:"source" yaml:"source"`

	// GeneratedAt is the UTC time the report was created.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Result is the engine output, unchanged.
	Result types.Result `json:"result" yaml:"result"`

	// Table is the analysed data. It is not serialised; the XLSX writer
	// uses it to list flagged rows.
	Table *types.Table `json:"-" yaml:"-"`
}

// New creates a report with a fresh run ID.
func New(source string, table *types.Table, result types.Result) *Report {
	return &Report{
		RunID:       uuid.New().String(),
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Result:      result,
		Table:       table,
	}
}

// =============================================================================
// WRITERS
// =============================================================================

// Write renders the report to w in the given format.
func Write(w io.Writer, format Format, rep *Report) error {
	switch format {
	case FormatText:
		return writeText(w, rep)

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return nil

	case FormatXML:
		return writeXML(w, rep)

	case FormatXLSX:
		return writeXLSX(w, rep)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// WriteFile renders the report into a new file at path.
func WriteFile(path string, format Format, rep *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := Write(file, format, rep); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	return nil
}

// writeText renders the terminal summary.
func writeText(w io.Writer, rep *Report) error {
	var b strings.Builder
	r := rep.Result

	fmt.Fprintf(&b, "Fraud Indicator Report\n")
	fmt.Fprintf(&b, "======================\n")
	fmt.Fprintf(&b, "Source:      %s\n", rep.Source)
	fmt.Fprintf(&b, "Run ID:      %s\n", rep.RunID)
	fmt.Fprintf(&b, "Generated:   %s\n", rep.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Rows:        %d\n", r.TotalRows)
	fmt.Fprintf(&b, "Risk score:  %.2f / 10 (%s, %s)\n", r.RiskScore, r.RiskLevel, r.RiskColor)
	fmt.Fprintf(&b, "Indicators:  %d\n\n", r.TotalIndicators)

	for _, f := range r.Indicators {
		fmt.Fprintf(&b, "%-18s %5d  (weight %.1f)\n", f.Label, f.Count, f.Weight)
		for _, d := range f.Details {
			fmt.Fprintf(&b, "    - %s\n", d)
		}
		if len(f.Details) >= detector.MaxDetails {
			fmt.Fprintf(&b, "    (details limited to %d)\n", detector.MaxDetails)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}
