package detector

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/classifier"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

var (
	// manualSource matches source values that indicate keyed-in entries.
	manualSource = regexp.MustCompile(`(?i)manual|hand|keyed|typed`)

	// manualWord matches the word "manual" in any cell.
	manualWord = regexp.MustCompile(`(?i)\bmanual\b`)
)

// manualEntries flags rows entered by hand: a blank or manual-looking source
// column, or the word "manual" anywhere in the row.
type manualEntries struct{}

// NewManualEntries returns the manual-entry detector.
func NewManualEntries() Detector { return manualEntries{} }

func (manualEntries) Label() string   { return types.LabelManualEntries }
func (manualEntries) Weight() float64 { return WeightManualEntries }

func (m manualEntries) Detect(headers []string, rows []map[string]string, cols classifier.Columns) types.Finding {
	c := newCollector()
	sources := cols.Get(types.RoleSource)

	for i, row := range rows {
		if reason, ok := manualReason(row, headers, sources); ok {
			c.flag(i)
			c.note(fmt.Sprintf("Row %d: %s", i+1, reason))
		}
	}

	return c.finding(m.Label(), m.Weight())
}

// manualReason returns the first reason a row counts as a manual entry.
func manualReason(row map[string]string, headers, sources []string) (string, bool) {
	for _, col := range sources {
		value := strings.TrimSpace(row[col])
		if value == "" {
			return fmt.Sprintf("source column %q is blank", col), true
		}
		if manualSource.MatchString(value) {
			return fmt.Sprintf("source column %q is %q", col, value), true
		}
	}

	for _, col := range headers {
		if manualWord.MatchString(row[col]) {
			return fmt.Sprintf("%q mentions manual entry", col), true
		}
	}

	return "", false
}
