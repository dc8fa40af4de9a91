// =============================================================================
// Fraud Indicator Analyzer - Indicator Detectors
// =============================================================================
//
// This module contains the five fraud heuristics. Every detector:
//   - Reads the table and the classifier's column roles
//   - Never mutates its input and keeps no state between calls
//   - Silently skips blank or unparseable cells
//   - Returns exact counts and flagged rows, with at most MaxDetails
//     explanation lines
//
// DETECTORS (in result order):
//   1. DuplicateIds      (0.5) - repeated values in identifier columns
//   2. ManualEntries     (0.5) - blank or manual entry sources
//   3. RoundNumbers      (0.9) - amounts divisible by 100
//   4. WeekendDates      (0.5) - dates on Saturday or Sunday
//   5. DuplicateInvoices (0.7) - repeated values in invoice columns
//
// Detectors do not depend on each other and may run concurrently.
//
// =============================================================================

package detector

import (
	"sort"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/classifier"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

// MaxDetails caps the explanation lines kept per finding.
const MaxDetails = 15

// Detector weights.
const (
	WeightDuplicateIDs      = 0.5
	WeightManualEntries     = 0.5
	WeightRoundNumbers      = 0.9
	WeightWeekendDates      = 0.5
	WeightDuplicateInvoices = 0.7
)

// =============================================================================
// DETECTOR INTERFACE
// =============================================================================

// Detector is a single fraud heuristic.
type Detector interface {
	// Label is the indicator name reported in the finding.
	Label() string

	// Weight is the detector's constant weight in the risk score.
	Weight() float64

	// Detect scans the rows and returns a fresh finding.
	Detect(headers []string, rows []map[string]string, cols classifier.Columns) types.Finding
}

// All returns the five detectors in result order.
func All() []Detector {
	return []Detector{
		NewDuplicateIDs(),
		NewManualEntries(),
		NewRoundNumbers(),
		NewWeekendDates(),
		NewDuplicateInvoices(),
	}
}

// =============================================================================
// FINDING COLLECTOR
// =============================================================================

// collector accumulates flagged rows and bounded detail lines.
type collector struct {
	flagged map[int]struct{}
	details []string
}

func newCollector() *collector {
	return &collector{flagged: make(map[int]struct{})}
}

// flag marks a row index. Repeated flags for the same row are ignored.
func (c *collector) flag(row int) {
	c.flagged[row] = struct{}{}
}

// note appends a detail line unless the cap has been reached.
func (c *collector) note(detail string) {
	if len(c.details) < MaxDetails {
		c.details = append(c.details, detail)
	}
}

// finding builds the immutable result for a detector.
func (c *collector) finding(label string, weight float64) types.Finding {
	rows := make([]int, 0, len(c.flagged))
	for row := range c.flagged {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	details := c.details
	if details == nil {
		details = []string{}
	}

	return types.Finding{
		Label:       label,
		Count:       len(rows),
		Weight:      weight,
		FlaggedRows: rows,
		Details:     details,
	}
}
