package detector

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/classifier"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

// duplicateDetector flags rows whose value in a column of the given role
// appears more than once. Values are compared trimmed and case-insensitively.
type duplicateDetector struct {
	label  string
	weight float64
	role   types.Role
}

// NewDuplicateIDs flags repeated values in identifier columns.
func NewDuplicateIDs() Detector {
	return &duplicateDetector{
		label:  types.LabelDuplicateIDs,
		weight: WeightDuplicateIDs,
		role:   types.RoleIdentifier,
	}
}

// NewDuplicateInvoices flags repeated values in invoice columns.
func NewDuplicateInvoices() Detector {
	return &duplicateDetector{
		label:  types.LabelDuplicateInvoices,
		weight: WeightDuplicateInvoices,
		role:   types.RoleInvoice,
	}
}

func (d *duplicateDetector) Label() string   { return d.label }
func (d *duplicateDetector) Weight() float64 { return d.weight }

// valueGroup is the set of rows sharing one normalised value.
type valueGroup struct {
	display string
	rows    []int
}

func (d *duplicateDetector) Detect(headers []string, rows []map[string]string, cols classifier.Columns) types.Finding {
	c := newCollector()

	for _, col := range cols.Get(d.role) {
		groups := make(map[string]*valueGroup)
		var order []string // first-seen order keeps details stable

		for i, row := range rows {
			value := strings.TrimSpace(row[col])
			if value == "" {
				continue
			}

			key := strings.ToLower(value)
			g, ok := groups[key]
			if !ok {
				g = &valueGroup{display: value}
				groups[key] = g
				order = append(order, key)
			}
			g.rows = append(g.rows, i)
		}

		for _, key := range order {
			g := groups[key]
			if len(g.rows) < 2 {
				continue
			}
			for _, row := range g.rows {
				c.flag(row)
			}
			c.note(fmt.Sprintf("%q appears %d× in column %q", g.display, len(g.rows), col))
		}
	}

	return c.finding(d.label, d.weight)
}
