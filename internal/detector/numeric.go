package detector

import (
	"fmt"
	"math"
	"strings"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/cellparse"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/classifier"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

// roundNumbers flags non-zero amounts that are exact multiples of 100.
type roundNumbers struct{}

// NewRoundNumbers returns the round-amount detector.
func NewRoundNumbers() Detector { return roundNumbers{} }

func (roundNumbers) Label() string   { return types.LabelRoundNumbers }
func (roundNumbers) Weight() float64 { return WeightRoundNumbers }

func (r roundNumbers) Detect(headers []string, rows []map[string]string, cols classifier.Columns) types.Finding {
	c := newCollector()

	for _, col := range cols.Get(types.RoleAmount) {
		for i, row := range rows {
			raw := row[col]
			value, ok := cellparse.ParseAmount(raw)
			if !ok || value == 0 {
				continue
			}
			if math.Mod(value, 100) != 0 {
				continue
			}

			// One detail per (row, column); the row itself is counted once.
			c.flag(i)
			c.note(fmt.Sprintf("Row %d: %s = %s is a round amount", i+1, col, strings.TrimSpace(raw)))
		}
	}

	return c.finding(r.Label(), r.Weight())
}
