package detector

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/cellparse"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/classifier"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

// weekendDates flags rows whose date columns fall on Saturday or Sunday.
type weekendDates struct{}

// NewWeekendDates returns the weekend-date detector.
func NewWeekendDates() Detector { return weekendDates{} }

func (weekendDates) Label() string   { return types.LabelWeekendDates }
func (weekendDates) Weight() float64 { return WeightWeekendDates }

func (w weekendDates) Detect(headers []string, rows []map[string]string, cols classifier.Columns) types.Finding {
	c := newCollector()

	for _, col := range cols.Get(types.RoleDate) {
		for i, row := range rows {
			raw := strings.TrimSpace(row[col])
			date, ok := cellparse.ParseDate(raw)
			if !ok {
				continue
			}

			day := date.Weekday()
			if day != time.Saturday && day != time.Sunday {
				continue
			}

			c.flag(i)
			c.note(fmt.Sprintf("Row %d: %s %q falls on a %s", i+1, col, raw, day))
		}
	}

	return c.finding(w.Label(), w.Weight())
}
