// Package cellparse provides best-effort parsing of CSV cell values.
//
// Third-party exports are messy: amounts carry currency symbols and
// thousands separators, dates arrive in whatever format the exporting
// system liked. Every function here returns (value, ok) instead of an
// error; ok == false means "skip this cell".
package cellparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// leadingNumber matches the numeric prefix of a cleaned amount string.
var leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)

// Date layouts tried before falling back to dateparse. ISO first, then
// US-style slash dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"20060102",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseAmount extracts a number from a monetary cell.
//
// Every character other than digits, '.' and '-' is removed and the
// longest numeric prefix of what remains is parsed, so "$1,200.00" is
// 1200 and "USD -45" is -45. Blank or non-numeric cells return ok=false.
func ParseAmount(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)

	match := leadingNumber.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseDate parses a calendar date or timestamp in any common layout.
// Blank or unparseable cells return ok=false.
func ParseDate(raw string) (t time.Time, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}

	// dateparse can panic on some malformed inputs.
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
