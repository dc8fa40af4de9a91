// =============================================================================
// Fraud Indicator Analyzer - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (Table)
//   - classifier (Role)
//   - detector, risk, analysis (Finding, Result)
//   - report
//
// =============================================================================

package types

// =============================================================================
// TABLE
// =============================================================================

// Table is the parsed form of a CSV (or spreadsheet) export.
type Table struct {
	// Headers are the trimmed header names in file order.
	// Duplicates are allowed; they collide in Rows (last value wins).
	Headers []string `json:"headers" yaml:"headers"`

	// Rows holds one map per data row, keyed by header.
	// Every row carries every header key; missing trailing fields are "".
	Rows []map[string]string `json:"rows" yaml:"rows"`
}

// RowCount returns the number of data rows. A nil table has none.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// =============================================================================
// COLUMN ROLES
// =============================================================================

// Role is a semantic category assigned to a column by header matching.
type Role string

const (
	RoleIdentifier Role = "identifier"
	RoleInvoice    Role = "invoice"
	RoleAmount     Role = "amount"
	RoleDate       Role = "date"
	RoleSource     Role = "source"
)

// AllRoles lists every role in a stable order.
var AllRoles = []Role{RoleIdentifier, RoleInvoice, RoleAmount, RoleDate, RoleSource}

// ParseRole maps a role name to a Role.
func ParseRole(name string) (Role, bool) {
	for _, r := range AllRoles {
		if string(r) == name {
			return r, true
		}
	}
	return "", false
}

// =============================================================================
// FINDINGS
// =============================================================================

// Indicator labels, in result order.
const (
	LabelDuplicateIDs      = "DuplicateIds"
	LabelManualEntries     = "ManualEntries"
	LabelRoundNumbers      = "RoundNumbers"
	LabelWeekendDates      = "WeekendDates"
	LabelDuplicateInvoices = "DuplicateInvoices"
)

// IndicatorOrder is the fixed order of indicators in a Result.
var IndicatorOrder = []string{
	LabelDuplicateIDs,
	LabelManualEntries,
	LabelRoundNumbers,
	LabelWeekendDates,
	LabelDuplicateInvoices,
}

// Finding is the output of a single detector run.
type Finding struct {
	// Label is the detector name (one of the Label* constants).
	Label string `json:"label" yaml:"label"`

	// Count is the number of distinct flagged rows.
	Count int `json:"count" yaml:"count"`

	// Weight is the detector's constant weight in the risk score.
	Weight float64 `json:"weight" yaml:"weight"`

	// FlaggedRows holds sorted, deduplicated 0-based row indices.
	FlaggedRows []int `json:"flagged_rows" yaml:"flagged_rows"`

	// Details holds human-readable explanations, at most MaxDetails entries.
	Details []string `json:"details" yaml:"details"`
}

// Active reports whether the finding flagged anything.
func (f Finding) Active() bool {
	return f.Count > 0
}

// =============================================================================
// RESULT
// =============================================================================

// RiskLevel is the discrete risk tier.
type RiskLevel string

const (
	RiskMedium  RiskLevel = "Medium"
	RiskHigh    RiskLevel = "High"
	RiskHighest RiskLevel = "Highest"
)

// RiskColor is the display color paired with a RiskLevel.
type RiskColor string

const (
	ColorYellow RiskColor = "yellow"
	ColorOrange RiskColor = "orange"
	ColorRed    RiskColor = "red"
)

// Result is the outcome of one analysis run. It is owned by the caller.
type Result struct {
	// Indicators holds exactly five findings in IndicatorOrder.
	Indicators []Finding `json:"indicators" yaml:"indicators"`

	// TotalIndicators is the sum of all indicator counts (not deduplicated
	// across indicators).
	TotalIndicators int `json:"total_indicators" yaml:"total_indicators"`

	// RiskScore is in [0, 10], rounded to two decimals.
	RiskScore float64 `json:"risk_score" yaml:"risk_score"`

	RiskLevel RiskLevel `json:"risk_level" yaml:"risk_level"`
	RiskColor RiskColor `json:"risk_color" yaml:"risk_color"`

	// TotalRows is the number of data rows in the analysed table.
	TotalRows int `json:"total_rows" yaml:"total_rows"`
}

// Indicator returns the finding with the given label.
func (r Result) Indicator(label string) (Finding, bool) {
	for _, f := range r.Indicators {
		if f.Label == label {
			return f, true
		}
	}
	return Finding{}, false
}
