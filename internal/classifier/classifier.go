// =============================================================================
// Fraud Indicator Analyzer - Column Classifier
// =============================================================================
//
// The classifier assigns CSV headers to semantic roles (identifier, invoice,
// amount, date, source) by case-insensitive pattern matching. Roles are
// matched independently, so one header may hold several roles: a column
// named "invoice_date" is both an invoice column and a date column.
//
// Pattern lists are fixed when a Classifier is constructed. The built-in
// lists come from DefaultPatterns; configuration can replace the list for
// any role through Compile.
//
// =============================================================================

package classifier

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

// ErrUnknownRole is returned by Compile for a role name it does not know.
var ErrUnknownRole = errors.New("unknown column role")

// =============================================================================
// PATTERNS
// =============================================================================

// Patterns holds the compiled header patterns for each role.
type Patterns map[types.Role][]*regexp.Regexp

// defaultPatternSources are the built-in header patterns. Identifier patterns
// are anchored (whole-header match); the others match anywhere in the header.
var defaultPatternSources = map[types.Role][]string{
	types.RoleIdentifier: {
		`^id$`,
		`^(record|transaction|txn|trans|ref|reference|entry|row|journal|document|doc|customer|account)[\s_.-]*id$`,
		`^(record[\s_.-]*)?key$`,
		`^(uid|uuid|guid)$`,
	},
	types.RoleInvoice: {
		`invoice`,
		`\binv[\s_.-]*(no|num|number|#)`,
		`\bbill[\s_.-]*(no|num|number|#)`,
		`voucher`,
		`receipt[\s_.-]*(no|num|number|#)`,
	},
	types.RoleAmount: {
		`debit`,
		`credit`,
		`amount`,
		`\bamt\b`,
		`value`,
		`total`,
		`balance`,
		`price`,
		`cost`,
		`payment`,
		`\bfee`,
	},
	types.RoleDate: {
		`date`,
		`timestamp`,
		`\bdue\b`,
		`posted`,
		`created`,
		`\bperiod\b`,
	},
	types.RoleSource: {
		`source`,
		`origin`,
		`channel`,
		`method`,
		`type`,
		`entry[\s_.-]*mode`,
	},
}

// DefaultPatterns returns the built-in patterns, compiled case-insensitively.
func DefaultPatterns() Patterns {
	patterns := make(Patterns, len(defaultPatternSources))
	for role, sources := range defaultPatternSources {
		for _, src := range sources {
			patterns[role] = append(patterns[role], regexp.MustCompile("(?i)"+src))
		}
	}
	return patterns
}

// DefaultPatternSources returns a copy of the built-in pattern strings keyed
// by role name. Useful for printing or seeding a configuration file.
func DefaultPatternSources() map[string][]string {
	out := make(map[string][]string, len(defaultPatternSources))
	for role, sources := range defaultPatternSources {
		out[string(role)] = append([]string(nil), sources...)
	}
	return out
}

// Compile builds Patterns from role-name -> regex-list overrides. Roles not
// present in overrides keep their built-in patterns; a role present with an
// empty list matches nothing.
//
// PARAMETERS:
//   - overrides: Map of role name ("identifier", "amount", ...) to patterns.
//
// RETURNS:
//   - The compiled patterns.
//   - ErrUnknownRole for an unrecognised role name, or a regex compile error.
func Compile(overrides map[string][]string) (Patterns, error) {
	patterns := DefaultPatterns()

	// Sort role names so the first reported error is deterministic.
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		role, ok := types.ParseRole(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, name)
		}

		compiled := make([]*regexp.Regexp, 0, len(overrides[name]))
		for _, src := range overrides[name] {
			re, err := regexp.Compile("(?i)" + src)
			if err != nil {
				return nil, fmt.Errorf("invalid %s pattern %q: %w", role, src, err)
			}
			compiled = append(compiled, re)
		}
		patterns[role] = compiled
	}

	return patterns, nil
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// Columns maps each role to the headers that matched it, in header order.
type Columns map[types.Role][]string

// Get returns the headers for a role. A missing role yields nil.
func (c Columns) Get(role types.Role) []string {
	return c[role]
}

// Classifier matches headers against a fixed set of patterns.
// It is safe for concurrent use.
type Classifier struct {
	patterns Patterns
}

// New creates a Classifier. A nil patterns value selects DefaultPatterns.
func New(patterns Patterns) *Classifier {
	if patterns == nil {
		patterns = DefaultPatterns()
	}

	// Copy so later changes to the caller's map don't leak in.
	owned := make(Patterns, len(patterns))
	for role, list := range patterns {
		owned[role] = append([]*regexp.Regexp(nil), list...)
	}

	return &Classifier{patterns: owned}
}

// Classify assigns headers to roles.
//
// When no header matches the identifier role, the first header that is not
// an invoice column is used as the identifier. Invoice columns are skipped
// so the same duplicate values are not reported by both duplicate
// detectors.
func (c *Classifier) Classify(headers []string) Columns {
	cols := make(Columns, len(types.AllRoles))

	for _, role := range types.AllRoles {
		for _, header := range headers {
			// Duplicate headers share one row key, so list them once.
			if c.matches(role, header) && !contains(cols[role], header) {
				cols[role] = append(cols[role], header)
			}
		}
	}

	if len(cols[types.RoleIdentifier]) == 0 {
		if fallback, ok := c.fallbackIdentifier(headers, cols[types.RoleInvoice]); ok {
			cols[types.RoleIdentifier] = []string{fallback}
		}
	}

	return cols
}

// Matches reports whether header satisfies role.
func (c *Classifier) Matches(role types.Role, header string) bool {
	return c.matches(role, header)
}

func (c *Classifier) matches(role types.Role, header string) bool {
	h := strings.TrimSpace(header)
	for _, re := range c.patterns[role] {
		if re.MatchString(h) {
			return true
		}
	}
	return false
}

func (c *Classifier) fallbackIdentifier(headers, invoiceCols []string) (string, bool) {
	for _, header := range headers {
		if !contains(invoiceCols, header) {
			return header, true
		}
	}
	return "", false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
