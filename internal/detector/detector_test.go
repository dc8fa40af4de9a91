package detector

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/classifier"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/csvparser"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

// detect parses csv text, classifies it with the default patterns and runs d.
func detect(t *testing.T, d Detector, text string) types.Finding {
	t.Helper()
	table := csvparser.Parse(text)
	cols := classifier.New(nil).Classify(table.Headers)
	return d.Detect(table.Headers, table.Rows, cols)
}

func assertRows(t *testing.T, f types.Finding, want []int) {
	t.Helper()
	if f.Count != len(want) {
		t.Errorf("%s: count = %d, want %d", f.Label, f.Count, len(want))
	}
	if len(want) == 0 && len(f.FlaggedRows) == 0 {
		return
	}
	if !reflect.DeepEqual(f.FlaggedRows, want) {
		t.Errorf("%s: flagged rows = %v, want %v", f.Label, f.FlaggedRows, want)
	}
}

func TestAll_Order(t *testing.T) {
	var labels []string
	for _, d := range All() {
		labels = append(labels, d.Label())
	}
	if !reflect.DeepEqual(labels, types.IndicatorOrder) {
		t.Errorf("detector order = %v, want %v", labels, types.IndicatorOrder)
	}
}

// ----------------------------------------------------------------------------
// Duplicate IDs / Invoices
// ----------------------------------------------------------------------------

func TestDuplicateIDs(t *testing.T) {
	f := detect(t, NewDuplicateIDs(), "id,amount\n1,100\n1,100\n2,250")

	assertRows(t, f, []int{0, 1})
	if f.Weight != WeightDuplicateIDs {
		t.Errorf("weight = %v, want %v", f.Weight, WeightDuplicateIDs)
	}
	if len(f.Details) != 1 || f.Details[0] != `"1" appears 2× in column "id"` {
		t.Errorf("unexpected details: %v", f.Details)
	}
}

func TestDuplicateIDs_CaseAndWhitespace(t *testing.T) {
	f := detect(t, NewDuplicateIDs(), "Record ID,name\nAB-1,x\n ab-1 ,y\n,z\n,w\nAB-2,v")

	// Blank ids are not duplicates of each other.
	assertRows(t, f, []int{0, 1})
}

func TestDuplicateIDs_MultipleColumnsDeduplicateRows(t *testing.T) {
	f := detect(t, NewDuplicateIDs(), "id,key\n1,a\n1,a\n2,b")

	assertRows(t, f, []int{0, 1})
	if len(f.Details) != 2 {
		t.Errorf("expected one detail per column, got %v", f.Details)
	}
}

func TestDuplicateInvoices(t *testing.T) {
	f := detect(t, NewDuplicateInvoices(), "invoice\nINV-1\nINV-1\nINV-2")

	assertRows(t, f, []int{0, 1})
	if f.Weight != WeightDuplicateInvoices {
		t.Errorf("weight = %v, want %v", f.Weight, WeightDuplicateInvoices)
	}
}

func TestDuplicateInvoices_NoInvoiceColumn(t *testing.T) {
	f := detect(t, NewDuplicateInvoices(), "id,amount\n1,1\n1,1")

	assertRows(t, f, nil)
	if f.Details == nil {
		t.Error("details should be an empty slice, not nil")
	}
}

// ----------------------------------------------------------------------------
// Manual Entries
// ----------------------------------------------------------------------------

func TestManualEntries(t *testing.T) {
	text := strings.Join([]string{
		"id,source,note",
		"1,import,",            // clean
		"2,,",                  // blank source
		"3,Hand-keyed,",        // keyword in source
		"4,import,manual fix",  // manual word elsewhere
		"5,import,manually",    // not a whole word
		"6,TYPED,Manual",       // both triggers, flagged once
		"7,import,see MANUAL.", // word boundary at punctuation
	}, "\n")

	f := detect(t, NewManualEntries(), text)

	assertRows(t, f, []int{1, 2, 3, 5, 6})
	if !strings.Contains(f.Details[0], "Row 2") {
		t.Errorf("details should use 1-based rows, got %q", f.Details[0])
	}
}

func TestManualEntries_NoSourceColumn(t *testing.T) {
	f := detect(t, NewManualEntries(), "id,amount\n1,10\n2,20")

	assertRows(t, f, nil)
}

// ----------------------------------------------------------------------------
// Round Numbers
// ----------------------------------------------------------------------------

func TestRoundNumbers(t *testing.T) {
	text := "id,debit,credit\n1,100,\n2,$1,200.00,0\n3,99.99,0\n4,-300,500\n5,N/A,abc\n6,0,0"

	f := detect(t, NewRoundNumbers(), text)

	// Row 2 is split by the unquoted thousands comma: debit="$1", credit="200.00".
	assertRows(t, f, []int{0, 1, 3})

	// Row 4 matches in both columns: two details, one flagged row.
	var row4 int
	for _, d := range f.Details {
		if strings.HasPrefix(d, "Row 4:") {
			row4++
		}
	}
	if row4 != 2 {
		t.Errorf("expected 2 details for row 4, got %d in %v", row4, f.Details)
	}
}

func TestRoundNumbers_QuotedThousands(t *testing.T) {
	f := detect(t, NewRoundNumbers(), "amount\n\"$1,200.00\"\n\"1,250\"")

	assertRows(t, f, []int{0})
}

// ----------------------------------------------------------------------------
// Weekend Dates
// ----------------------------------------------------------------------------

func TestWeekendDates(t *testing.T) {
	text := "id,date\n1,2024-01-06\n2,2024-01-07\n3,2024-01-08\n4,\n5,someday"

	f := detect(t, NewWeekendDates(), text)

	assertRows(t, f, []int{0, 1})
	if !strings.Contains(f.Details[0], "Saturday") {
		t.Errorf("expected Saturday in detail, got %q", f.Details[0])
	}
	if !strings.Contains(f.Details[1], "Sunday") {
		t.Errorf("expected Sunday in detail, got %q", f.Details[1])
	}
}

// ----------------------------------------------------------------------------
// Details cap
// ----------------------------------------------------------------------------

func TestDetailsCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,amount\n")
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "%d,%d\n", i, (i+1)*100)
	}

	f := detect(t, NewRoundNumbers(), b.String())

	if f.Count != 40 || len(f.FlaggedRows) != 40 {
		t.Errorf("count should stay exact, got %d", f.Count)
	}
	if len(f.Details) != MaxDetails {
		t.Errorf("details = %d, want %d", len(f.Details), MaxDetails)
	}
}

func TestDetect_EmptyTable(t *testing.T) {
	for _, d := range All() {
		f := d.Detect(nil, nil, classifier.Columns{})
		if f.Count != 0 || len(f.FlaggedRows) != 0 || len(f.Details) != 0 {
			t.Errorf("%s: expected empty finding, got %+v", d.Label(), f)
		}
		if f.Label != d.Label() || f.Weight != d.Weight() {
			t.Errorf("%s: label/weight not set: %+v", d.Label(), f)
		}
	}
}
