package csvparser

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// Parse Tests
// ----------------------------------------------------------------------------

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n", "\r\n  \r\n", "\t\r"} {
		table := Parse(input)
		if len(table.Headers) != 0 {
			t.Errorf("Parse(%q): expected no headers, got %v", input, table.Headers)
		}
		if len(table.Rows) != 0 {
			t.Errorf("Parse(%q): expected no rows, got %d", input, len(table.Rows))
		}
	}
}

func TestParse_Basic(t *testing.T) {
	table := Parse("id,amount\n1,100\n1,100\n2,250")

	if !reflect.DeepEqual(table.Headers, []string{"id", "amount"}) {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	if table.Rows[2]["id"] != "2" || table.Rows[2]["amount"] != "250" {
		t.Errorf("unexpected last row: %v", table.Rows[2])
	}
}

func TestParse_QuotedComma(t *testing.T) {
	table := Parse("id,note\n1,\"hello, world\"")

	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if got := table.Rows[0]["note"]; got != "hello, world" {
		t.Errorf("expected note %q, got %q", "hello, world", got)
	}
}

func TestParse_QuotedNewlineAndEscapedQuote(t *testing.T) {
	table := Parse("id,note\n1,\"line one\nline two\"\n2,\"say \"\"hi\"\"\"")

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if got := table.Rows[0]["note"]; got != "line one\nline two" {
		t.Errorf("expected embedded newline, got %q", got)
	}
	if got := table.Rows[1]["note"]; got != `say "hi"` {
		t.Errorf("expected escaped quotes, got %q", got)
	}
}

func TestParse_LineTerminators(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unix", "a,b\n1,2\n3,4\n"},
		{"windows", "a,b\r\n1,2\r\n3,4\r\n"},
		{"old mac", "a,b\r1,2\r3,4\r"},
		{"mixed with blanks", "a,b\r\n\n1,2\r\r  \n3,4\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Parse(tt.input)
			if len(table.Rows) != 2 {
				t.Fatalf("expected 2 rows, got %d", len(table.Rows))
			}
			if table.Rows[0]["a"] != "1" || table.Rows[1]["b"] != "4" {
				t.Errorf("unexpected rows: %v", table.Rows)
			}
		})
	}
}

func TestParse_PaddingAndTruncation(t *testing.T) {
	table := Parse(" a , b ,c\n1\n1,2,3,4,5")

	if !reflect.DeepEqual(table.Headers, []string{"a", "b", "c"}) {
		t.Fatalf("headers should be trimmed, got %v", table.Headers)
	}

	short := table.Rows[0]
	if len(short) != 3 || short["b"] != "" || short["c"] != "" {
		t.Errorf("short row should be padded, got %v", short)
	}

	long := table.Rows[1]
	if len(long) != 3 || long["c"] != "3" {
		t.Errorf("long row should be truncated, got %v", long)
	}
}

func TestParse_DuplicateHeadersLastWins(t *testing.T) {
	table := Parse("id,id\n1,2")

	if len(table.Headers) != 2 {
		t.Fatalf("duplicate headers should be kept, got %v", table.Headers)
	}
	if got := table.Rows[0]["id"]; got != "2" {
		t.Errorf("expected last value to win, got %q", got)
	}
}

func TestParse_FieldsTrimmed(t *testing.T) {
	table := Parse("name,city\n  Ada  , \" London \" ")

	if got := table.Rows[0]["name"]; got != "Ada" {
		t.Errorf("expected trimmed name, got %q", got)
	}
	if got := table.Rows[0]["city"]; got != "London" {
		t.Errorf("expected trimmed quoted city, got %q", got)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	table := Parse("id,amount\n")

	if len(table.Headers) != 2 {
		t.Errorf("expected 2 headers, got %v", table.Headers)
	}
	if len(table.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(table.Rows))
	}
}

func TestParse_UnterminatedQuoteDoesNotPanic(t *testing.T) {
	table := Parse("id,note\n1,\"never closed\n2,x")

	if len(table.Rows) != 1 {
		t.Fatalf("expected the unterminated quote to swallow the rest, got %d rows", len(table.Rows))
	}
}

// ----------------------------------------------------------------------------
// ParseFile Tests
// ----------------------------------------------------------------------------

func TestParseFile_StripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	content := "\xEF\xBB\xBFid,amount\n7,300\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	table, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Headers[0] != "id" {
		t.Errorf("BOM should be stripped from first header, got %q", table.Headers[0])
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to open file") {
		t.Errorf("unexpected error message: %v", err)
	}
}
