package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/analysis"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

const ledger = "id,amount\n1,100\n1,100\n2,250"

func sampleReport(t *testing.T) *Report {
	t.Helper()
	table := analysis.ParseCSV(ledger)
	return New("ledger.csv", table, analysis.AnalyzeFraudIndicators(table))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" XLSX ", FormatXLSX, false},
		{"Text", FormatText, false},
		{"xml", FormatXML, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	if FormatText.Extension() != ".txt" || FormatYAML.Extension() != ".yaml" {
		t.Errorf("unexpected extensions: %s %s", FormatText.Extension(), FormatYAML.Extension())
	}
}

func TestNew(t *testing.T) {
	rep := sampleReport(t)

	if _, err := uuid.Parse(rep.RunID); err != nil {
		t.Errorf("run id %q is not a UUID: %v", rep.RunID, err)
	}
	if rep.GeneratedAt.Location().String() != "UTC" {
		t.Errorf("generated_at should be UTC, got %v", rep.GeneratedAt.Location())
	}
	if other := sampleReport(t); other.RunID == rep.RunID {
		t.Error("run ids should be unique")
	}
}

func TestWrite_JSON(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		RunID  string       `json:"run_id"`
		Source string       `json:"source"`
		Result types.Result `json:"result"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.RunID != rep.RunID || decoded.Source != "ledger.csv" {
		t.Errorf("envelope mismatch: %+v", decoded)
	}
	if !reflect.DeepEqual(decoded.Result, rep.Result) {
		t.Errorf("result changed by encoding:\n%+v\n%+v", decoded.Result, rep.Result)
	}
	if strings.Contains(buf.String(), "headers") {
		t.Error("table should not be serialised")
	}
}

func TestWrite_YAML(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	result, ok := decoded["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing result section: %v", decoded)
	}
	if result["risk_score"] != 2.8 || result["risk_level"] != "Medium" {
		t.Errorf("unexpected result section: %v", result)
	}
}

func TestWrite_XML(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	if err := Write(&buf, FormatXML, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded xmlReport
	if err := xml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid XML: %v", err)
	}
	if decoded.RunID != rep.RunID || decoded.Risk.Score != 2.8 {
		t.Errorf("unexpected document: %+v", decoded)
	}
	if len(decoded.Indicators) != 5 || decoded.Indicators[0].Label != types.LabelDuplicateIDs {
		t.Fatalf("unexpected indicators: %+v", decoded.Indicators)
	}
	if !reflect.DeepEqual(decoded.Indicators[0].Rows, []int{0, 1}) {
		t.Errorf("flagged rows = %v", decoded.Indicators[0].Rows)
	}
}

func TestWrite_Text(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	if err := Write(&buf, FormatText, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Source:      ledger.csv",
		"Risk score:  2.80 / 10 (Medium, yellow)",
		"DuplicateIds",
		`"1" appears 2× in column "id"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_XLSX(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	if err := Write(&buf, FormatXLSX, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("invalid workbook: %v", err)
	}
	defer f.Close()

	wantSheets := []string{SummarySheet, types.LabelDuplicateIDs, types.LabelRoundNumbers}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, wantSheets) {
		t.Errorf("sheets = %v, want %v", got, wantSheets)
	}

	source, err := f.GetCellValue(SummarySheet, "B1")
	if err != nil || source != "ledger.csv" {
		t.Errorf("summary B1 = %q, %v", source, err)
	}

	rows, err := f.GetRows(types.LabelDuplicateIDs)
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	want := [][]string{
		{"Row", "id", "amount"},
		{"1", "1", "100"},
		{"2", "1", "100"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("flagged rows = %v, want %v", rows, want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("pdf"), sampleReport(t))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := WriteFile(path, FormatJSON, sampleReport(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("report file not written: %v", err)
	}

	bad := filepath.Join(dir, "report.pdf")
	if err := WriteFile(bad, Format("pdf"), sampleReport(t)); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Error("failed report file should be removed")
	}
}
