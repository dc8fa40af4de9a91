package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
	"github.com/xuri/excelize/v2"
)

// SummarySheet is the name of the first sheet of an XLSX report.
const SummarySheet = "Summary"

// Fill colours for the risk score cell.
var riskFills = map[types.RiskColor]string{
	types.ColorYellow: "FFFF00",
	types.ColorOrange: "FFA500",
	types.ColorRed:    "FF0000",
}

// writeXLSX renders the report as a workbook.
//
// WORKBOOK LAYOUT:
//   - Summary: envelope fields, risk score, then one line per indicator
//   - <Label>: one sheet per active indicator listing the flagged rows
//     (1-based row number followed by every column of the input)
func writeXLSX(w io.Writer, rep *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	// =========================================================================
	// SUMMARY SHEET
	// =========================================================================

	r := rep.Result
	summary := [][]interface{}{
		{"Source", rep.Source},
		{"Run ID", rep.RunID},
		{"Generated", rep.GeneratedAt.Format(time.RFC3339)},
		{"Rows", r.TotalRows},
		{"Risk score", r.RiskScore},
		{"Risk level", string(r.RiskLevel)},
		{"Total indicators", r.TotalIndicators},
		{},
		{"Indicator", "Count", "Weight", "Details"},
	}
	for _, ind := range r.Indicators {
		summary = append(summary, []interface{}{ind.Label, ind.Count, ind.Weight, strings.Join(ind.Details, "\n")})
	}

	if err := writeRows(f, SummarySheet, summary); err != nil {
		return err
	}

	if err := f.SetCellStyle(SummarySheet, "A1", "A7", bold); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	if err := f.SetCellStyle(SummarySheet, "A9", "D9", bold); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	if fill, ok := riskFills[r.RiskColor]; ok {
		style, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		})
		if err != nil {
			return fmt.Errorf("failed to create style: %w", err)
		}
		if err := f.SetCellStyle(SummarySheet, "B5", "B6", style); err != nil {
			return fmt.Errorf("failed to style summary: %w", err)
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 20); err != nil {
		return fmt.Errorf("failed to size summary: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "D", "D", 60); err != nil {
		return fmt.Errorf("failed to size summary: %w", err)
	}

	// =========================================================================
	// FLAGGED ROW SHEETS
	// =========================================================================

	if rep.Table != nil {
		for _, ind := range r.Indicators {
			if !ind.Active() {
				continue
			}
			if err := writeFlaggedSheet(f, ind, rep.Table, bold); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write XLSX report: %w", err)
	}
	return nil
}

// writeFlaggedSheet adds a sheet named after the indicator.
func writeFlaggedSheet(f *excelize.File, ind types.Finding, table *types.Table, headerStyle int) error {
	if _, err := f.NewSheet(ind.Label); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", ind.Label, err)
	}

	header := []interface{}{"Row"}
	for _, h := range table.Headers {
		header = append(header, h)
	}
	rows := [][]interface{}{header}

	for _, idx := range ind.FlaggedRows {
		if idx < 0 || idx >= len(table.Rows) {
			continue
		}
		line := []interface{}{idx + 1}
		for _, h := range table.Headers {
			line = append(line, table.Rows[idx][h])
		}
		rows = append(rows, line)
	}

	if err := writeRows(f, ind.Label, rows); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to style sheet %s: %w", ind.Label, err)
	}
	if err := f.SetCellStyle(ind.Label, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style sheet %s: %w", ind.Label, err)
	}
	return nil
}

// writeRows writes rows starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
