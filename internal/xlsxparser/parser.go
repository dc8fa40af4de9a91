// =============================================================================
// Fraud Indicator Analyzer - XLSX Input Parser
// =============================================================================
//
// This module reads ledger exports saved as Excel workbooks. A sheet is
// turned into the same Table the CSV parser produces, so both input types
// go through the same analysis.
//
// SHEET LAYOUT:
//   | Column A       | Column B | Column C   | ...
//   |----------------|----------|------------|
//   | Transaction ID | Amount   | Date       |   <- first non-blank row = headers
//   | TX-001         | 100      | 2024-01-06 |
//   | TX-002         | 45.10    | 2024-01-08 |
//
// RULES (identical to the CSV parser):
//   - Rows whose cells are all blank are skipped
//   - Headers and cells are trimmed
//   - Short rows are padded with "", long rows are truncated
//   - Duplicate headers collide, the rightmost value wins
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned for a workbook without any worksheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// ErrSheetNotFound is returned when a named sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads the first sheet of an XLSX file into a Table.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//
// RETURNS:
//   - The parsed Table.
//   - An error if the workbook cannot be opened or has no sheets.
func ParseFile(filePath string) (*types.Table, error) {
	return ParseFileSheet(filePath, "")
}

// ParseFileSheet reads the named sheet of an XLSX file. An empty sheet name
// selects the first sheet.
func ParseFileSheet(filePath, sheet string) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f, sheet)
}

// ParseReader reads the named sheet of a workbook streamed from r, such as
// standard input. An empty sheet name selects the first sheet.
func ParseReader(r io.Reader, sheet string) (*types.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f, sheet)
}

// parseWorkbook resolves the sheet and converts its rows.
func parseWorkbook(f *excelize.File, sheet string) (*types.Table, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, ErrNoSheets
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return FromRows(rows), nil
}

// FromRows converts raw sheet rows into a Table.
func FromRows(rows [][]string) *types.Table {
	table := &types.Table{
		Headers: []string{},
		Rows:    []map[string]string{},
	}

	headerFound := false
	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		cells := trimCells(row)

		if !headerFound {
			table.Headers = cells
			headerFound = true
			continue
		}

		record := make(map[string]string, len(table.Headers))
		for i, header := range table.Headers {
			if i < len(cells) {
				record[header] = cells[i]
			} else {
				record[header] = ""
			}
		}
		table.Rows = append(table.Rows, record)
	}

	return table
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
