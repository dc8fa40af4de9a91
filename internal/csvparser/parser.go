// =============================================================================
// Fraud Indicator Analyzer - CSV Parser Module
// =============================================================================
//
// This module turns raw CSV text from arbitrary third-party exports into a
// header list and an ordered sequence of row maps. Malformed input never
// fails; it is parsed as well as possible.
//
// FEATURES:
//   - Double-quoted fields may contain commas and line breaks
//   - A doubled quote ("") inside a quoted field is a literal quote
//   - \n, \r\n and bare \r are all line terminators
//   - Lines that are blank after trimming are dropped
//   - Short rows are padded with "", long rows are truncated
//
// LIMITATIONS:
//   - Comma is the only delimiter (no sniffing)
//   - No encoding detection; input is assumed to be UTF-8 text
//   - Duplicate header names collide; the right-most column wins
//
// =============================================================================

package csvparser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

// utf8BOM is stripped from the start of files exported by spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse converts CSV text into a Table.
//
// PARAMETERS:
//   - text: The full decoded content of a CSV file.
//
// RETURNS:
//   - A Table. Empty or whitespace-only input yields a table with no headers
//     and no rows.
//
// PARSING PROCESS:
//  1. Split the text into logical lines, honouring quoted line breaks
//  2. Drop lines that are blank after trimming
//  3. The first remaining line is the header row
//  4. Every other line becomes a row map of header -> trimmed value
func Parse(text string) *types.Table {
	table := &types.Table{
		Headers: []string{},
		Rows:    []map[string]string{},
	}

	lines := splitLines(text)
	if len(lines) == 0 {
		return table
	}

	table.Headers = splitFields(lines[0])

	for _, line := range lines[1:] {
		table.Rows = append(table.Rows, buildRow(table.Headers, splitFields(line)))
	}

	return table
}

// ParseReader reads all of r and parses it as CSV text.
func ParseReader(r io.Reader) (*types.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return Parse(string(bytes.TrimPrefix(data, utf8BOM))), nil
}

// ParseFile reads a CSV file from disk and parses it.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//
// RETURNS:
//   - The parsed Table.
//   - An error only if the file cannot be read.
func ParseFile(filePath string) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// =============================================================================
// TOKENIZER
// =============================================================================

// splitLines breaks text into logical CSV lines. Line terminators inside a
// quoted field are kept as part of the line. Blank lines are dropped.
func splitLines(text string) []string {
	var (
		lines    []string
		current  strings.Builder
		inQuotes bool
	)

	flush := func() {
		line := current.String()
		current.Reset()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case c == '"':
			inQuotes = !inQuotes
			current.WriteByte(c)

		case (c == '\n' || c == '\r') && !inQuotes:
			// Treat \r\n as a single terminator.
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			flush()

		default:
			current.WriteByte(c)
		}
	}
	flush()

	return lines
}

// splitFields splits one logical line on commas that are outside quotes.
// Quotes are removed and each field is trimmed.
func splitFields(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			current.WriteByte('"')
			i++

		case c == '"':
			inQuotes = !inQuotes

		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()

		default:
			current.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// buildRow maps fields onto headers. Missing fields become "" and extra
// fields are dropped. With duplicate headers the later column wins.
func buildRow(headers, fields []string) map[string]string {
	row := make(map[string]string, len(headers))

	for i, header := range headers {
		if i < len(fields) {
			row[header] = fields[i]
		} else {
			row[header] = ""
		}
	}

	return row
}
