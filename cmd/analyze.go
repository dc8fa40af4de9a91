// =============================================================================
// Fraud Indicator Analyzer - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, which analyses a single file and
// prints or writes its report.
//
// COMMAND USAGE:
//   fraudscan analyze FILE [flags]
//   fraudscan analyze - < ledger.csv
//   fraudscan analyze - --sheet Ledger < ledger.xlsx
//
// FLAGS:
//   --format : Report format (text, json, yaml, xml, xlsx). Default: text
//   --output : Write the report to this path instead of stdout
//   --sheet  : Worksheet to read from an XLSX input (default: first sheet).
//              With "-", stdin is read as a workbook instead of CSV text.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/csvparser"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/processor"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/report"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/xlsxparser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	analyzeFormat string
	analyzeOutput string
	analyzeSheet  string
)

// errXLSXStdout guards against writing binary workbooks to a terminal.
var errXLSXStdout = errors.New("xlsx reports need --output")

// =============================================================================
// ANALYZE COMMAND DEFINITION
// =============================================================================

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Analyse one CSV or XLSX file for fraud indicators",
	Long: `The analyze command reads a single CSV or XLSX file (or CSV text from stdin
when FILE is "-"), runs the fraud detectors and prints a report. With
--sheet, stdin is read as an XLSX workbook.

Header patterns and detector concurrency come from the configuration file;
the input file is never moved.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "Report format: text, json, yaml, xml or xlsx")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the report to this file instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeSheet, "sheet", "", "Worksheet to read from an XLSX file")
}

// =============================================================================
// MAIN FUNCTION
// =============================================================================

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}
	if format == report.FormatXLSX && analyzeOutput == "" {
		return errXLSXStdout
	}

	cfg, logger, cleanup, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// =========================================================================
	// STEP 1: BUILD ANALYZER
	// =========================================================================

	proc, err := processor.New(cfg, logger, processor.WithFormat(format))
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: LOAD INPUT
	// =========================================================================

	source := args[0]
	table, err := loadInput(cmd, source)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: ANALYZE
	// =========================================================================

	result := proc.Analyzer().Analyze(table)

	logger.WithFields(logrus.Fields{
		"file":  filepath.Base(source),
		"rows":  result.TotalRows,
		"score": result.RiskScore,
		"level": result.RiskLevel,
	}).Debug("Analysis complete")

	// =========================================================================
	// STEP 4: WRITE REPORT
	// =========================================================================

	rep := report.New(filepath.Base(source), table, result)

	if analyzeOutput == "" {
		return report.Write(cmd.OutOrStdout(), format, rep)
	}

	if err := report.WriteFile(analyzeOutput, format, rep); err != nil {
		return err
	}
	logger.WithField("report", analyzeOutput).Info("Wrote report")
	return nil
}

// loadInput reads a file, a named worksheet, or stdin.
func loadInput(cmd *cobra.Command, source string) (*types.Table, error) {
	if source == "-" {
		if analyzeSheet != "" {
			table, err := xlsxparser.ParseReader(cmd.InOrStdin(), analyzeSheet)
			if err != nil {
				return nil, fmt.Errorf("failed to parse workbook from stdin: %w", err)
			}
			return table, nil
		}
		return csvparser.ParseReader(cmd.InOrStdin())
	}

	ext := strings.ToLower(filepath.Ext(source))
	if analyzeSheet != "" && (ext == ".xlsx" || ext == ".xlsm") {
		table, err := xlsxparser.ParseFileSheet(source, analyzeSheet)
		if err != nil {
			return nil, fmt.Errorf("failed to parse workbook: %w", err)
		}
		return table, nil
	}

	return processor.LoadTable(source)
}
