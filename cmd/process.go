// =============================================================================
// Fraud Indicator Analyzer - Process Command
// =============================================================================
//
// This file defines the 'process' command, which analyses every export in
// the input directory.
//
// COMMAND USAGE:
//   fraudscan process [flags]
//
// FLAGS:
//   --dry-run : Analyse without writing reports or moving input files
//   --single  : Process only a single file (specify with --file)
//   --file    : Path to a specific file to process (used with --single)
//   --format  : Override report_format from the configuration
//
// PROCESSING PIPELINE:
//   1. Load configuration and set up logging
//   2. Discover input files matching file_patterns in input_dir
//   3. For each file (concurrently, up to max_concurrency):
//      a. Parse the CSV or XLSX file
//      b. Run the fraud detectors and score the result
//      c. Write the report to output_dir
//      d. Move the input to input_archive_dir
//   4. Write the processing summary
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/processor"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/report"
	"github.com/ginjaninja78/fraud-indicator-analyzer/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun analyses without writing reports or moving inputs.
var dryRun bool

// singleFile indicates whether to process only a single file.
var singleFile bool

// filePath is the path to a specific file to process (used with --single).
var filePath string

// processFormat overrides the configured report format.
var processFormat string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Analyse every CSV and XLSX export in the input directory",
	Long: `The process command scans the input directory for exports matching
file_patterns and analyses them concurrently.

On success:
  - A report is written to the output directory
  - The input file is moved to the input archive

On error:
  - The input file stays in the input directory
  - The failure is listed in the processing summary
  - Other files continue unless continue_on_error is false`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Analyse without writing reports or moving files")
	processCmd.Flags().BoolVar(&singleFile, "single", false, "Process only a single file (use with --file)")
	processCmd.Flags().StringVar(&filePath, "file", "", "Path to a specific file to process (used with --single)")
	processCmd.Flags().StringVar(&processFormat, "format", "", "Override the configured report format")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()

	if singleFile && filePath == "" {
		return errors.New("--single requires --file")
	}

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, logger, cleanup, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := []processor.Option{processor.WithDryRun(dryRun)}
	if processFormat != "" {
		format, err := report.ParseFormat(processFormat)
		if err != nil {
			return err
		}
		opts = append(opts, processor.WithFormat(format))
	}

	proc, err := processor.New(cfg, logger, opts...)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: PROCESS FILES
	// =========================================================================

	var (
		summary utils.ProcessingSummary
		results []processor.Result
	)

	if singleFile {
		if !utils.FileExists(filePath) {
			return fmt.Errorf("input file not found: %s", filePath)
		}
		if !dryRun {
			if err := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir).EnsureDirectories(); err != nil {
				return err
			}
		}
		summary, results, err = proc.RunFiles(cmd.Context(), startTime, []string{filePath})
	} else {
		summary, results, err = proc.Run(cmd.Context())
	}

	// =========================================================================
	// STEP 3: PRINT SUMMARY
	// =========================================================================

	out := cmd.OutOrStdout()

	if len(results) == 0 && err == nil {
		fmt.Fprintln(out, "No input files found.")
		return nil
	}

	for _, r := range results {
		name := filepath.Base(r.FilePath)
		switch {
		case r.Success && r.ReportFile != "":
			fmt.Fprintf(out, "  ✓ %s -> %s (score %.2f, %s)\n", name, filepath.Base(r.ReportFile), r.Analysis.RiskScore, r.Analysis.RiskLevel)
		case r.Success:
			fmt.Fprintf(out, "  ✓ %s (score %.2f, %s, dry run)\n", name, r.Analysis.RiskScore, r.Analysis.RiskLevel)
		default:
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, r.Error)
		}
	}

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Failed:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Time elapsed:    %s\n", time.Since(startTime).Round(time.Millisecond))

	return err
}
