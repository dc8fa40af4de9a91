// =============================================================================
// Fraud Indicator Analyzer - Processor Module
// =============================================================================
//
// This module runs the analysis pipeline for files on disk. It is the only
// part of the application that touches the file system on behalf of the
// engine.
//
// PIPELINE (per file):
//   1. Load the file into a Table (CSV or XLSX, chosen by extension)
//   2. Run the five detectors and score the result
//   3. Wrap the result in a report envelope with a fresh run ID
//   4. Write the report to the output directory
//   5. Archive the input file
//
// CONCURRENCY:
//   ProcessAll analyses up to max_concurrency files at once. Each file gets
//   its own slot in the result slice, so results keep the input order.
//
// =============================================================================

package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/analysis"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/config"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/csvparser"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/report"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/xlsxparser"
	"github.com/ginjaninja78/fraud-indicator-analyzer/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// ReportFile is the path to the written report. Empty on failure or
	// in dry-run mode.
	ReportFile string

	// ArchivePath is where the input file was moved to.
	ArchivePath string

	// RunID identifies the report envelope.
	RunID string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Analysis is the engine result.
	Analysis types.Result

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	RowsAnalyzed    int
	IndicatorsFound int
	ProcessingTime  time.Duration
}

// =============================================================================
// PROCESSOR STRUCTURE
// =============================================================================

// Processor analyses files and writes their reports.
type Processor struct {
	cfg      *config.MainConfig
	analyzer *analysis.Analyzer
	files    *utils.FileManager
	format   report.Format
	logger   logrus.FieldLogger
	dryRun   bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithDryRun analyses files without writing reports or moving inputs.
func WithDryRun(enabled bool) Option {
	return func(p *Processor) {
		p.dryRun = enabled
	}
}

// WithFormat overrides the configured report format.
func WithFormat(format report.Format) Option {
	return func(p *Processor) {
		p.format = format
	}
}

// New creates a Processor from the application configuration.
//
// PARAMETERS:
//   - cfg: The validated main configuration.
//   - logger: Destination for progress logs.
//   - opts: Optional overrides.
//
// RETURNS:
//   - A ready Processor.
//   - An error if the classifier patterns or report format are invalid.
func New(cfg *config.MainConfig, logger logrus.FieldLogger, opts ...Option) (*Processor, error) {
	patterns, err := cfg.ClassifierPatterns()
	if err != nil {
		return nil, fmt.Errorf("failed to compile classifier patterns: %w", err)
	}

	format, err := report.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return nil, err
	}

	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	files.ArchiveOnSuccess = cfg.ShouldArchiveInputs()
	files.UseTimestampSubdirs = cfg.ArchiveTimestampSubdirs

	p := &Processor{
		cfg: cfg,
		analyzer: analysis.New(
			analysis.WithPatterns(patterns),
			analysis.WithConcurrentDetectors(cfg.ConcurrentDetectors),
		),
		files:  files,
		format: format,
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Analyzer returns the analyzer built from the configuration.
func (p *Processor) Analyzer() *analysis.Analyzer {
	return p.analyzer
}

// =============================================================================
// SINGLE FILE PROCESSING
// =============================================================================

// ProcessFile executes the pipeline for one file.
func (p *Processor) ProcessFile(ctx context.Context, path string) Result {
	startTime := time.Now()
	result := Result{FilePath: path}
	log := p.logger.WithField("file", filepath.Base(path))

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 1: LOAD TABLE
	// =========================================================================

	log.Debug("Loading file")

	table, err := LoadTable(path)
	if err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 2: ANALYZE
	// =========================================================================

	analysed := p.analyzer.Analyze(table)
	result.Analysis = analysed
	result.Stats.RowsAnalyzed = analysed.TotalRows
	result.Stats.IndicatorsFound = analysed.TotalIndicators

	log.WithFields(logrus.Fields{
		"rows":       analysed.TotalRows,
		"indicators": analysed.TotalIndicators,
		"score":      analysed.RiskScore,
		"level":      analysed.RiskLevel,
	}).Info("Analysis complete")

	// =========================================================================
	// STEP 3: BUILD REPORT
	// =========================================================================

	rep := report.New(filepath.Base(path), table, analysed)
	result.RunID = rep.RunID

	if p.dryRun {
		log.Debug("Dry run, skipping report and archive")
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	// =========================================================================
	// STEP 4: WRITE REPORT
	// =========================================================================

	fileName := utils.GenerateReportFileName(
		p.cfg.ReportNameFormat,
		map[string]string{"name": utils.BaseName(path), "uuid": rep.RunID},
		p.format.Extension(),
	)
	reportPath := filepath.Join(p.cfg.OutputDir, fileName)

	if err := report.WriteFile(reportPath, p.format, rep); err != nil {
		result.Error = fmt.Errorf("failed to write report: %w", err)
		return result
	}
	result.ReportFile = reportPath
	log.WithField("report", fileName).Info("Wrote report")

	// =========================================================================
	// STEP 5: ARCHIVE INPUT
	// =========================================================================

	archivePath, err := p.files.ArchiveInputFile(path)
	switch {
	case err != nil:
		// The report exists, so the file still counts as processed.
		log.WithError(err).Warn("Failed to archive input file")
	case archivePath != path:
		result.ArchivePath = archivePath
		log.WithField("archive", archivePath).Debug("Archived input file")
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// =============================================================================
// BATCH PROCESSING
// =============================================================================

// ErrBatchAborted is returned when a failure stops a batch early because
// continue_on_error is disabled.
var ErrBatchAborted = errors.New("batch aborted")

// ProcessAll processes files concurrently, bounded by max_concurrency.
//
// RETURNS:
//   - One Result per input file, in input order. Files that were never
//     started after an abort carry the cancellation error.
//   - ErrBatchAborted (wrapping the first failure) when continue_on_error
//     is false and a file failed.
func (p *Processor) ProcessAll(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxConcurrency)

	for i, path := range paths {
		g.Go(func() error {
			results[i] = p.ProcessFile(gctx, path)
			if !results[i].Success && !p.cfg.ShouldContinueOnError() {
				return fmt.Errorf("%w: %s: %w", ErrBatchAborted, filepath.Base(path), results[i].Error)
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// Run discovers the input files, processes them and writes a summary.
// Directories are created first unless this is a dry run.
//
// RETURNS:
//   - The processing summary.
//   - Per-file results.
//   - An error if directories or discovery fail, or the batch aborted.
func (p *Processor) Run(ctx context.Context) (utils.ProcessingSummary, []Result, error) {
	startTime := time.Now()

	// A dry run leaves the file system untouched.
	if !p.dryRun {
		if err := p.files.EnsureDirectories(); err != nil {
			return utils.ProcessingSummary{}, nil, err
		}
	}

	paths, err := p.files.DiscoverInputFiles(p.cfg.FilePatterns...)
	if err != nil {
		return utils.ProcessingSummary{}, nil, fmt.Errorf("failed to discover input files: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"files": len(paths),
		"dir":   p.cfg.InputDir,
	}).Info("Discovered input files")

	if len(paths) == 0 {
		return Summarize(startTime, time.Now(), nil), nil, nil
	}

	return p.RunFiles(ctx, startTime, paths)
}

// RunFiles processes an explicit list of files and writes a summary.
func (p *Processor) RunFiles(ctx context.Context, startTime time.Time, paths []string) (utils.ProcessingSummary, []Result, error) {
	results, batchErr := p.ProcessAll(ctx, paths)
	summary := Summarize(startTime, time.Now(), results)

	if !p.dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, p.cfg.OutputDir)
		if err != nil {
			p.logger.WithError(err).Warn("Failed to write processing summary")
		} else {
			p.logger.WithField("summary", summaryPath).Info("Wrote processing summary")
		}
	}

	return summary, results, batchErr
}

// Summarize folds per-file results into a processing summary.
func Summarize(start, end time.Time, results []Result) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		StartTime:  start,
		EndTime:    end,
		TotalFiles: len(results),
	}

	for _, r := range results {
		if r.Success {
			summary.SuccessfulFiles++
			summary.TotalRows += r.Stats.RowsAnalyzed
			summary.TotalIndicators += r.Stats.IndicatorsFound
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   r.FilePath,
				ReportFile:  r.ReportFile,
				ArchivePath: r.ArchivePath,
				RunID:       r.RunID,
				Rows:        r.Stats.RowsAnalyzed,
				Indicators:  r.Stats.IndicatorsFound,
				RiskScore:   r.Analysis.RiskScore,
				RiskLevel:   string(r.Analysis.RiskLevel),
				ProcessTime: r.Stats.ProcessingTime,
			})
			continue
		}

		summary.FailedFiles++
		msg := "not processed"
		if r.Error != nil {
			msg = r.Error.Error()
		}
		summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
			InputFile:    r.FilePath,
			ErrorMessage: msg,
		})
	}

	return summary
}

// =============================================================================
// INPUT LOADING
// =============================================================================

// LoadTable reads a CSV or XLSX file into a Table based on its extension.
// Anything that is not .xlsx or .xlsm is read as CSV text.
func LoadTable(path string) (*types.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		table, err := xlsxparser.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse workbook: %w", err)
		}
		return table, nil
	default:
		table, err := csvparser.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		return table, nil
	}
}
