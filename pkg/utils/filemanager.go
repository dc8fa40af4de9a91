// =============================================================================
// Fraud Indicator Analyzer - File Manager Utility
// =============================================================================
//
// This module provides the file handling around batch analysis:
//   - Creating the working directories
//   - Discovering input exports by glob pattern
//   - Moving analysed inputs to the archive directory
//   - Generating report file names
//   - Writing the processing summary for a batch run
//
// ARCHIVAL STRATEGY:
//   Input files are MOVED to the archive directory once their report has
//   been written, so the next run does not analyse them again. With
//   UseTimestampSubdirs the archive is split into YYYY/MM/DD folders.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for batch analysis.
type FileManager struct {
	// InputDir is scanned for ledger exports.
	InputDir string

	// OutputDir receives reports and summaries.
	OutputDir string

	// InputArchiveDir receives analysed inputs.
	InputArchiveDir string

	// ArchiveOnSuccess moves inputs after a successful analysis.
	// Default: true
	ArchiveOnSuccess bool

	// UseTimestampSubdirs archives into YYYY/MM/DD subdirectories.
	// Default: false
	UseTimestampSubdirs bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		InputArchiveDir:  inputArchiveDir,
		ArchiveOnSuccess: true,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for files matching any of
// the glob patterns.
//
// PARAMETERS:
//   - patterns: Glob patterns such as "*.csv". Empty means "*.csv".
//
// RETURNS:
//   - Sorted, de-duplicated file paths. Directories are skipped.
//   - An error if a pattern is malformed.
func (fm *FileManager) DiscoverInputFiles(patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"*.csv"}
	}

	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan input directory: %w", err)
		}

		for _, file := range matches {
			if seen[file] {
				continue
			}
			info, err := os.Stat(file)
			if err != nil || info.IsDir() {
				continue
			}
			seen[file] = true
			result = append(result, file)
		}
	}

	sort.Strings(result)
	return result, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an input file to the archive directory.
//
// PARAMETERS:
//   - filePath: The path to the file to archive.
//
// RETURNS:
//   - The path to the archived file.
//   - An error if archival fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := fm.getArchivePath(fm.InputArchiveDir, filePath)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Cross-device rename: copy then delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file.
func (fm *FileManager) getArchivePath(archiveDir, filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := time.Now()
		return filepath.Join(
			archiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(archiveDir, fileName)
}

// =============================================================================
// REPORT FILE NAMING
// =============================================================================

// GenerateReportFileName builds a report file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID unless params supplies one
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {name}      - Supplied through params
//   - params: Placeholder values; these override the built-in ones.
//   - ext: Extension to append when missing (e.g. ".json").
//
// EXAMPLE:
//   format: "{name}_{timestamp}_{uuid}"
//   params: {"name": "ledger"}
//   ext:    ".json"
//   output: "ledger_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.json"
func GenerateReportFileName(format string, params map[string]string, ext string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Path separators would escape the output directory.
	result = strings.NewReplacer("/", "_", "\\", "_").Replace(result)

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// BaseName returns the file name without directory and extension.
func BaseName(filePath string) string {
	name := filepath.Base(filePath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a batch run.
type ProcessingSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalRows       int
	TotalIndicators int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo describes a successfully analysed file.
type ProcessedFileInfo struct {
	InputFile   string
	ReportFile  string
	ArchivePath string
	RunID       string
	Rows        int
	Indicators  int
	RiskScore   float64
	RiskLevel   string
	ProcessTime time.Duration
}

// FailedFileInfo describes a file that could not be analysed.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// WriteSummaryLog writes a processing summary file to outputDir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	if err := WriteSummary(file, summary); err != nil {
		return "", err
	}

	return summaryPath, nil
}

// WriteSummary renders a processing summary to w.
func WriteSummary(w io.Writer, summary ProcessingSummary) error {
	writer := bufio.NewWriter(w)
	rule := strings.Repeat("=", 80) + "\n"
	thin := strings.Repeat("-", 80) + "\n"

	fmt.Fprintf(writer, "Fraud Indicator Analyzer - Processing Summary\n%s\n", rule)
	fmt.Fprintf(writer, "Run Information:\n")
	fmt.Fprintf(writer, "  Start Time:       %s\n", summary.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "  End Time:         %s\n", summary.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "  Duration:         %s\n\n", summary.EndTime.Sub(summary.StartTime))
	fmt.Fprintf(writer, "Statistics:\n")
	fmt.Fprintf(writer, "  Total Files:      %d\n", summary.TotalFiles)
	fmt.Fprintf(writer, "  Successful:       %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(writer, "  Failed:           %d\n", summary.FailedFiles)
	fmt.Fprintf(writer, "  Total Rows:       %d\n", summary.TotalRows)
	fmt.Fprintf(writer, "  Total Indicators: %d\n\n", summary.TotalIndicators)

	if len(summary.ProcessedFiles) > 0 {
		fmt.Fprintf(writer, "Analysed Files:\n%s", thin)
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(writer, "  Input:        %s\n", pf.InputFile)
			fmt.Fprintf(writer, "  Report:       %s\n", pf.ReportFile)
			fmt.Fprintf(writer, "  Run ID:       %s\n", pf.RunID)
			fmt.Fprintf(writer, "  Rows:         %d\n", pf.Rows)
			fmt.Fprintf(writer, "  Indicators:   %d\n", pf.Indicators)
			fmt.Fprintf(writer, "  Risk:         %.2f (%s)\n", pf.RiskScore, pf.RiskLevel)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", pf.ProcessTime)
		}
	}

	if len(summary.FailedFilesList) > 0 {
		fmt.Fprintf(writer, "Failed Files:\n%s", thin)
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	fmt.Fprintf(writer, "%sEnd of Summary\n", rule)

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush summary: %w", err)
	}
	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
