// =============================================================================
// Fraud Indicator Analyzer - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration from a
// single YAML file (config.yaml by default).
//
// CONFIGURATION SECTIONS:
//   1. Directories: where input exports are found and reports are written
//   2. Logging: log level and optional log file
//   3. Reports: output format and file naming
//   4. Processing: concurrency and error handling for batch runs
//   5. Classifier: optional overrides for the header patterns of each role
//
// A missing configuration file is not an error when the caller allows it;
// every setting has a default.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/classifier"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Supported report formats.
var reportFormats = []string{"text", "json", "yaml", "xml", "xlsx"}

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for exports by the process command.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives reports and summary logs.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives input files after successful analysis.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveInputs moves each input into InputArchiveDir once its report
	// is written. When false, inputs stay in InputDir.
	// Default: true
	ArchiveInputs *bool `yaml:"archive_inputs"`

	// ArchiveTimestampSubdirs files archived inputs under YYYY/MM/DD.
	// Default: false
	ArchiveTimestampSubdirs bool `yaml:"archive_timestamp_subdirs"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is appended to in addition to the console. "-" disables it.
	// Default: "./logs/fraudscan.log"
	LogFile string `yaml:"log_file"`

	// LogLevel is one of "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// ReportFormat is one of "text", "json", "yaml", "xml", "xlsx".
	// Default: "json"
	ReportFormat string `yaml:"report_format"`

	// ReportNameFormat is the report file name without extension.
	// Placeholders:
	//   {name}      - Input file name without extension
	//   {uuid}      - The analysis run ID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	// Default: "{name}_{timestamp}_{uuid}"
	ReportNameFormat string `yaml:"report_name_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// FilePatterns are glob patterns matched against names in InputDir.
	// Default: ["*.csv", "*.xlsx"]
	FilePatterns []string `yaml:"file_patterns"`

	// MaxConcurrency is the maximum number of files analysed at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError keeps a batch running after a file fails.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`

	// ConcurrentDetectors runs the five detectors of one analysis in
	// parallel. Results are identical either way.
	// Default: false
	ConcurrentDetectors bool `yaml:"concurrent_detectors"`

	// =========================================================================
	// CLASSIFIER SETTINGS
	// =========================================================================

	Classifier ClassifierConfig `yaml:"classifier"`
}

// ClassifierConfig overrides the header patterns used to assign roles.
type ClassifierConfig struct {
	// Patterns maps a role name (identifier, invoice, amount, date, source)
	// to case-insensitive regular expressions. Listed roles replace the
	// built-in patterns; unlisted roles keep them.
	//
	// Example:
	//   classifier:
	//     patterns:
	//       source: ["source", "entered by"]
	Patterns map[string][]string `yaml:"patterns"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - allowMissing: When true, a missing file yields the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string, allowMissing bool) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates configuration YAML.
func Parse(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.LogFile == "" {
		config.LogFile = "./logs/fraudscan.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.ReportFormat == "" {
		config.ReportFormat = "json"
	}
	if config.ReportNameFormat == "" {
		config.ReportNameFormat = "{name}_{timestamp}_{uuid}"
	}
	if len(config.FilePatterns) == 0 {
		config.FilePatterns = []string{"*.csv", "*.xlsx"}
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.ArchiveInputs == nil {
		archiveInputs := true
		config.ArchiveInputs = &archiveInputs
	}
	if config.ContinueOnError == nil {
		continueOnError := true
		config.ContinueOnError = &continueOnError
	}

	config.ReportFormat = strings.ToLower(config.ReportFormat)
	config.LogLevel = strings.ToLower(config.LogLevel)
}

// validateMainConfig checks values that defaults cannot repair.
func validateMainConfig(config *MainConfig) error {
	if config.MaxConcurrency < 1 {
		return fmt.Errorf("%w: max_concurrency must be at least 1, got %d", ErrInvalidConfig, config.MaxConcurrency)
	}

	if !contains(reportFormats, config.ReportFormat) {
		return fmt.Errorf("%w: report_format must be one of %s, got %q",
			ErrInvalidConfig, strings.Join(reportFormats, ", "), config.ReportFormat)
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, config.LogLevel)
	}

	if _, err := config.ClassifierPatterns(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ClassifierPatterns compiles the configured classifier patterns on top of
// the built-in ones.
func (c *MainConfig) ClassifierPatterns() (classifier.Patterns, error) {
	return classifier.Compile(c.Classifier.Patterns)
}

// LogFilePath returns the log file to open, or "" when file logging is off.
func (c *MainConfig) LogFilePath() string {
	if c.LogFile == "-" {
		return ""
	}
	return c.LogFile
}

// ShouldArchiveInputs reports the effective archive_inputs setting.
func (c *MainConfig) ShouldArchiveInputs() bool {
	return c.ArchiveInputs == nil || *c.ArchiveInputs
}

// ShouldContinueOnError reports the effective continue_on_error setting.
func (c *MainConfig) ShouldContinueOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
