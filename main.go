// =============================================================================
// Fraud Indicator Analyzer - Main Entry Point
// =============================================================================
//
// USAGE:
//   fraudscan analyze FILE  - Analyse one CSV or XLSX export
//   fraudscan process       - Analyse every export in the input directory
//   fraudscan validate      - Validate the configuration
//   fraudscan version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Parsing, detection and scoring engine plus file pipeline
//   - pkg/utils/ : File management helpers
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/fraud-indicator-analyzer/cmd"
)

func main() {
	cmd.Execute()
}
