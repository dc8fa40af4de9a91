// =============================================================================
// Fraud Indicator Analyzer - Analysis Engine
// =============================================================================
//
// This module wires the engine together:
//
//   raw text -> csvparser -> Table -> classifier -> 5 detectors -> risk -> Result
//
// The engine performs no I/O and keeps no state between calls. An Analyzer
// holds only immutable configuration, so one instance can serve many
// goroutines.
//
// =============================================================================

package analysis

import (
	"sync"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/classifier"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/csvparser"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/detector"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/risk"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

// =============================================================================
// ANALYZER
// =============================================================================

// Analyzer runs the fraud detectors over parsed tables.
type Analyzer struct {
	classifier *classifier.Classifier
	detectors  []detector.Detector
	concurrent bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPatterns replaces the classifier's header patterns.
func WithPatterns(p classifier.Patterns) Option {
	return func(a *Analyzer) {
		a.classifier = classifier.New(p)
	}
}

// WithConcurrentDetectors runs the detectors in separate goroutines.
// Results are identical to sequential execution.
func WithConcurrentDetectors(enabled bool) Option {
	return func(a *Analyzer) {
		a.concurrent = enabled
	}
}

// New creates an Analyzer with the default patterns and all five detectors.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		classifier: classifier.New(nil),
		detectors:  detector.All(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs every detector over the table and assembles the result.
// A nil table is treated as empty.
func (a *Analyzer) Analyze(table *types.Table) types.Result {
	if table == nil {
		table = &types.Table{}
	}

	cols := a.classifier.Classify(table.Headers)

	var findings []types.Finding
	if a.concurrent {
		findings = a.detectConcurrently(table, cols)
	} else {
		findings = make([]types.Finding, len(a.detectors))
		for i, d := range a.detectors {
			findings[i] = d.Detect(table.Headers, table.Rows, cols)
		}
	}

	return assemble(findings, table.RowCount())
}

// detectConcurrently runs each detector in its own goroutine. Each writes
// only its own slot, so the fixed order is preserved.
func (a *Analyzer) detectConcurrently(table *types.Table, cols classifier.Columns) []types.Finding {
	findings := make([]types.Finding, len(a.detectors))

	var wg sync.WaitGroup
	for i, d := range a.detectors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			findings[i] = d.Detect(table.Headers, table.Rows, cols)
		}()
	}
	wg.Wait()

	return findings
}

// =============================================================================
// RESULT ASSEMBLY
// =============================================================================

// assemble packages findings and totals into a Result.
func assemble(findings []types.Finding, totalRows int) types.Result {
	total := 0
	for _, f := range findings {
		total += f.Count
	}

	score, level, color := risk.Aggregate(findings)

	return types.Result{
		Indicators:      findings,
		TotalIndicators: total,
		RiskScore:       score,
		RiskLevel:       level,
		RiskColor:       color,
		TotalRows:       totalRows,
	}
}

// =============================================================================
// PACKAGE-LEVEL ENTRY POINTS
// =============================================================================

var defaultAnalyzer = New()

// ParseCSV parses raw CSV text into a Table.
func ParseCSV(rawText string) *types.Table {
	return csvparser.Parse(rawText)
}

// AnalyzeFraudIndicators analyses a table with the default configuration.
func AnalyzeFraudIndicators(table *types.Table) types.Result {
	return defaultAnalyzer.Analyze(table)
}

// AnalyzeText parses and analyses CSV text in one call.
func AnalyzeText(rawText string) types.Result {
	return AnalyzeFraudIndicators(ParseCSV(rawText))
}
