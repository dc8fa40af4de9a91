// Package risk combines detector findings into a bounded risk score and tier.
package risk

import (
	"math"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/types"
)

const (
	// MaxScore is the upper bound of a risk score.
	MaxScore = 10.0

	// HighThreshold and HighestThreshold are inclusive lower bounds.
	HighThreshold    = 3.0
	HighestThreshold = 6.0
)

// Aggregate computes the risk score, level and color for a set of findings.
//
// The average weight is taken over active findings only (Count > 0), while
// the total count is summed over all findings. The product is clamped to
// [0, MaxScore] and rounded to two decimals. No active findings scores 0.
func Aggregate(findings []types.Finding) (float64, types.RiskLevel, types.RiskColor) {
	var (
		activeWeight float64
		activeCount  int
		totalCount   int
	)

	for _, f := range findings {
		totalCount += f.Count
		if f.Active() {
			activeWeight += f.Weight
			activeCount++
		}
	}

	score := 0.0
	if activeCount > 0 {
		avgWeight := activeWeight / float64(activeCount)
		score = round2(clamp(avgWeight*float64(totalCount), 0, MaxScore))
	}

	level, color := Tier(score)
	return score, level, color
}

// Tier maps a score to its risk level and display color.
func Tier(score float64) (types.RiskLevel, types.RiskColor) {
	switch {
	case score >= HighestThreshold:
		return types.RiskHighest, types.ColorRed
	case score >= HighThreshold:
		return types.RiskHigh, types.ColorOrange
	default:
		return types.RiskMedium, types.ColorYellow
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
