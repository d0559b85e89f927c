// Package market converts betting prices, rates single-fight value and
// composes parlay recommendations from enriched fight predictions.
package market

import (
	"fmt"
	"math"
)

// ImpliedProbability converts American odds to the win probability the
// price encodes, in percentage points. +100 → 50, -150 → 60, +200 → 33.33.
func ImpliedProbability(american float64) float64 {
	if american > 0 {
		return 100 / (american + 100) * 100
	}
	abs := math.Abs(american)
	return abs / (abs + 100) * 100
}

// ImpliedProbabilityPtr is the nullable form used at the quote layer:
// absent odds stay absent, never defaulted to 0.
func ImpliedProbabilityPtr(american *float64) *float64 {
	if american == nil {
		return nil
	}
	p := ImpliedProbability(*american)
	return &p
}

// Edge is model confidence minus market-implied probability, both in
// percentage points.
func Edge(confidence, impliedProbability float64) float64 {
	return confidence - impliedProbability
}

// FormatAmerican renders American odds with an explicit sign
func FormatAmerican(odds float64) string {
	if odds > 0 {
		return fmt.Sprintf("+%.0f", odds)
	}
	return fmt.Sprintf("%.0f", odds)
}
