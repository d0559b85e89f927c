package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func monthsAgo(asOf time.Time, months float64) time.Time {
	return asOf.Add(-time.Duration(months * daysPerMonth * 24 * float64(time.Hour)))
}

func TestRecencyScoreBreakpoints(t *testing.T) {
	asOf := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		months float64
		want   float64
	}{
		{0, 1.0},
		{6, 0.875},
		{12, 0.75},
		{18, 0.625},
		{24, 0.5},
		{36, 0.25},
	}
	for _, tt := range tests {
		got := RecencyScore(monthsAgo(asOf, tt.months), asOf)
		assert.InDeltaf(t, tt.want, got, 0.005, "%.0f months old", tt.months)
	}

	// Past 36 months the decay is exponential, never linear to zero.
	old := RecencyScore(monthsAgo(asOf, 60), asOf)
	assert.Greater(t, old, 0.0)
	assert.Less(t, old, 0.25)

	// Future-dated fights carry full weight.
	assert.Equal(t, 1.0, RecencyScore(asOf.AddDate(0, 1, 0), asOf))
}

func TestRecencyScoreMonotonic(t *testing.T) {
	asOf := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	prev := 1.1
	for months := 0.0; months <= 72; months += 3 {
		score := RecencyScore(monthsAgo(asOf, months), asOf)
		assert.Lessf(t, score, prev, "score must decay at %.0f months", months)
		prev = score
	}
}

func TestRelevanceScoreBreakpoints(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		gapMonths float64
		want      float64
	}{
		{0, 1.0},
		{3, 0.875},
		{6, 0.75},
		{9, 0.625},
		{12, 0.5},
		{18, 0.375},
		{24, 0.25},
		{30, 0},
	}
	for _, tt := range tests {
		other := monthsAgo(base, tt.gapMonths)
		got := RelevanceScore(base, other)
		assert.InDeltaf(t, tt.want, got, 0.005, "%.0f month gap", tt.gapMonths)

		// Order of the two dates never matters.
		assert.Equal(t, got, RelevanceScore(other, base))
	}
}
