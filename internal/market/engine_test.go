package market

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/octagon-edge/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestValueRating(t *testing.T) {
	tests := []struct {
		name       string
		edge       float64
		confidence float64
		expected   int
	}{
		{name: "Five star at both thresholds", edge: 20.0, confidence: 75.0, expected: 5},
		{name: "Four star just under edge cut", edge: 19.9, confidence: 75.0, expected: 4},
		{name: "Four star at threshold", edge: 15.0, confidence: 75.0, expected: 4},
		{name: "Three star confidence too low for four", edge: 18.0, confidence: 70.0, expected: 3},
		{name: "Three star at threshold", edge: 10.0, confidence: 65.0, expected: 3},
		{name: "Two star at threshold", edge: 5.0, confidence: 60.0, expected: 2},
		{name: "One star thin edge", edge: 4.9, confidence: 90.0, expected: 1},
		{name: "One star negative edge", edge: -8.0, confidence: 80.0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, valueRating(tt.edge, tt.confidence))
		})
	}
}

func TestBetSize(t *testing.T) {
	t.Run("No stake without positive edge", func(t *testing.T) {
		assert.Equal(t, 0.0, betSize(80, 0))
		assert.Equal(t, 0.0, betSize(80, -10))
	})

	t.Run("Large edge clips at the cap", func(t *testing.T) {
		// p=0.8, b=0.55: quarter Kelly is 10.9% before the cap
		assert.Equal(t, maxBetSize, betSize(80, 55))
	})

	t.Run("Small edge on a coin flip stakes nothing", func(t *testing.T) {
		// p=0.6, b=0.1: raw Kelly is deeply negative
		assert.Equal(t, 0.0, betSize(60, 10))
	})

	t.Run("Stake is always within bounds", func(t *testing.T) {
		for conf := 50.0; conf <= 95; conf += 5 {
			for edge := -5.0; edge <= 60; edge += 5 {
				size := betSize(conf, edge)
				assert.GreaterOrEqual(t, size, 0.0)
				assert.LessOrEqual(t, size, maxBetSize)
			}
		}
	})
}

func TestOpportunityRisk(t *testing.T) {
	score, level := opportunityRisk(20, 60, 200)
	assert.Equal(t, 5, score)
	assert.Equal(t, models.RiskHigh, level)

	score, level = opportunityRisk(10, 70, 100)
	assert.Equal(t, 0, score)
	assert.Equal(t, models.RiskLow, level)

	score, level = opportunityRisk(16, 70, -110)
	assert.Equal(t, 2, score)
	assert.Equal(t, models.RiskMedium, level)
}

func enriched(f1, f2, winner string, confidence float64, winnerOdds *float64) models.EnrichedFight {
	fight := models.EnrichedFight{
		Event:           "UFC 300",
		Fighter1:        f1,
		Fighter2:        f2,
		PredictedWinner: winner,
		Confidence:      confidence,
	}
	if winnerOdds != nil {
		fight.Odds = &models.FightOddsQuote{
			Bookmaker: "testbook",
			Fighter1:  f1,
			Fighter2:  f2,
		}
		fight.Odds.Fighter1Odds = winnerOdds
	}
	return fight
}

func TestComputeMarketAnalysis(t *testing.T) {
	engine := NewValueEngine(testLogger())

	evenMoney := 100.0
	favorite := -150.0
	fights := []models.EnrichedFight{
		enriched("Jon Jones", "Stipe Miocic", "Jon Jones", 55, &evenMoney),
		enriched("Islam Makhachev", "Dustin Poirier", "Islam Makhachev", 72, &favorite),
		enriched("Max Holloway", "Justin Gaethje", "Max Holloway", 70, nil),
	}

	report := engine.ComputeMarketAnalysis("UFC 300", "baseline-v1", fights)
	require.NotNil(t, report)

	assert.Equal(t, "UFC 300", report.Event)
	assert.Equal(t, "baseline-v1", report.Model)
	assert.Equal(t, 2, report.Metrics.FightsWithOdds)
	assert.Equal(t, 1, report.Metrics.FightsWithoutOdds)
	assert.Len(t, report.Opportunities, 2)

	// Edges: 55-50=5 and 72-60=12; only the second clears the value bar.
	assert.Equal(t, 1, report.Metrics.ValueOpportunities)
	assert.InDelta(t, 8.5, report.Metrics.AverageEdge, 0.01)
	assert.InDelta(t, 45.0, report.Metrics.MarketBalance, 0.01)
	assert.NotEmpty(t, report.Metrics.Sharpness)
	require.NotNil(t, report.Parlays)

	for _, o := range report.Opportunities {
		assert.GreaterOrEqual(t, o.Rating, 1)
		assert.LessOrEqual(t, o.Rating, 5)
		assert.GreaterOrEqual(t, o.BetSize, 0.0)
		assert.LessOrEqual(t, o.BetSize, 5.0)
		assert.NotEmpty(t, o.Analysis)
	}
}

func TestComputeMarketAnalysisQuoteNamesDifferInCase(t *testing.T) {
	engine := NewValueEngine(testLogger())

	// Feed corner names arrive in a different case than the prediction.
	winnerOdds := 120.0
	fight := models.EnrichedFight{
		Event:           "UFC 309",
		Fighter1:        "Jon Jones",
		Fighter2:        "Stipe Miocic",
		PredictedWinner: "Jon Jones",
		Confidence:      68,
		Odds: &models.FightOddsQuote{
			Bookmaker:    "testbook",
			Fighter1:     "JON JONES",
			Fighter2:     "STIPE MIOCIC",
			Fighter1Odds: &winnerOdds,
		},
	}

	report := engine.ComputeMarketAnalysis("UFC 309", "baseline-v1", []models.EnrichedFight{fight})
	require.NotNil(t, report)

	assert.Equal(t, 1, report.Metrics.FightsWithOdds)
	assert.Equal(t, 0, report.Metrics.FightsWithoutOdds)
	require.Len(t, report.Opportunities, 1)
	assert.Equal(t, 120.0, report.Opportunities[0].Odds)
}

func TestComputeMarketAnalysisNoFights(t *testing.T) {
	engine := NewValueEngine(testLogger())

	report := engine.ComputeMarketAnalysis("Empty Card", "baseline-v1", nil)
	require.NotNil(t, report)

	assert.Empty(t, report.Opportunities)
	assert.Equal(t, 0, report.Metrics.FightsWithOdds)
	assert.Equal(t, 100.0, report.Metrics.MarketEfficiency)
	assert.Equal(t, "High", report.Metrics.Sharpness)
	require.NotNil(t, report.Parlays)
	assert.Empty(t, report.Parlays.TwoLeg)
}

func TestAssessMarket(t *testing.T) {
	t.Run("Inefficient and unbalanced market scores high", func(t *testing.T) {
		metrics := models.MarketMetrics{MarketEfficiency: 60, MarketBalance: 20}
		assessment := AssessMarket(metrics, nil)
		assert.Equal(t, 5, assessment.Score)
		assert.Equal(t, models.RiskHigh, assessment.Level)
		assert.InDelta(t, 3.0, assessment.MaxSingleExposure, 0.001)
		assert.Len(t, assessment.Notes, 2)
	})

	t.Run("Efficient market scores low", func(t *testing.T) {
		metrics := models.MarketMetrics{MarketEfficiency: 95, MarketBalance: 3}
		assessment := AssessMarket(metrics, nil)
		assert.Equal(t, 0, assessment.Score)
		assert.Equal(t, models.RiskLow, assessment.Level)
		assert.InDelta(t, 4.75, assessment.MaxSingleExposure, 0.001)
	})

	t.Run("Parlay budget follows strong pick count", func(t *testing.T) {
		metrics := models.MarketMetrics{MarketEfficiency: 90}
		picks := []models.ValueOpportunity{
			{Rating: 5}, {Rating: 4}, {Rating: 3},
		}
		assessment := AssessMarket(metrics, picks)
		assert.InDelta(t, 1.0, assessment.ParlayAllocation, 0.001)

		picks = append(picks, models.ValueOpportunity{Rating: 4}, models.ValueOpportunity{Rating: 5}, models.ValueOpportunity{Rating: 4})
		assessment = AssessMarket(metrics, picks)
		assert.InDelta(t, baseParlayBudget, assessment.ParlayAllocation, 0.001)
	})
}
