package market

import (
	"github.com/yourusername/octagon-edge/internal/models"
)

const (
	baseSingleExposure = 5.0 // % of bankroll at full market efficiency
	baseParlayBudget   = 2.0 // % of bankroll across all parlay plays
)

// AssessMarket scores market-level risk and derives exposure guidance.
// Inefficient or lopsided markets push the score up; exposure limits are
// linear in efficiency and in the count of well-rated opportunities.
func AssessMarket(metrics models.MarketMetrics, opportunities []models.ValueOpportunity) models.RiskAssessment {
	assessment := models.RiskAssessment{Notes: []string{}}

	if metrics.MarketEfficiency < 70 {
		assessment.Score += 3
		assessment.Notes = append(assessment.Notes, "Market pricing diverges heavily from the model")
	}
	if metrics.MarketBalance > 15 {
		assessment.Score += 2
		assessment.Notes = append(assessment.Notes, "Implied probabilities are unbalanced across the card")
	}

	switch {
	case assessment.Score >= 4:
		assessment.Level = models.RiskHigh
	case assessment.Score >= 2:
		assessment.Level = models.RiskModerate
	default:
		assessment.Level = models.RiskLow
	}

	// Single-bet exposure scales down linearly with lost efficiency.
	efficiency := metrics.MarketEfficiency
	if efficiency < 0 {
		efficiency = 0
	}
	assessment.MaxSingleExposure = baseSingleExposure * efficiency / 100

	// Parlay budget grows with the number of 4+ star picks, capped at the
	// base budget.
	strong := 0
	for _, o := range opportunities {
		if o.Rating >= 4 {
			strong++
		}
	}
	allocation := 0.5 * float64(strong)
	if allocation > baseParlayBudget {
		allocation = baseParlayBudget
	}
	assessment.ParlayAllocation = allocation

	return assessment
}
