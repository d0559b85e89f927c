package market

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/octagon-edge/internal/models"
)

const (
	kellyFraction = 0.25
	maxBetSize    = 5.0 // % of bankroll
)

// ValueEngine computes per-fight value opportunities and market-wide
// aggregate metrics. Side-effect free; the same input always yields the
// same report.
type ValueEngine struct {
	composer *Composer
	logger   *logrus.Logger
}

// NewValueEngine creates a value engine with its parlay composer
func NewValueEngine(logger *logrus.Logger) *ValueEngine {
	return &ValueEngine{
		composer: NewComposer(logger),
		logger:   logger,
	}
}

// valueRating maps edge and confidence to a 1-5 star rating. Thresholds
// are strict and evaluated high to low; they are also reused for parlay
// candidates against combined values.
func valueRating(edge, confidence float64) int {
	switch {
	case edge >= 20 && confidence >= 75:
		return 5
	case edge >= 15 && confidence >= 75:
		return 4
	case edge >= 10 && confidence >= 65:
		return 3
	case edge >= 5 && confidence >= 60:
		return 2
	default:
		return 1
	}
}

// betSize computes the clipped fractional-Kelly stake as % of bankroll.
// Only positive-edge picks get a stake.
func betSize(confidence, edge float64) float64 {
	if edge <= 0 {
		return 0
	}
	p := confidence / 100
	kelly := (p - (1-p)/(edge/100)) * kellyFraction * 100
	if kelly < 0 {
		return 0
	}
	if kelly > maxBetSize {
		return maxBetSize
	}
	return kelly
}

// opportunityRisk scores per-pick risk: long odds, thin confidence and
// outsized edges all add to the score.
func opportunityRisk(edge, confidence, odds float64) (int, models.RiskLevel) {
	score := 0
	if edge > 15 {
		score += 2
	}
	if confidence < 65 {
		score += 2
	}
	if odds > 150 {
		score++
	}
	switch {
	case score >= 4:
		return score, models.RiskHigh
	case score >= 2:
		return score, models.RiskMedium
	default:
		return score, models.RiskLow
	}
}

// ComputeMarketAnalysis builds the full market report for an event's
// enriched fights. Fights without resolvable odds are excluded from the
// aggregates rather than defaulted. Always returns a well-formed report.
func (e *ValueEngine) ComputeMarketAnalysis(event, model string, fights []models.EnrichedFight) *models.MarketReport {
	report := &models.MarketReport{
		Event:         event,
		Model:         model,
		GeneratedAt:   time.Now().UTC(),
		Opportunities: []models.ValueOpportunity{},
	}

	var (
		edgeSum    float64
		impliedSum float64
		priced     int
	)

	for _, fight := range fights {
		winnerOdds := fight.WinnerOdds()
		if winnerOdds == nil {
			report.Metrics.FightsWithoutOdds++
			continue
		}

		implied := ImpliedProbability(*winnerOdds)
		edge := Edge(fight.Confidence, implied)
		riskScore, riskLevel := opportunityRisk(edge, fight.Confidence, *winnerOdds)

		opportunity := models.ValueOpportunity{
			Event:              fight.Event,
			Fighter1:           fight.Fighter1,
			Fighter2:           fight.Fighter2,
			PredictedWinner:    fight.PredictedWinner,
			Confidence:         fight.Confidence,
			Odds:               *winnerOdds,
			ImpliedProbability: implied,
			Edge:               edge,
			BetSize:            betSize(fight.Confidence, edge),
			Rating:             valueRating(edge, fight.Confidence),
			RiskScore:          riskScore,
			RiskLevel:          riskLevel,
		}
		opportunity.Analysis = describeOpportunity(&opportunity)

		report.Opportunities = append(report.Opportunities, opportunity)
		edgeSum += edge
		impliedSum += implied
		priced++

		if edge > 5 {
			report.Metrics.ValueOpportunities++
		}
	}

	report.Metrics.FightsWithOdds = priced
	if priced > 0 {
		report.Metrics.AverageEdge = edgeSum / float64(priced)
		report.Metrics.MarketBalance = math.Abs(100 - impliedSum/float64(priced))
		report.Metrics.MarketEfficiency = 100 - math.Abs(report.Metrics.AverageEdge)*10
	} else {
		report.Metrics.MarketEfficiency = 100
	}
	report.Metrics.Sharpness = sharpnessLabel(report.Metrics.MarketBalance)

	report.Risk = AssessMarket(report.Metrics, report.Opportunities)
	report.Parlays = e.composer.Compose(report.Opportunities)

	e.logger.WithFields(logrus.Fields{
		"event":        event,
		"fights":       len(fights),
		"priced":       priced,
		"value_picks":  report.Metrics.ValueOpportunities,
		"average_edge": report.Metrics.AverageEdge,
		"market_sharp": report.Metrics.Sharpness,
	}).Info("Market analysis computed")

	return report
}

func sharpnessLabel(balance float64) string {
	switch {
	case balance < 5:
		return "High"
	case balance < 10:
		return "Medium"
	default:
		return "Low"
	}
}

func describeOpportunity(o *models.ValueOpportunity) string {
	switch {
	case o.Edge >= 15:
		return fmt.Sprintf("Strong value on %s at %s: model %.0f%% vs market %.1f%%",
			o.PredictedWinner, FormatAmerican(o.Odds), o.Confidence, o.ImpliedProbability)
	case o.Edge > 5:
		return fmt.Sprintf("Moderate value on %s at %s (edge %.1f pts)",
			o.PredictedWinner, FormatAmerican(o.Odds), o.Edge)
	case o.Edge > 0:
		return fmt.Sprintf("Thin edge on %s; market price is close to the model", o.PredictedWinner)
	default:
		return fmt.Sprintf("No value: market is ahead of the model on %s", o.PredictedWinner)
	}
}
