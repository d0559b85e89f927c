package models

import "time"

// EnrichedFight pairs a scheduled fight with a model prediction and,
// when resolvable, a market quote.
type EnrichedFight struct {
	Event           string          `json:"event"`
	Fighter1        string          `json:"fighter1"`
	Fighter2        string          `json:"fighter2"`
	PredictedWinner string          `json:"predicted_winner"`
	Confidence      float64         `json:"confidence"` // 0-100
	Odds            *FightOddsQuote `json:"odds,omitempty"`
}

// WinnerOdds returns the American odds for the predicted winner, nil when
// the fight has no resolvable quote for that side.
func (f *EnrichedFight) WinnerOdds() *float64 {
	if f.Odds == nil {
		return nil
	}
	return f.Odds.OddsFor(f.PredictedWinner)
}

// RiskLevel grades risk scores into coarse buckets
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
)

// ValueOpportunity is a single-fight betting recommendation
type ValueOpportunity struct {
	Event              string    `json:"event"`
	Fighter1           string    `json:"fighter1"`
	Fighter2           string    `json:"fighter2"`
	PredictedWinner    string    `json:"predicted_winner"`
	Confidence         float64   `json:"confidence"`
	Odds               float64   `json:"odds"`
	ImpliedProbability float64   `json:"implied_probability"`
	Edge               float64   `json:"edge"`
	BetSize            float64   `json:"bet_size"` // % of bankroll, [0,5]
	Rating             int       `json:"rating"`   // 1-5 stars
	RiskScore          int       `json:"risk_score"`
	RiskLevel          RiskLevel `json:"risk_level"`
	Analysis           string    `json:"analysis"`
}

// MarketMetrics aggregates market-wide measures over odds-bearing fights
type MarketMetrics struct {
	AverageEdge        float64 `json:"average_edge"`
	MarketBalance      float64 `json:"market_balance"`
	MarketEfficiency   float64 `json:"market_efficiency"`
	Sharpness          string  `json:"sharpness"` // High / Medium / Low
	ValueOpportunities int     `json:"value_opportunities"`
	FightsWithOdds     int     `json:"fights_with_odds"`
	FightsWithoutOdds  int     `json:"fights_without_odds"`
}

// RiskAssessment is the market-level risk verdict plus allocation guidance
type RiskAssessment struct {
	Score             int       `json:"score"`
	Level             RiskLevel `json:"level"`
	MaxSingleExposure float64   `json:"max_single_exposure"` // % of bankroll
	ParlayAllocation  float64   `json:"parlay_allocation"`   // % of bankroll
	Notes             []string  `json:"notes"`
}

// MarketReport is the full output of a market analysis run. Field names
// are stable for round-trip storage within the freshness window.
type MarketReport struct {
	Event         string             `json:"event"`
	Model         string             `json:"model"`
	GeneratedAt   time.Time          `json:"generated_at"`
	Opportunities []ValueOpportunity `json:"opportunities"`
	Metrics       MarketMetrics      `json:"metrics"`
	Risk          RiskAssessment     `json:"risk"`
	Parlays       *ParlaySlate       `json:"parlays,omitempty"`
}
