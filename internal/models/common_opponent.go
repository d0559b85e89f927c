package models

import "time"

// OpponentMeeting is one historical fight from a single fighter's point of view
type OpponentMeeting struct {
	Opponent string      `json:"opponent"`
	Method   string      `json:"method"`
	Date     time.Time   `json:"date"`
	Result   FightResult `json:"result"`
}

// SharedOpponent annotates an opponent both subjects have faced
type SharedOpponent struct {
	Name           string      `json:"name"`
	Fighter1Result FightResult `json:"fighter1_result"`
	Fighter1Method string      `json:"fighter1_method"`
	Fighter1Date   time.Time   `json:"fighter1_date"`
	Fighter2Result FightResult `json:"fighter2_result"`
	Fighter2Method string      `json:"fighter2_method"`
	Fighter2Date   time.Time   `json:"fighter2_date"`
	RecencyScore   float64     `json:"recency_score"`   // 0-1, decays with age of the newer fight
	RelevanceScore float64     `json:"relevance_score"` // 0-1, decays with the gap between the two fights
}

// PerformanceRating grades a fighter's record against a style pool
type PerformanceRating string

const (
	RatingExcellent PerformanceRating = "Excellent"
	RatingGood      PerformanceRating = "Good"
	RatingAverage   PerformanceRating = "Average"
	RatingPoor      PerformanceRating = "Poor"
	RatingUnknown   PerformanceRating = "Unknown"
)

// Ordinal returns the rating rank used for head-to-head rating comparison
func (r PerformanceRating) Ordinal() int {
	switch r {
	case RatingExcellent:
		return 4
	case RatingGood:
		return 3
	case RatingAverage:
		return 2
	case RatingPoor:
		return 1
	default:
		return 0
	}
}

// StyleMatchupReport summarizes both subjects' performance against
// opponents stylistically similar to the other subject
type StyleMatchupReport struct {
	Fighter1Style      StyleLabel        `json:"fighter1_style"`
	Fighter2Style      StyleLabel        `json:"fighter2_style"`
	Fighter1Rating     PerformanceRating `json:"fighter1_rating"`
	Fighter2Rating     PerformanceRating `json:"fighter2_rating"`
	Fighter1PoolRecord string            `json:"fighter1_pool_record"`
	Fighter2PoolRecord string            `json:"fighter2_pool_record"`
	StylisticAdvantage string            `json:"stylistic_advantage"` // fighter name, or empty when even
}

// CommonOpponentReport is the ephemeral shared-opponent analysis for an
// ordered fighter pair
type CommonOpponentReport struct {
	Fighter1             string              `json:"fighter1"`
	Fighter2             string              `json:"fighter2"`
	SharedOpponents      []SharedOpponent    `json:"shared_opponents"`
	Fighter1Wins         int                 `json:"fighter1_wins"`
	Fighter2Wins         int                 `json:"fighter2_wins"`
	ComparativeAdvantage string              `json:"comparative_advantage"` // fighter name, empty when tied or none
	StyleMatchup         *StyleMatchupReport `json:"style_matchup,omitempty"`
	Insights             []string            `json:"insights"`
}

// EmptyCommonOpponentReport returns the neutral report shape used when
// analysis cannot proceed; callers always get a well-formed object.
func EmptyCommonOpponentReport(fighter1, fighter2 string) *CommonOpponentReport {
	return &CommonOpponentReport{
		Fighter1:        fighter1,
		Fighter2:        fighter2,
		SharedOpponents: []SharedOpponent{},
		Insights:        []string{},
	}
}
