package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FightOddsQuote represents a bookmaker's moneyline quote for a fight.
// Either side may be missing; a fight without a resolvable quote is
// excluded from value computation, never defaulted to 0.
type FightOddsQuote struct {
	ID           uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Bookmaker    string    `db:"bookmaker" json:"bookmaker" validate:"required"`
	Fighter1     string    `db:"fighter1" json:"fighter1" validate:"required"`
	Fighter2     string    `db:"fighter2" json:"fighter2" validate:"required"`
	Fighter1Odds *float64  `db:"fighter1_odds" json:"fighter1_odds"`
	Fighter2Odds *float64  `db:"fighter2_odds" json:"fighter2_odds"`
	LastUpdate   time.Time `db:"last_update" json:"last_update"`
}

// OddsFor returns the American odds for the named fighter, nil when the
// side is unknown or has no price. Corner names match case-insensitively,
// the same rule used to pair quotes with fights.
func (q *FightOddsQuote) OddsFor(name string) *float64 {
	switch {
	case strings.EqualFold(name, q.Fighter1):
		return q.Fighter1Odds
	case strings.EqualFold(name, q.Fighter2):
		return q.Fighter2Odds
	default:
		return nil
	}
}

// DecimalFactor converts American odds to the decimal payout factor used
// when compounding parlay legs: positive odds 1+odds/100, negative odds
// 1+100/|odds|.
func DecimalFactor(american float64) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	odds := decimal.NewFromFloat(american)
	if american > 0 {
		return decimal.NewFromInt(1).Add(odds.Div(hundred))
	}
	return decimal.NewFromInt(1).Add(hundred.DivRound(odds.Abs(), 16))
}
