package market

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/octagon-edge/internal/models"
)

const (
	lockConfidenceMin    = 75.0
	lockEdgeMin          = 5.0
	generalConfidenceMin = 65.0
	maxTwoLeg            = 3
	maxThreeLeg          = 2
	maxCrossPool         = 3
)

// Composer generates multi-leg parlay candidates from value picks.
// The candidate pool is deduplicated to one pick per fight before any
// combination is formed, so no candidate can ever contain two legs from
// the same fight or the same fighter.
type Composer struct {
	logger *logrus.Logger
}

// NewComposer creates a parlay composer
func NewComposer(logger *logrus.Logger) *Composer {
	return &Composer{logger: logger}
}

// Compose builds the parlay slate: 2-leg and 3-leg candidates from the
// lock tier plus cross-pool pairs mixing lock and general picks. An empty
// or unusable pool yields an empty slate, never a failure.
func (c *Composer) Compose(picks []models.ValueOpportunity) *models.ParlaySlate {
	slate := models.EmptyParlaySlate()
	if len(picks) == 0 {
		return slate
	}

	pool := dedupeByFight(picks)

	var lock, general []models.ValueOpportunity
	for _, pick := range pool {
		if pick.Confidence >= lockConfidenceMin && pick.Edge > lockEdgeMin {
			lock = append(lock, pick)
		} else if pick.Confidence >= generalConfidenceMin {
			general = append(general, pick)
		}
	}
	sortByConfidence(lock)
	sortByConfidence(general)

	slate.TwoLeg = c.bestCandidates(combinations(lock, 2), maxTwoLeg)
	slate.ThreeLeg = c.bestCandidates(combinations(lock, 3), maxThreeLeg)
	slate.CrossPool = c.bestCandidates(crossPairs(lock, general), maxCrossPool)

	c.logger.WithFields(logrus.Fields{
		"pool":       len(pool),
		"lock_tier":  len(lock),
		"two_leg":    len(slate.TwoLeg),
		"three_leg":  len(slate.ThreeLeg),
		"cross_pool": len(slate.CrossPool),
	}).Debug("Parlay slate composed")

	return slate
}

// dedupeByFight keeps the highest-edge pick per fight
func dedupeByFight(picks []models.ValueOpportunity) []models.ValueOpportunity {
	best := make(map[string]models.ValueOpportunity, len(picks))
	order := make([]string, 0, len(picks))
	for _, pick := range picks {
		key := pick.FightKey()
		existing, seen := best[key]
		if !seen {
			order = append(order, key)
			best[key] = pick
			continue
		}
		if pick.Edge > existing.Edge {
			best[key] = pick
		}
	}

	pool := make([]models.ValueOpportunity, 0, len(order))
	for _, key := range order {
		pool = append(pool, best[key])
	}
	return pool
}

func sortByConfidence(picks []models.ValueOpportunity) {
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Confidence > picks[j].Confidence
	})
}

// combinations returns all k-element combinations of the pool
func combinations(pool []models.ValueOpportunity, k int) [][]models.ValueOpportunity {
	if len(pool) < k || k <= 0 {
		return nil
	}
	var result [][]models.ValueOpportunity
	combo := make([]models.ValueOpportunity, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			leg := make([]models.ValueOpportunity, k)
			copy(leg, combo)
			result = append(result, leg)
			return
		}
		for i := start; i <= len(pool)-(k-depth); i++ {
			combo[depth] = pool[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return result
}

// crossPairs pairs each lock pick with each general pick
func crossPairs(lock, general []models.ValueOpportunity) [][]models.ValueOpportunity {
	var result [][]models.ValueOpportunity
	for _, l := range lock {
		for _, g := range general {
			result = append(result, []models.ValueOpportunity{l, g})
		}
	}
	return result
}

// bestCandidates scores combinations, discards non-positive edges and
// invalid leg sets, and returns the top candidates by edge.
func (c *Composer) bestCandidates(combos [][]models.ValueOpportunity, limit int) []models.ParlayCandidate {
	candidates := make([]models.ParlayCandidate, 0, len(combos))
	for _, legs := range combos {
		if !legsAreDistinct(legs) {
			continue
		}
		candidate := scoreParlay(legs)
		if candidate.Edge <= 0 {
			continue
		}
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Edge > candidates[j].Edge
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// scoreParlay computes combined metrics for a leg set. Implied
// probability multiplies across legs as independent events; confidence is
// the arithmetic mean of leg confidences, kept deliberately (an
// independent-event confidence would also multiply, but the mean is the
// established report semantics).
func scoreParlay(legs []models.ValueOpportunity) models.ParlayCandidate {
	confidenceSum := 0.0
	impliedProduct := 1.0
	payout := decimal.NewFromInt(1)
	for _, leg := range legs {
		confidenceSum += leg.Confidence
		impliedProduct *= leg.ImpliedProbability / 100
		payout = payout.Mul(models.DecimalFactor(leg.Odds))
	}

	combined := models.ParlayCandidate{
		Legs:                legs,
		CombinedConfidence:  confidenceSum / float64(len(legs)),
		CombinedImpliedProb: impliedProduct * 100,
	}
	combined.Edge = combined.CombinedConfidence - combined.CombinedImpliedProb
	combined.Rating = valueRating(combined.Edge, combined.CombinedConfidence)

	returnPct := payout.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Round(1)
	combined.PotentialReturn = fmt.Sprintf("+%s%%", returnPct.String())
	return combined
}

// legsAreDistinct rejects leg sets sharing a fight or a fighter
func legsAreDistinct(legs []models.ValueOpportunity) bool {
	fights := make(map[string]struct{}, len(legs))
	fighters := make(map[string]struct{}, len(legs)*2)
	for _, leg := range legs {
		key := leg.FightKey()
		if _, dup := fights[key]; dup {
			return false
		}
		fights[key] = struct{}{}

		for _, name := range []string{leg.Fighter1, leg.Fighter2} {
			lowered := strings.ToLower(name)
			if _, dup := fighters[lowered]; dup {
				return false
			}
			fighters[lowered] = struct{}{}
		}
	}
	return true
}

// ValidateCandidates filters externally-sourced parlay candidates,
// dropping any whose legs repeat a fighter or pit a leg's pick against
// another leg's documented opponent on the same card.
func (c *Composer) ValidateCandidates(candidates []models.ParlayCandidate) []models.ParlayCandidate {
	valid := make([]models.ParlayCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if len(candidate.Legs) < 2 {
			continue
		}
		if !legsAreDistinct(candidate.Legs) {
			c.logger.WithField("legs", len(candidate.Legs)).Warn("Rejected parlay: duplicate fighter or fight")
			continue
		}
		if picksConflict(candidate.Legs) {
			c.logger.WithField("legs", len(candidate.Legs)).Warn("Rejected parlay: pick opposes another leg's fighter")
			continue
		}
		valid = append(valid, candidate)
	}
	return valid
}

// picksConflict reports whether any leg's predicted winner is a documented
// opponent of another leg's predicted winner
func picksConflict(legs []models.ValueOpportunity) bool {
	for i, a := range legs {
		for j, b := range legs {
			if i == j {
				continue
			}
			if strings.EqualFold(a.PredictedWinner, b.Fighter1) || strings.EqualFold(a.PredictedWinner, b.Fighter2) {
				return true
			}
		}
	}
	return false
}
