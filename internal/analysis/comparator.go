// Package analysis computes matchup advantages, style classifications and
// common-opponent reports from normalized fighter data.
package analysis

import (
	"github.com/yourusername/octagon-edge/internal/models"
)

// Comparator produces directional advantage verdicts for an ordered pair
// of fighter profiles. All methods are pure functions of the two stat
// snapshots; swapping the pair negates differentials and inverts verdicts.
type Comparator struct {
	stanceTable map[string]models.StanceVerdict
}

// NewComparator creates a comparator with the given stance matchup table.
// A nil table falls back to models.DefaultStanceMatchups.
func NewComparator(stanceTable map[string]models.StanceVerdict) *Comparator {
	if stanceTable == nil {
		stanceTable = models.DefaultStanceMatchups
	}
	return &Comparator{stanceTable: stanceTable}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// strikingVerdict maps a two-component sign score to a verdict
func strikingVerdict(score float64) models.Advantage {
	switch {
	case score >= 1.5:
		return models.SignificantAdvantage
	case score > 0:
		return models.SlightAdvantage
	case score == 0:
		return models.Even
	case score > -1.5:
		return models.SlightDisadvantage
	default:
		return models.SignificantDisadvantage
	}
}

// grapplingVerdict maps a three-component sign score to a verdict.
// Thresholds widen to account for the extra component.
func grapplingVerdict(score float64) models.Advantage {
	switch {
	case score >= 2:
		return models.SignificantAdvantage
	case score > 0:
		return models.SlightAdvantage
	case score == 0:
		return models.Even
	case score > -2:
		return models.SlightDisadvantage
	default:
		return models.SignificantDisadvantage
	}
}

// CompareStriking compares striking volume and defense for f1 against f2
func (c *Comparator) CompareStriking(f1, f2 *models.FighterProfile) *models.StrikingComparison {
	if f1 == nil || f2 == nil {
		return nil
	}

	volumeDiff := f1.SLPM - f2.SLPM
	defenseDiff := f1.StrDefense - f2.StrDefense
	score := sign(volumeDiff) + sign(defenseDiff)

	return &models.StrikingComparison{
		VolumeDifferential: volumeDiff,
		DefenseComparison:  defenseDiff,
		Score:              score,
		Verdict:            strikingVerdict(score),
	}
}

// CompareGrappling compares takedown rate, takedown defense and submission
// rate for f1 against f2
func (c *Comparator) CompareGrappling(f1, f2 *models.FighterProfile) *models.GrapplingComparison {
	if f1 == nil || f2 == nil {
		return nil
	}

	tdDiff := f1.TDAvg - f2.TDAvg
	tdDefDiff := f1.TDDefense - f2.TDDefense
	subDiff := f1.SubAvg - f2.SubAvg
	score := sign(tdDiff) + sign(tdDefDiff) + sign(subDiff)

	return &models.GrapplingComparison{
		TakedownDifferential: tdDiff,
		TDDefenseComparison:  tdDefDiff,
		SubDifferential:      subDiff,
		Score:                score,
		Verdict:              grapplingVerdict(score),
	}
}

// ComparePhysical compares height, reach and the ordered stance matchup
func (c *Comparator) ComparePhysical(f1, f2 *models.FighterProfile) *models.PhysicalComparison {
	if f1 == nil || f2 == nil {
		return nil
	}

	return &models.PhysicalComparison{
		HeightDifferential: f1.HeightIn - f2.HeightIn,
		ReachDifferential:  f1.ReachIn - f2.ReachIn,
		StanceMatchup:      models.LookupStanceMatchup(f1.Stance, f2.Stance, c.stanceTable),
	}
}

// CompareMatchup assembles the full matchup analysis for an ordered pair.
// Returns nil when either profile is absent.
func (c *Comparator) CompareMatchup(f1, f2 *models.FighterProfile) *models.MatchupAnalysis {
	if f1 == nil || f2 == nil {
		return nil
	}

	return &models.MatchupAnalysis{
		Fighter1:  f1.Name,
		Fighter2:  f2.Name,
		Striking:  c.CompareStriking(f1, f2),
		Grappling: c.CompareGrappling(f1, f2),
		Physical:  c.ComparePhysical(f1, f2),
	}
}
