package models

// ParlayCandidate is a multi-leg combination of value picks drawn from
// distinct fights. Implied probability multiplies across legs; confidence
// is the arithmetic mean of leg confidences.
type ParlayCandidate struct {
	Legs                []ValueOpportunity `json:"legs"`
	CombinedConfidence  float64            `json:"combined_confidence"`
	CombinedImpliedProb float64            `json:"combined_implied_probability"`
	PotentialReturn     string             `json:"potential_return"` // e.g. "+264%"
	Edge                float64            `json:"edge"`
	Rating              int                `json:"rating"`
}

// ParlaySlate groups generated parlay candidates by shape
type ParlaySlate struct {
	TwoLeg    []ParlayCandidate `json:"two_leg"`
	ThreeLeg  []ParlayCandidate `json:"three_leg"`
	CrossPool []ParlayCandidate `json:"cross_pool"`
}

// EmptyParlaySlate returns the neutral slate shape
func EmptyParlaySlate() *ParlaySlate {
	return &ParlaySlate{
		TwoLeg:    []ParlayCandidate{},
		ThreeLeg:  []ParlayCandidate{},
		CrossPool: []ParlayCandidate{},
	}
}

// FightKey identifies the fight a pick belongs to, independent of corner order
func (v *ValueOpportunity) FightKey() string {
	if v.Fighter1 < v.Fighter2 {
		return v.Fighter1 + "|" + v.Fighter2
	}
	return v.Fighter2 + "|" + v.Fighter1
}
