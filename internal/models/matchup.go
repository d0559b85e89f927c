package models

import "fmt"

// Advantage is the categorical verdict for a single comparison dimension,
// always read from fighter1's perspective.
type Advantage string

const (
	SignificantAdvantage    Advantage = "Significant Advantage"
	SlightAdvantage         Advantage = "Slight Advantage"
	Even                    Advantage = "Even"
	SlightDisadvantage      Advantage = "Slight Disadvantage"
	SignificantDisadvantage Advantage = "Significant Disadvantage"
)

// Opposite returns the verdict from the other fighter's perspective
func (a Advantage) Opposite() Advantage {
	switch a {
	case SignificantAdvantage:
		return SignificantDisadvantage
	case SlightAdvantage:
		return SlightDisadvantage
	case SlightDisadvantage:
		return SlightAdvantage
	case SignificantDisadvantage:
		return SignificantAdvantage
	default:
		return Even
	}
}

// StanceVerdict describes how an ordered stance pairing plays out
type StanceVerdict string

const (
	StanceAdvantage      StanceVerdict = "Advantage"
	StanceComplexMatchup StanceVerdict = "Complex matchup"
	StanceNeutral        StanceVerdict = "Neutral"
	StanceUnknownMatchup StanceVerdict = "Unknown"
)

// DefaultStanceMatchups is the injectable lookup of ordered stance pairs.
// Keys are "<fighter1 stance> vs <fighter2 stance>"; same-stance pairs are
// neutral and unlisted pairs are unknown.
var DefaultStanceMatchups = map[string]StanceVerdict{
	"Switch vs Orthodox":   StanceAdvantage,
	"Switch vs Southpaw":   StanceAdvantage,
	"Southpaw vs Orthodox": StanceAdvantage,
	"Orthodox vs Southpaw": StanceComplexMatchup,
	"Orthodox vs Switch":   StanceComplexMatchup,
	"Southpaw vs Switch":   StanceComplexMatchup,
}

// LookupStanceMatchup resolves an ordered stance pair against a matchup table
func LookupStanceMatchup(f1, f2 Stance, table map[string]StanceVerdict) StanceVerdict {
	if f1 == f2 {
		return StanceNeutral
	}
	if verdict, ok := table[fmt.Sprintf("%s vs %s", f1, f2)]; ok {
		return verdict
	}
	return StanceUnknownMatchup
}

// StrikingComparison holds the striking differentials for an ordered pair
type StrikingComparison struct {
	VolumeDifferential float64   `json:"volume_differential"`
	DefenseComparison  float64   `json:"defense_comparison"`
	Score              float64   `json:"score"`
	Verdict            Advantage `json:"verdict"`
}

// GrapplingComparison holds the grappling differentials for an ordered pair
type GrapplingComparison struct {
	TakedownDifferential float64   `json:"takedown_differential"`
	TDDefenseComparison  float64   `json:"td_defense_comparison"`
	SubDifferential      float64   `json:"sub_differential"`
	Score                float64   `json:"score"`
	Verdict              Advantage `json:"verdict"`
}

// PhysicalComparison holds physical differentials and the stance matchup
type PhysicalComparison struct {
	HeightDifferential float64       `json:"height_differential"`
	ReachDifferential  float64       `json:"reach_differential"`
	StanceMatchup      StanceVerdict `json:"stance_matchup"`
}

// MatchupAnalysis is the ephemeral per-request comparison of an ordered
// fighter pair. Swapping the pair negates differentials and inverts verdicts.
type MatchupAnalysis struct {
	Fighter1  string               `json:"fighter1"`
	Fighter2  string               `json:"fighter2"`
	Striking  *StrikingComparison  `json:"striking"`
	Grappling *GrapplingComparison `json:"grappling"`
	Physical  *PhysicalComparison  `json:"physical"`
}
