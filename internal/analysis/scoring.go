package analysis

import (
	"math"
	"time"
)

// daysPerMonth converts calendar gaps to fractional months
const daysPerMonth = 30.44

func monthsBetween(earlier, later time.Time) float64 {
	if later.Before(earlier) {
		earlier, later = later, earlier
	}
	return later.Sub(earlier).Hours() / 24 / daysPerMonth
}

// RecencyScore weights a fight by its age at the comparison date.
// Piecewise linear decay: 1.0→0.75 over the first 12 months, 0.75→0.5
// over 12-24, 0.5→0.25 over 24-36, then asymptotic toward 0.
func RecencyScore(fightDate, asOf time.Time) float64 {
	if fightDate.After(asOf) {
		return 1.0
	}
	months := monthsBetween(fightDate, asOf)
	switch {
	case months <= 12:
		return 1.0 - 0.25*(months/12)
	case months <= 24:
		return 0.75 - 0.25*((months-12)/12)
	case months <= 36:
		return 0.5 - 0.25*((months-24)/12)
	default:
		return 0.25 * math.Exp(-(months-36)/24)
	}
}

// RelevanceScore weights a shared-opponent data point by how close in time
// the two fights were. 1.0→0.75 over a 6-month gap, 0.75→0.5 over 6-12,
// 0.5→0.25 over 12-24, zero beyond 24 months.
func RelevanceScore(date1, date2 time.Time) float64 {
	gap := monthsBetween(date1, date2)
	switch {
	case gap <= 6:
		return 1.0 - 0.25*(gap/6)
	case gap <= 12:
		return 0.75 - 0.25*((gap-6)/6)
	case gap <= 24:
		return 0.5 - 0.25*((gap-12)/12)
	default:
		return 0
	}
}

// laterOf returns the more recent of two times
func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
