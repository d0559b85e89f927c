// Package statparser normalizes raw fighter statistic strings into numeric
// values. Every parser is a total function: absent or malformed input
// yields 0, which downstream code reads as "unknown" rather than zero
// skill.
package statparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/octagon-edge/internal/models"
)

var heightPattern = regexp.MustCompile(`(\d+)'\s*(\d+)"?`)

// ParseHeight converts a feet'inches" string ("6'2\"") to total inches.
// Returns 0 when the input is empty or unparseable.
func ParseHeight(s string) float64 {
	matches := heightPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0
	}
	feet, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	inches, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0
	}
	return float64(feet*12 + inches)
}

// ParseReach converts a reach string ("74\"") to inches.
// Returns 0 on failure.
func ParseReach(s string) float64 {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), `"`))
	if trimmed == "" {
		return 0
	}
	reach, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || reach < 0 {
		return 0
	}
	return reach
}

// ParsePercent converts a percentage string ("57%") to its numeric value.
// Returns 0 when the input is empty or malformed.
func ParsePercent(s string) float64 {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if trimmed == "" {
		return 0
	}
	pct, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return pct
}

// ParseRate converts a plain numeric rate string ("4.21") to a float.
// Returns 0 on failure.
func ParseRate(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	rate, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return rate
}

// ParseStance normalizes a raw stance string to one of the known stances
func ParseStance(s string) models.Stance {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orthodox":
		return models.StanceOrthodox
	case "southpaw":
		return models.StanceSouthpaw
	case "switch":
		return models.StanceSwitch
	default:
		return models.StanceUnknown
	}
}
