package analysis

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/octagon-edge/internal/models"
	"github.com/yourusername/octagon-edge/internal/repository"
)

// StyleClassifier derives a fighter's style label from win-method history,
// falling back to stat heuristics when no classified wins exist.
type StyleClassifier struct {
	fighters repository.FighterRepository
	fights   repository.FightRepository
	rules    []models.MethodRule
	logger   *logrus.Logger
}

// NewStyleClassifier creates a style classifier. A nil rule table falls
// back to models.DefaultMethodRules.
func NewStyleClassifier(fighters repository.FighterRepository, fights repository.FightRepository, rules []models.MethodRule, logger *logrus.Logger) *StyleClassifier {
	if rules == nil {
		rules = models.DefaultMethodRules
	}
	return &StyleClassifier{
		fighters: fighters,
		fights:   fights,
		rules:    rules,
		logger:   logger,
	}
}

// methodTally counts classified wins per bucket
type methodTally struct {
	ko, sub, dec int
}

func (t methodTally) total() int {
	return t.ko + t.sub + t.dec
}

// Classify returns the style label for the named fighter. It never fails:
// any lookup error yields StyleUnknown.
func (c *StyleClassifier) Classify(ctx context.Context, name string) models.StyleLabel {
	profile, err := c.fighters.GetByName(ctx, name)
	if err != nil || profile == nil {
		c.logger.WithError(err).WithField("fighter", name).Debug("Style classification without stats")
		return models.StyleUnknown
	}

	wins, _, err := c.fights.GetWinsAndLosses(ctx, name)
	if err != nil {
		c.logger.WithError(err).WithField("fighter", name).Debug("Win history unavailable, using stat heuristic")
		return c.classifyFromStats(profile)
	}

	tally := c.tallyWins(wins)
	if tally.total() == 0 {
		return c.classifyFromStats(profile)
	}
	return c.classifyFromMethods(profile, tally)
}

// ClassifyProfile classifies from an already-fetched profile and win set.
// Used when the caller has the data in hand and wants the pure path.
func (c *StyleClassifier) ClassifyProfile(profile *models.FighterProfile, wins []*models.FightRecord) models.StyleLabel {
	if profile == nil {
		return models.StyleUnknown
	}
	tally := c.tallyWins(wins)
	if tally.total() == 0 {
		return c.classifyFromStats(profile)
	}
	return c.classifyFromMethods(profile, tally)
}

func (c *StyleClassifier) tallyWins(wins []*models.FightRecord) methodTally {
	var tally methodTally
	for _, win := range wins {
		switch models.ClassifyMethod(win.Method, c.rules) {
		case models.MethodKO:
			tally.ko++
		case models.MethodSubmission:
			tally.sub++
		case models.MethodDecision:
			tally.dec++
		}
	}
	return tally
}

// classifyFromStats is the fallback heuristic when no classified wins
// exist. Branch order is deliberate; later branches are unreachable once
// an earlier one matches.
func (c *StyleClassifier) classifyFromStats(p *models.FighterProfile) models.StyleLabel {
	switch {
	case p.SLPM > 3.5 && p.TDAvg < 1.0:
		return models.StyleStriker
	case p.SubAvg > 1.0 || p.TDAvg > 2.5:
		return models.StyleSubmissionGrappler
	case p.TDAvg > 2.0:
		return models.StyleControlGrappler
	case p.SLPM > 3.0 && p.TDAvg > 1.5:
		return models.StyleMixed
	default:
		return models.StyleBalanced
	}
}

// classifyFromMethods uses win-method proportions in fixed priority order
func (c *StyleClassifier) classifyFromMethods(p *models.FighterProfile, tally methodTally) models.StyleLabel {
	total := float64(tally.total())
	koRatio := float64(tally.ko) / total
	subRatio := float64(tally.sub) / total
	decRatio := float64(tally.dec) / total

	switch {
	case koRatio > 0.5 && p.SLPM > 3.5:
		return models.StyleStriker
	case subRatio > 0.4 || p.SubAvg > 1.0:
		return models.StyleSubmissionGrappler
	case p.TDAvg > 2.0 && decRatio > 0.5:
		return models.StyleControlGrappler
	case p.SLPM > 3.0 && p.TDAvg > 1.5:
		return models.StyleMixed
	default:
		return models.StyleBalanced
	}
}
