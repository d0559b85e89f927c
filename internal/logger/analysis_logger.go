// Package logger provides analysis-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for matchup analysis operations.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogMatchupComparison logs a completed head-to-head comparison.
func (al *AnalysisLogger) LogMatchupComparison(fighter1, fighter2, strikingVerdict, grapplingVerdict string, durationMs float64) {
	al.WithFields(logrus.Fields{
		"fighter1":               fighter1,
		"fighter2":               fighter2,
		"striking_verdict":       strikingVerdict,
		"grappling_verdict":      grapplingVerdict,
		"comparison_duration_ms": durationMs,
	}).Info("Matchup comparison completed")
}

// LogStyleClassification logs a style classification outcome.
func (al *AnalysisLogger) LogStyleClassification(fighter, style string, fightsSampled int, fromMethods bool) {
	al.WithFields(logrus.Fields{
		"fighter":        fighter,
		"style":          style,
		"fights_sampled": fightsSampled,
		"from_methods":   fromMethods,
	}).Info("Fighter style classified")
}

// LogCommonOpponentAnalysis logs a common-opponent analysis run.
func (al *AnalysisLogger) LogCommonOpponentAnalysis(fighter1, fighter2 string, sharedOpponents, insights int) {
	al.WithFields(logrus.Fields{
		"fighter1":         fighter1,
		"fighter2":         fighter2,
		"shared_opponents": sharedOpponents,
		"insights":         insights,
	}).Info("Common opponent analysis completed")
}

// LogProfileRefresh logs a fighter profile refresh from the stats source.
func (al *AnalysisLogger) LogProfileRefresh(fighter string, staleDays float64, success bool) {
	al.WithFields(logrus.Fields{
		"fighter":    fighter,
		"stale_days": staleDays,
		"success":    success,
	}).Info("Fighter profile refreshed")
}
