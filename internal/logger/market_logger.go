// Package logger provides market audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// MarketLogger provides dedicated audit trail logging for value analysis.
type MarketLogger struct {
	*logrus.Entry
}

// NewMarketLogger creates a new market audit logger.
func NewMarketLogger(baseLogger *logrus.Logger) *MarketLogger {
	return &MarketLogger{
		Entry: baseLogger.WithField("component", "market"),
	}
}

// LogValuePick logs a value opportunity surfacing above the edge threshold.
func (ml *MarketLogger) LogValuePick(event, predictedWinner string, confidence, odds, edge, betSize float64, rating int) {
	ml.WithFields(logrus.Fields{
		"event":            event,
		"predicted_winner": predictedWinner,
		"confidence":       confidence,
		"odds":             odds,
		"edge":             edge,
		"bet_size":         betSize,
		"rating":           rating,
	}).Info("Value opportunity recorded")
}

// LogParlayComposition logs the composed parlay slate shape.
func (ml *MarketLogger) LogParlayComposition(event string, twoLeg, threeLeg, crossPool int) {
	ml.WithFields(logrus.Fields{
		"event":      event,
		"two_leg":    twoLeg,
		"three_leg":  threeLeg,
		"cross_pool": crossPool,
	}).Info("Parlay slate composed")
}

// LogOddsSnapshot logs an odds quote snapshot from a bookmaker feed.
func (ml *MarketLogger) LogOddsSnapshot(bookmaker, fighter1, fighter2 string, lastUpdate time.Time) {
	ml.WithFields(logrus.Fields{
		"bookmaker":   bookmaker,
		"fighter1":    fighter1,
		"fighter2":    fighter2,
		"last_update": lastUpdate.Unix(),
	}).Debug("Odds quote recorded")
}

// LogIngestionBatch logs a fight record ingestion batch.
func (ml *MarketLogger) LogIngestionBatch(source string, records, skipped int, durationMs float64) {
	ml.WithFields(logrus.Fields{
		"source":      source,
		"records":     records,
		"skipped":     skipped,
		"duration_ms": durationMs,
	}).Info("Fight record batch ingested")
}
