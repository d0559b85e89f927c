// Package logger builds the structured loggers shared by the analyzer,
// ingest and fightcard commands.
package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the root logger at the configured level. APP_ENV
// selects the output shape: JSON for the log pipeline in production,
// colored text with timestamps everywhere else.
func NewLogger(logLevel string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, parseErr := logrus.ParseLevel(logLevel)
	if parseErr != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if os.Getenv("APP_ENV") == "production" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: "message",
			},
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
			ForceColors:     true,
		})
	}

	if parseErr != nil {
		log.WithField("log_level", logLevel).Warn("Unknown log level, using info")
	}

	return log
}
