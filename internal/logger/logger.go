// Package logger builds the structured logrus loggers the scanner uses.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger at the requested level. An unknown level name
// falls back to info rather than failing startup.
func NewLogger(logLevel string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	// Production emits JSON for log aggregation; everywhere else a colored
	// text format is easier to read during a live scan
	if os.Getenv("ENVIRONMENT") == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return log
}
