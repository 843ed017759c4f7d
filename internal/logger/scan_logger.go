// Package logger provides scan-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ScanLogger provides dedicated logging for scan cycle operations.
type ScanLogger struct {
	*logrus.Entry
}

// NewScanLogger creates a new scan logger.
func NewScanLogger(baseLogger *logrus.Logger) *ScanLogger {
	return &ScanLogger{
		Entry: baseLogger.WithField("component", "scanner"),
	}
}

// LogScanStarted logs the start of a scan cycle.
func (sl *ScanLogger) LogScanStarted(scanID string, liveFixtures int) {
	sl.WithFields(logrus.Fields{
		"scan_id":       scanID,
		"live_fixtures": liveFixtures,
	}).Info("Scan cycle started")
}

// LogScanCompleted logs a completed scan cycle.
func (sl *ScanLogger) LogScanCompleted(scanID string, fixturesEvaluated, fixturesFailed, alertsSent int, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"scan_id":            scanID,
		"fixtures_evaluated": fixturesEvaluated,
		"fixtures_failed":    fixturesFailed,
		"alerts_sent":        alertsSent,
		"scan_duration_ms":   durationMs,
	}).Info("Scan cycle completed")
}

// LogFixtureEvaluated logs the evaluation outcome for a single fixture.
func (sl *ScanLogger) LogFixtureEvaluated(scanID string, fixtureID int64, homeTeam, awayTeam string, minute, marketsComputed int) {
	sl.WithFields(logrus.Fields{
		"scan_id":          scanID,
		"fixture_id":       fixtureID,
		"home_team":        homeTeam,
		"away_team":        awayTeam,
		"minute":           minute,
		"markets_computed": marketsComputed,
	}).Debug("Fixture evaluated")
}

// LogBestPick logs the top-ranked pick for a fixture.
func (sl *ScanLogger) LogBestPick(fixtureID int64, market, label, selection string, probability, value float64, confidence string) {
	sl.WithFields(logrus.Fields{
		"fixture_id":  fixtureID,
		"market":      market,
		"label":       label,
		"selection":   selection,
		"probability": probability,
		"value":       value,
		"confidence":  confidence,
	}).Info("Best pick selected")
}

// LogFixtureSkipped logs a fixture dropped from a scan cycle.
func (sl *ScanLogger) LogFixtureSkipped(scanID string, fixtureID int64, reason string) {
	sl.WithFields(logrus.Fields{
		"scan_id":    scanID,
		"fixture_id": fixtureID,
		"reason":     reason,
	}).Warn("Fixture skipped")
}
