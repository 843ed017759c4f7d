// Package logger provides alert audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AlertLogger provides an audit trail for outbound alerts.
type AlertLogger struct {
	*logrus.Entry
}

// NewAlertLogger creates a new alert audit logger.
func NewAlertLogger(baseLogger *logrus.Logger) *AlertLogger {
	return &AlertLogger{
		Entry: baseLogger.WithField("component", "alerts"),
	}
}

// LogAlertSent logs a delivered alert.
func (al *AlertLogger) LogAlertSent(alertID string, fixtureID int64, market, selection string, probability, value float64, sentAt time.Time) {
	al.WithFields(logrus.Fields{
		"alert_id":    alertID,
		"fixture_id":  fixtureID,
		"market":      market,
		"selection":   selection,
		"probability": probability,
		"value":       value,
		"sent_at":     sentAt.UTC(),
	}).Info("Alert sent")
}

// LogAlertThrottled logs an alert suppressed by the per-fixture rate limit.
func (al *AlertLogger) LogAlertThrottled(fixtureID int64, market string, sinceLast time.Duration) {
	al.WithFields(logrus.Fields{
		"fixture_id": fixtureID,
		"market":     market,
		"since_last": sinceLast.Seconds(),
	}).Debug("Alert throttled")
}

// LogAlertFailure logs an alert that could not be delivered.
func (al *AlertLogger) LogAlertFailure(fixtureID int64, market string, err error) {
	al.WithFields(logrus.Fields{
		"fixture_id": fixtureID,
		"market":     market,
	}).WithError(err).Error("Alert delivery failed")
}
