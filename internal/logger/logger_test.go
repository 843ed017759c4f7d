package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("not-a-level")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerParsesLevel(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestScanLoggerCompleted(t *testing.T) {
	log, buf := setupTestLogger()
	scanLogger := NewScanLogger(log)

	scanLogger.LogScanCompleted("scan_42", 18, 1, 3, 2150.0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "scan_42", logEntry["scan_id"])
	assert.Equal(t, "scanner", logEntry["component"])
	assert.Equal(t, float64(18), logEntry["fixtures_evaluated"])
}

func TestScanLoggerBestPick(t *testing.T) {
	log, buf := setupTestLogger()
	scanLogger := NewScanLogger(log)

	scanLogger.LogBestPick(867201, "TOTAL_GOALS", "Total Goals Over 2.5", "Over 2.5", 71.4, 0.021, "HIGH")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(867201), logEntry["fixture_id"])
	assert.Equal(t, "TOTAL_GOALS", logEntry["market"])
	assert.Equal(t, "HIGH", logEntry["confidence"])
}

func TestScanLoggerFixtureSkipped(t *testing.T) {
	log, buf := setupTestLogger()
	scanLogger := NewScanLogger(log)

	scanLogger.LogFixtureSkipped("scan_42", 867201, "statistics unavailable")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "statistics unavailable", logEntry["reason"])
}

func TestAlertLoggerSent(t *testing.T) {
	log, buf := setupTestLogger()
	alertLogger := NewAlertLogger(log)

	alertLogger.LogAlertSent(
		"alert_123",
		867201,
		"NEXT_GOAL",
		"Arsenal scores next",
		57.0,
		0.031,
		time.Date(2025, 4, 12, 15, 47, 0, 0, time.UTC),
	)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "alert_123", logEntry["alert_id"])
	assert.Equal(t, "alerts", logEntry["component"])
}

func TestAlertLoggerFailure(t *testing.T) {
	log, buf := setupTestLogger()
	alertLogger := NewAlertLogger(log)

	alertLogger.LogAlertFailure(867201, "BTTS", errors.New("telegram: too many requests"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "error", logEntry["level"])
	assert.Contains(t, logEntry["error"], "too many requests")
}

func TestLoggerJSONFormat(t *testing.T) {
	log, buf := setupTestLogger()
	scanLogger := NewScanLogger(log)

	scanLogger.LogScanStarted("scan_1", 7)

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	assert.NoError(t, err)
	assert.NotEmpty(t, logEntry)
}

func BenchmarkScanLoggerCompleted(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	scanLogger := NewScanLogger(log)

	for i := 0; i < b.N; i++ {
		scanLogger.LogScanCompleted("scan_42", 18, 1, 3, 2150.0)
	}
}
