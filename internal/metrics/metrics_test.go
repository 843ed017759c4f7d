package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordScan(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name         string
		duration     float64
		liveFixtures int
	}{
		{
			name:         "quiet afternoon",
			duration:     0.8,
			liveFixtures: 2,
		},
		{
			name:         "saturday peak",
			duration:     4.2,
			liveFixtures: 38,
		},
		{
			name:         "no live matches",
			duration:     0.1,
			liveFixtures: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordScan(tt.duration, tt.liveFixtures)
			})
		})
	}
}

func TestRecordProviderRequest(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordProviderRequest("fixtures", "success", 0.25)
	})
	assert.NotPanics(t, func() {
		RecordProviderRequest("statistics", "error", 1.5)
	})
}

func TestMarketFailureCounter(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		MarketFailuresTotal.WithLabelValues("BTTS").Inc()
	})
}

func TestRecordAlerts(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordAlertSent()
		RecordAlertFailure()
	})
}

func TestRecordOutcomeSettled(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordOutcomeSettled("WON")
		RecordOutcomeSettled("LOST")
		RecordOutcomeSettled("VOID")
	})
}

func TestRecordCircuitBreakerTrip(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordCircuitBreakerTrip()
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordScan(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordScan(0.5, 12)
	}
}
