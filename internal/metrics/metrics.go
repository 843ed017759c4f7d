// Package metrics provides the centralized Prometheus metrics registry for
// the scanner.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EvaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "evaluations_total",
		Help:      "Total number of snapshot evaluations",
	})
	MarketFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "market_failures_total",
		Help:      "Market calculations that failed and were excluded",
	}, []string{"market"})
	ScansTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "scans_total",
		Help:      "Total number of completed scan cycles",
	})
	ScanFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "scan_failures_total",
		Help:      "Scan cycles that failed before completing",
	})
	FixtureFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "fixture_failures_total",
		Help:      "Fixtures skipped within a scan due to an error",
	})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "provider_requests_total",
		Help:      "Requests to the live data provider by endpoint and outcome",
	}, []string{"endpoint", "status"})
	ProviderCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "provider_cache_hits_total",
		Help:      "Provider responses served from the local TTL cache",
	})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of provider circuit breaker trips",
	})
	AlertsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "alerts_sent_total",
		Help:      "Telegram alerts delivered",
	})
	AlertFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "alert_failures_total",
		Help:      "Telegram alerts that failed to send",
	})
	PredictionsPersistedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "predictions_persisted_total",
		Help:      "Prediction rows written to storage",
	})
	OutcomesSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchpulse",
		Name:      "outcomes_settled_total",
		Help:      "Prediction outcomes settled, partitioned by result",
	}, []string{"result"})
)

// Gauge metrics
var (
	LiveFixtures = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchpulse",
		Name:      "live_fixtures",
		Help:      "Number of live fixtures seen in the most recent scan",
	})
	LastScanTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchpulse",
		Name:      "last_scan_timestamp_seconds",
		Help:      "Unix time of the last completed scan cycle",
	})
	BestPickProbability = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "matchpulse",
		Name:      "best_pick_probability",
		Help:      "Probability of the current best pick per fixture",
	}, []string{"fixture_id", "market"})
)

// Histogram metrics
var (
	EvaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchpulse",
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of a single snapshot evaluation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	MarketsComputed = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchpulse",
		Name:      "markets_computed",
		Help:      "Market results produced per evaluation",
		Buckets:   []float64{5, 10, 15, 20, 25, 30, 40},
	})
	ScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchpulse",
		Name:      "scan_duration_seconds",
		Help:      "Duration of a full scan cycle in seconds",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60},
	})
	ProviderRequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchpulse",
		Name:      "provider_request_duration_seconds",
		Help:      "Latency of provider requests in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(EvaluationsTotal)
		registry.MustRegister(MarketFailuresTotal)
		registry.MustRegister(ScansTotal)
		registry.MustRegister(ScanFailuresTotal)
		registry.MustRegister(FixtureFailuresTotal)
		registry.MustRegister(ProviderRequestsTotal)
		registry.MustRegister(ProviderCacheHitsTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(AlertsSentTotal)
		registry.MustRegister(AlertFailuresTotal)
		registry.MustRegister(PredictionsPersistedTotal)
		registry.MustRegister(OutcomesSettledTotal)

		// Register gauge metrics
		registry.MustRegister(LiveFixtures)
		registry.MustRegister(LastScanTimestamp)
		registry.MustRegister(BestPickProbability)

		// Register histogram metrics
		registry.MustRegister(EvaluationDuration)
		registry.MustRegister(MarketsComputed)
		registry.MustRegister(ScanDuration)
		registry.MustRegister(ProviderRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordScan records a completed scan cycle.
func RecordScan(durationSeconds float64, liveFixtures int) {
	ScansTotal.Inc()
	ScanDuration.Observe(durationSeconds)
	LiveFixtures.Set(float64(liveFixtures))
}

// RecordScanFailure records a scan cycle that aborted.
func RecordScanFailure() {
	ScanFailuresTotal.Inc()
}

// RecordProviderRequest records one provider call by endpoint and outcome.
func RecordProviderRequest(endpoint, status string, durationSeconds float64) {
	ProviderRequestsTotal.WithLabelValues(endpoint, status).Inc()
	ProviderRequestDuration.Observe(durationSeconds)
}

// RecordCacheHit records a provider response served from cache.
func RecordCacheHit() {
	ProviderCacheHitsTotal.Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// RecordAlertSent records a delivered Telegram alert.
func RecordAlertSent() {
	AlertsSentTotal.Inc()
}

// RecordAlertFailure records a Telegram alert that could not be sent.
func RecordAlertFailure() {
	AlertFailuresTotal.Inc()
}

// RecordOutcomeSettled records one prediction graded against a final score.
func RecordOutcomeSettled(result string) {
	OutcomesSettledTotal.WithLabelValues(result).Inc()
}

// RecordPredictionPersisted records one prediction row written to storage.
func RecordPredictionPersisted() {
	PredictionsPersistedTotal.Inc()
}
