// Package service provides the live scan orchestration.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchpulse/internal/config"
	"github.com/yourusername/matchpulse/internal/engine"
	"github.com/yourusername/matchpulse/internal/logger"
	"github.com/yourusername/matchpulse/internal/metrics"
	"github.com/yourusername/matchpulse/internal/models"
	"github.com/yourusername/matchpulse/internal/notifier"
	"github.com/yourusername/matchpulse/internal/provider"
	"github.com/yourusername/matchpulse/internal/repository"
)

// ScannerService runs the poll-evaluate-select-alert cycle over every live
// fixture. Fixtures are processed concurrently up to the configured bound;
// one failing fixture never aborts the rest of the scan.
type ScannerService struct {
	source   provider.LiveSource
	engine   *engine.Engine
	repos    *repository.Repositories
	notifier notifier.Notifier

	scannerCfg config.ScannerConfig
	features   config.FeaturesConfig

	scanLog *logger.ScanLogger
	logger  *logrus.Logger
}

// NewScannerService creates a new scanner service. repos may be nil when
// persistence is disabled.
func NewScannerService(
	source provider.LiveSource,
	eng *engine.Engine,
	repos *repository.Repositories,
	notif notifier.Notifier,
	scannerCfg config.ScannerConfig,
	features config.FeaturesConfig,
	baseLogger *logrus.Logger,
) *ScannerService {
	if notif == nil {
		notif = notifier.NoopNotifier{}
	}
	return &ScannerService{
		source:     source,
		engine:     eng,
		repos:      repos,
		notifier:   notif,
		scannerCfg: scannerCfg,
		features:   features,
		scanLog:    logger.NewScanLogger(baseLogger),
		logger:     baseLogger,
	}
}

// ScanSummary reports the outcome of one scan cycle
type ScanSummary struct {
	ScanID            uuid.UUID
	LiveFixtures      int
	FixturesEvaluated int
	FixturesFailed    int
	AlertsSent        int
	Duration          time.Duration
}

// FixtureOutcome is the full evaluation result for one fixture
type FixtureOutcome struct {
	Snapshot *models.MatchSnapshot
	Results  []models.MarketResult
	Slate    models.BetSlate
}

// RunScan executes one full scan cycle over all live fixtures
func (s *ScannerService) RunScan(ctx context.Context) (*ScanSummary, error) {
	start := time.Now()
	scanID := uuid.New()

	headers, err := s.source.LiveFixtures(ctx)
	if err != nil {
		metrics.RecordScanFailure()
		return nil, fmt.Errorf("failed to list live fixtures: %w", err)
	}

	s.scanLog.LogScanStarted(scanID.String(), len(headers))

	maxConcurrent := s.scannerCfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	sem := make(chan struct{}, maxConcurrent)

	var (
		mu        sync.Mutex
		evaluated int
		failed    int
		alerts    int
		wg        sync.WaitGroup
	)

	for _, header := range headers {
		wg.Add(1)
		go func(header provider.FixtureHeader) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			sentAlert, err := s.processFixture(ctx, scanID, header)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				metrics.FixtureFailuresTotal.Inc()
				s.scanLog.LogFixtureSkipped(scanID.String(), header.FixtureID, err.Error())
				return
			}
			evaluated++
			if sentAlert {
				alerts++
			}
		}(header)
	}
	wg.Wait()

	duration := time.Since(start)
	metrics.RecordScan(duration.Seconds(), len(headers))
	metrics.LastScanTimestamp.Set(float64(time.Now().Unix()))
	s.scanLog.LogScanCompleted(scanID.String(), evaluated, failed, alerts, float64(duration.Milliseconds()))

	return &ScanSummary{
		ScanID:            scanID,
		LiveFixtures:      len(headers),
		FixturesEvaluated: evaluated,
		FixturesFailed:    failed,
		AlertsSent:        alerts,
		Duration:          duration,
	}, nil
}

// EvaluateFixture pulls the full snapshot for one fixture and runs the
// engine and selector over it
func (s *ScannerService) EvaluateFixture(ctx context.Context, header provider.FixtureHeader) (*FixtureOutcome, error) {
	snap, err := s.source.Snapshot(ctx, header)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	results := s.engine.Evaluate(snap)
	slate := engine.SelectBets(results, engine.SelectorOptions{
		TopN:           s.scannerCfg.TopN,
		MinProbability: s.scannerCfg.MinProbability,
	})

	return &FixtureOutcome{Snapshot: snap, Results: results, Slate: slate}, nil
}

// processFixture evaluates one fixture and handles persistence and alerting
func (s *ScannerService) processFixture(ctx context.Context, scanID uuid.UUID, header provider.FixtureHeader) (bool, error) {
	outcome, err := s.EvaluateFixture(ctx, header)
	if err != nil {
		return false, err
	}

	s.scanLog.LogFixtureEvaluated(scanID.String(), header.FixtureID,
		header.HomeTeam, header.AwayTeam, outcome.Snapshot.Minute, len(outcome.Results))

	if best := outcome.Slate.Best; best != nil {
		metrics.BestPickProbability.WithLabelValues(
			fmt.Sprintf("%d", header.FixtureID), string(best.Market),
		).Set(best.Probability)
		s.scanLog.LogBestPick(header.FixtureID, string(best.Market), best.Label,
			best.Selection, best.Probability, best.Value, string(best.Confidence))
	}

	if s.features.PersistenceEnabled && s.repos != nil {
		if err := s.persistSlate(ctx, scanID, outcome); err != nil {
			// persistence trouble should not cost us the alert
			s.logger.WithError(err).WithField("fixture_id", header.FixtureID).
				Error("Failed to persist predictions")
		}
	}

	return s.maybeAlert(ctx, outcome), nil
}

// persistSlate writes the fixture's ranked slate as prediction rows
func (s *ScannerService) persistSlate(ctx context.Context, scanID uuid.UUID, outcome *FixtureOutcome) error {
	snap := outcome.Snapshot

	records := make([]*models.PredictionRecord, 0, len(outcome.Slate.Ranked))
	for i := range outcome.Slate.Ranked {
		r := outcome.Slate.Ranked[i]
		records = append(records, &models.PredictionRecord{
			ScanID:      scanID,
			FixtureID:   snap.FixtureID,
			LeagueID:    snap.LeagueID,
			League:      snap.League,
			HomeTeam:    snap.HomeTeam,
			AwayTeam:    snap.AwayTeam,
			Minute:      snap.Minute,
			HomeGoals:   snap.Home.Goals,
			AwayGoals:   snap.Away.Goals,
			Market:      r.Market,
			Label:       r.Label,
			Selection:   r.Selection,
			Probability: r.Probability,
			Confidence:  r.Confidence,
			State:       r.State,
			FairOdds:    r.FairOdds,
			EstOdds:     r.EstMarketOdds,
			Value:       r.Value,
			IsBest:      i == 0,
		})
	}

	return s.repos.Prediction.CreateBatch(ctx, records)
}

// maybeAlert sends the best pick when it clears the alert thresholds
func (s *ScannerService) maybeAlert(ctx context.Context, outcome *FixtureOutcome) bool {
	if !s.features.AlertsEnabled {
		return false
	}

	best := outcome.Slate.Best
	if best == nil {
		return false
	}
	if best.Probability < s.scannerCfg.AlertMinProbability {
		return false
	}
	// a zero threshold disables the value filter
	if s.scannerCfg.AlertMinValue > 0 && best.Value < s.scannerCfg.AlertMinValue {
		return false
	}

	snap := outcome.Snapshot
	err := s.notifier.NotifyBestPick(ctx, notifier.Alert{
		FixtureID: snap.FixtureID,
		League:    snap.League,
		HomeTeam:  snap.HomeTeam,
		AwayTeam:  snap.AwayTeam,
		Minute:    snap.Minute,
		HomeGoals: snap.Home.Goals,
		AwayGoals: snap.Away.Goals,
		Pick:      *best,
	})
	if err != nil {
		s.logger.WithError(err).WithField("fixture_id", snap.FixtureID).Error("Failed to send alert")
		return false
	}
	return true
}
