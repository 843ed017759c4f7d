package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchpulse/internal/config"
	"github.com/yourusername/matchpulse/internal/engine"
	"github.com/yourusername/matchpulse/internal/models"
	"github.com/yourusername/matchpulse/internal/notifier"
	"github.com/yourusername/matchpulse/internal/provider"
)

type fakeSource struct {
	headers      []provider.FixtureHeader
	listErr      error
	snapshotErrs map[int64]error
}

func (f *fakeSource) LiveFixtures(ctx context.Context) ([]provider.FixtureHeader, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.headers, nil
}

func (f *fakeSource) Snapshot(ctx context.Context, header provider.FixtureHeader) (*models.MatchSnapshot, error) {
	if err := f.snapshotErrs[header.FixtureID]; err != nil {
		return nil, err
	}
	return &models.MatchSnapshot{
		FixtureID: header.FixtureID,
		LeagueID:  header.LeagueID,
		League:    header.League,
		HomeTeam:  header.HomeTeam,
		AwayTeam:  header.AwayTeam,
		Minute:    header.Minute,
		Home:      models.TeamStats{Goals: header.HomeGoals, XG: 1.2, Shots: 10, ShotsOnTarget: 4, Possession: 55},
		Away:      models.TeamStats{Goals: header.AwayGoals, XG: 0.6, Shots: 5, ShotsOnTarget: 2, Possession: 45},
		PolledAt:  time.Now().UTC(),
	}, nil
}

func (f *fakeSource) Name() string    { return "fake" }
func (f *fakeSource) IsEnabled() bool { return true }

type captureNotifier struct {
	mu     sync.Mutex
	alerts []notifier.Alert
}

func (c *captureNotifier) NotifyBestPick(ctx context.Context, alert notifier.Alert) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, alert)
	return nil
}

func (c *captureNotifier) Close() {}

func newTestScanner(source provider.LiveSource, notif notifier.Notifier, scannerCfg config.ScannerConfig, features config.FeaturesConfig) *ScannerService {
	engineCfg := config.DefaultEngineConfig()
	log := logrus.New()
	log.SetOutput(io.Discard)
	eng := engine.New(&engineCfg, true, log)
	return NewScannerService(source, eng, nil, notif, scannerCfg, features, log)
}

func liveHeaders() []provider.FixtureHeader {
	return []provider.FixtureHeader{
		{FixtureID: 1, LeagueID: 39, League: "Premier League", HomeTeam: "Arsenal", AwayTeam: "Brentford", Minute: 62, HomeGoals: 1, AwayGoals: 1},
		{FixtureID: 2, LeagueID: 140, League: "La Liga", HomeTeam: "Barcelona", AwayTeam: "Valencia", Minute: 31},
		{FixtureID: 3, LeagueID: 61, League: "Ligue 1", HomeTeam: "PSG", AwayTeam: "Lyon", Minute: 78, HomeGoals: 3},
	}
}

func TestRunScanEvaluatesAllFixtures(t *testing.T) {
	source := &fakeSource{headers: liveHeaders()}
	s := newTestScanner(source, &captureNotifier{},
		config.ScannerConfig{MaxConcurrent: 2, TopN: 3},
		config.FeaturesConfig{})

	summary, err := s.RunScan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.LiveFixtures)
	assert.Equal(t, 3, summary.FixturesEvaluated)
	assert.Equal(t, 0, summary.FixturesFailed)
}

func TestRunScanIsolatesFixtureFailures(t *testing.T) {
	source := &fakeSource{
		headers:      liveHeaders(),
		snapshotErrs: map[int64]error{2: errors.New("statistics unavailable")},
	}
	s := newTestScanner(source, &captureNotifier{},
		config.ScannerConfig{MaxConcurrent: 4, TopN: 3},
		config.FeaturesConfig{})

	summary, err := s.RunScan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FixturesEvaluated)
	assert.Equal(t, 1, summary.FixturesFailed)
}

func TestRunScanListFailure(t *testing.T) {
	source := &fakeSource{listErr: errors.New("provider down")}
	s := newTestScanner(source, &captureNotifier{},
		config.ScannerConfig{MaxConcurrent: 1}, config.FeaturesConfig{})

	_, err := s.RunScan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider down")
}

func TestRunScanAlertThresholds(t *testing.T) {
	source := &fakeSource{headers: liveHeaders()}
	capture := &captureNotifier{}

	// Probability bar set beyond anything the engine can produce: no alerts
	s := newTestScanner(source, capture,
		config.ScannerConfig{MaxConcurrent: 2, TopN: 3, AlertMinProbability: 101},
		config.FeaturesConfig{AlertsEnabled: true})

	summary, err := s.RunScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.AlertsSent)
	assert.Empty(t, capture.alerts)

	// With an attainable bar the hot picks go out
	s = newTestScanner(source, capture,
		config.ScannerConfig{MaxConcurrent: 2, TopN: 3, AlertMinProbability: 60},
		config.FeaturesConfig{AlertsEnabled: true})

	summary, err = s.RunScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, summary.AlertsSent, len(capture.alerts))
	assert.Greater(t, summary.AlertsSent, 0)
}

func TestRunScanAlertsDisabled(t *testing.T) {
	source := &fakeSource{headers: liveHeaders()}
	capture := &captureNotifier{}
	s := newTestScanner(source, capture,
		config.ScannerConfig{MaxConcurrent: 2, TopN: 3},
		config.FeaturesConfig{AlertsEnabled: false})

	summary, err := s.RunScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.AlertsSent)
	assert.Empty(t, capture.alerts)
}

func TestEvaluateFixtureProducesSlate(t *testing.T) {
	source := &fakeSource{headers: liveHeaders()}
	s := newTestScanner(source, &captureNotifier{},
		config.ScannerConfig{MaxConcurrent: 1, TopN: 3, MinProbability: 20},
		config.FeaturesConfig{})

	outcome, err := s.EvaluateFixture(context.Background(), liveHeaders()[0])
	require.NoError(t, err)

	require.NotNil(t, outcome.Slate.Best)
	assert.NotEmpty(t, outcome.Results)
	assert.LessOrEqual(t, len(outcome.Slate.TopN), 3)

	// ranked slate never contains resolved markets
	for _, r := range outcome.Slate.Ranked {
		assert.Equal(t, models.StateActive, r.State)
	}
}
