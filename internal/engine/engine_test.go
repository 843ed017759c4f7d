package engine

import (
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchpulse/internal/metrics"
	"github.com/yourusername/matchpulse/internal/models"
)

func liveSnapshot() *models.MatchSnapshot {
	return &models.MatchSnapshot{
		FixtureID: 867201,
		LeagueID:  39,
		League:    "Premier League",
		HomeTeam:  "Arsenal",
		AwayTeam:  "Brentford",
		Minute:    62,
		Home: models.TeamStats{
			Goals: 1, XG: 1.45, Shots: 13, ShotsOnTarget: 6,
			Corners: 5, YellowCards: 1, Fouls: 8, Possession: 58, DangerousAttacks: 41,
		},
		Away: models.TeamStats{
			Goals: 1, XG: 0.62, Shots: 6, ShotsOnTarget: 2,
			Corners: 3, YellowCards: 2, Fouls: 11, Possession: 42, DangerousAttacks: 24,
		},
		RecentEvents: []models.AttackEvent{
			{Minute: 58, Side: models.SideHome, Type: models.EventShot},
			{Minute: 59, Side: models.SideHome, Type: models.EventDangerousAttack},
			{Minute: 60, Side: models.SideHome, Type: models.EventCorner},
			{Minute: 61, Side: models.SideAway, Type: models.EventShot},
		},
		PolledAt: time.Date(2025, 4, 12, 15, 47, 0, 0, time.UTC),
	}
}

func TestEvaluateCoversEveryMarket(t *testing.T) {
	e := newTestEngine()

	results := e.Evaluate(liveSnapshot())
	require.NotEmpty(t, results)

	seen := map[models.MarketKind]bool{}
	for _, r := range results {
		seen[r.Market] = true
		assert.Equal(t, int64(867201), r.FixtureID)
		assert.GreaterOrEqual(t, r.Probability, 0.0)
		assert.LessOrEqual(t, r.Probability, 100.0+1e-9)
	}

	for _, kind := range models.AllMarketKinds {
		assert.True(t, seen[kind], "missing market %s", kind)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	e := newTestEngine()
	snap := liveSnapshot()

	first := e.Evaluate(snap)
	second := e.Evaluate(snap)

	assert.Equal(t, first, second)
}

func TestEvaluateMutuallyExclusiveSetsSum(t *testing.T) {
	e := newTestEngine()
	results := e.Evaluate(liveSnapshot())

	sums := map[models.MarketKind]float64{}
	for _, r := range results {
		if r.Market == models.MarketMatchResult || r.Market == models.MarketNextGoal {
			sums[r.Market] += r.Probability
		}
	}

	assert.InDelta(t, 100.0, sums[models.MarketMatchResult], 1e-6)
	assert.InDelta(t, 100.0, sums[models.MarketNextGoal], 1e-6)
}

func TestEvaluateSurvivesGarbageInput(t *testing.T) {
	e := newTestEngine()

	snap := &models.MatchSnapshot{
		FixtureID: 5,
		Minute:    -20,
		Home: models.TeamStats{
			Goals: -3, XG: math.NaN(), Shots: -1, Possession: 180,
		},
		Away: models.TeamStats{
			XG: math.Inf(1), Fouls: -9,
		},
	}

	results := e.Evaluate(snap)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.False(t, math.IsNaN(r.Probability), "%s %s", r.Label, r.Selection)
		assert.GreaterOrEqual(t, r.Probability, 0.0)
		assert.LessOrEqual(t, r.Probability, 100.0+1e-9)
	}
}

func TestEvaluateEarlyGameStaysConservative(t *testing.T) {
	e := newTestEngine()

	// Minute 10, one freak early chance: projected goal expectations must
	// reflect the league default, not an extrapolated 6+ goals
	snap := &models.MatchSnapshot{
		FixtureID: 7, Minute: 10, HomeTeam: "H", AwayTeam: "A",
		Home: models.TeamStats{XG: 0.8, Shots: 4, ShotsOnTarget: 3},
	}
	ctx := e.buildContext(sanitizeSnapshot(snap))

	assert.False(t, ctx.rates.Reliable)
	assert.LessOrEqual(t, ctx.homeRemaining, e.cfg.EarlyHomeXGPer90)
	assert.LessOrEqual(t, ctx.awayRemaining, e.cfg.EarlyAwayXGPer90)
}

func TestEvaluateIsolatesFailingMarket(t *testing.T) {
	original := calculators
	defer func() { calculators = original }()

	broken := make([]marketCalculator, len(original))
	copy(broken, original)
	for i := range broken {
		if broken[i].kind == models.MarketBTTS {
			broken[i].fn = func(*Engine, *marketContext) []models.MarketResult {
				panic("joint distribution blew up")
			}
		}
	}
	calculators = broken

	failures := metrics.MarketFailuresTotal.WithLabelValues(string(models.MarketBTTS))
	before := testutil.ToFloat64(failures)

	e := newTestEngine()
	results := e.Evaluate(liveSnapshot())

	seen := map[models.MarketKind]bool{}
	for _, r := range results {
		seen[r.Market] = true
	}
	assert.False(t, seen[models.MarketBTTS], "failed market must be excluded")
	for _, kind := range models.AllMarketKinds {
		if kind == models.MarketBTTS {
			continue
		}
		assert.True(t, seen[kind], "market %s must survive the failure", kind)
	}

	assert.Equal(t, before+1, testutil.ToFloat64(failures))
}

func TestComputeMarketConvertsPanicToError(t *testing.T) {
	e := newTestEngine()
	ctx := e.buildContext(sanitizeSnapshot(liveSnapshot()))

	calc := marketCalculator{
		kind: models.MarketCorners,
		fn: func(*Engine, *marketContext) []models.MarketResult {
			panic("bad corner rate")
		},
	}

	results, err := e.computeMarket(calc, ctx)
	assert.Nil(t, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad corner rate")
}

func TestEvaluateDoesNotMutateSnapshot(t *testing.T) {
	e := newTestEngine()

	snap := liveSnapshot()
	snap.Home.XG = math.NaN()
	e.Evaluate(snap)

	assert.True(t, math.IsNaN(snap.Home.XG), "sanitization must work on a copy")
}
