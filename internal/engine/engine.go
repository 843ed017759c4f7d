package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchpulse/internal/config"
	"github.com/yourusername/matchpulse/internal/metrics"
	"github.com/yourusername/matchpulse/internal/models"
)

// Engine evaluates one MatchSnapshot into a coherent set of market
// probabilities. It is safe for concurrent use across fixtures: Evaluate
// reads only its arguments and the immutable configuration.
type Engine struct {
	cfg    *config.EngineConfig
	logger *logrus.Logger

	// dixonColes switches BTTS pricing between the corrected joint
	// distribution and the independent-Poisson product
	dixonColes bool
}

// New creates a probability engine with the given tuning parameters
func New(cfg *config.EngineConfig, dixonColes bool, logger *logrus.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger, dixonColes: dixonColes}
}

// marketContext carries the shared per-evaluation signals every market
// calculator consumes: momentum-adjusted rates, remaining expectations,
// phase and the sanitized snapshot.
type marketContext struct {
	snap  *models.MatchSnapshot
	rates models.GoalRateProjection
	phase Phase
	mom   Momentum

	timeRemaining float64

	// per-minute rates after the momentum multiplier
	homeRate float64
	awayRate float64

	// expected remaining goals per side over the time left
	homeRemaining float64
	awayRemaining float64
}

// hasXG reports whether the provider supplied a real xG signal
func (c *marketContext) hasXG() bool {
	return c.snap.Home.XG > 0 || c.snap.Away.XG > 0
}

type marketCalculator struct {
	kind models.MarketKind
	fn   func(*Engine, *marketContext) []models.MarketResult
}

// calculators is the fixed evaluation order; it also fixes result ordering
// so identical snapshots produce identical output slices.
var calculators = []marketCalculator{
	{models.MarketMatchResult, (*Engine).matchResultMarket},
	{models.MarketTotalGoals, (*Engine).totalGoalsMarkets},
	{models.MarketBTTS, (*Engine).bttsMarket},
	{models.MarketCleanSheet, (*Engine).cleanSheetMarkets},
	{models.MarketTeamTotal, (*Engine).teamTotalMarkets},
	{models.MarketNextGoal, (*Engine).nextGoalMarket},
	{models.MarketCards, (*Engine).cardsMarkets},
	{models.MarketCorners, (*Engine).cornersMarkets},
}

// Evaluate computes every market for the snapshot. A failure in one market
// excludes that market from the result set but never aborts the others or
// the match as a whole.
func (e *Engine) Evaluate(snap *models.MatchSnapshot) []models.MarketResult {
	start := time.Now()
	ctx := e.buildContext(sanitizeSnapshot(snap))

	results := make([]models.MarketResult, 0, 32)
	for _, calc := range calculators {
		rs, err := e.computeMarket(calc, ctx)
		if err != nil {
			metrics.MarketFailuresTotal.WithLabelValues(string(calc.kind)).Inc()
			e.logger.WithFields(logrus.Fields{
				"fixture_id": ctx.snap.FixtureID,
				"market":     calc.kind,
			}).WithError(err).Warn("Market calculation failed, excluding from results")
			continue
		}
		results = append(results, rs...)
	}

	metrics.EvaluationsTotal.Inc()
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	metrics.MarketsComputed.Observe(float64(len(results)))

	return results
}

// computeMarket runs one calculator behind a recover barrier so a panic in
// a single market is converted into an error for the caller to skip
func (e *Engine) computeMarket(calc marketCalculator, ctx *marketContext) (results []models.MarketResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("market %s panicked: %v", calc.kind, r)
		}
	}()
	return calc.fn(e, ctx), nil
}

// buildContext derives the shared signals once per evaluation
func (e *Engine) buildContext(snap *models.MatchSnapshot) *marketContext {
	rates := ProjectGoalRates(snap, e.cfg)
	mom := MomentumFor(snap, e.cfg)
	phase := PhaseForMinute(snap.Minute, e.cfg)

	homeRate := rates.HomeRatePerMin * mom.HomeMultiplier()
	awayRate := rates.AwayRatePerMin * mom.AwayMultiplier()

	remaining := snap.TimeRemaining()

	return &marketContext{
		snap:          snap,
		rates:         rates,
		phase:         phase,
		mom:           mom,
		timeRemaining: remaining,
		homeRate:      homeRate,
		awayRate:      awayRate,
		homeRemaining: homeRate * remaining,
		awayRemaining: awayRate * remaining,
	}
}

// result builds a MarketResult with the fixture id filled in
func (c *marketContext) result(kind models.MarketKind, label, selection string, prob float64, conf models.ConfidenceTier, state models.MarketState, rationale string) models.MarketResult {
	return models.MarketResult{
		FixtureID:   c.snap.FixtureID,
		Market:      kind,
		Label:       label,
		Selection:   selection,
		Probability: prob,
		Confidence:  conf,
		State:       state,
		Rationale:   rationale,
	}
}
