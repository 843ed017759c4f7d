package engine

import (
	"github.com/yourusername/matchpulse/internal/config"
	"github.com/yourusername/matchpulse/internal/models"
)

// ProjectGoalRates derives a per-minute scoring rate for each side from the
// snapshot. Past the reliability threshold it extrapolates the observed
// cumulative xG; before it, a single early chance would imply an absurd
// full-match rate (minute 10 with xG 0.8 extrapolates to 6.4 remaining
// goals), so conservative league defaults are used instead and the
// projection is flagged unreliable.
func ProjectGoalRates(snap *models.MatchSnapshot, cfg *config.EngineConfig) models.GoalRateProjection {
	minute := snap.Minute

	if minute > cfg.ReliabilityThresholdMinutes {
		return models.GoalRateProjection{
			HomeRatePerMin: xgSignal(snap.Home, cfg) / float64(minute),
			AwayRatePerMin: xgSignal(snap.Away, cfg) / float64(minute),
			Reliable:       true,
		}
	}

	return models.GoalRateProjection{
		HomeRatePerMin: cfg.EarlyHomeXGPer90 / 90,
		AwayRatePerMin: cfg.EarlyAwayXGPer90 / 90,
		Reliable:       false,
	}
}

// xgSignal returns the side's cumulative xG, falling back to a shot-based
// proxy when the provider reports no xG for this fixture
func xgSignal(t models.TeamStats, cfg *config.EngineConfig) float64 {
	if t.XG > 0 {
		return t.XG
	}
	return cfg.XGProxyShotWeight*float64(t.Shots) +
		cfg.XGProxyOnTargetWeight*float64(t.ShotsOnTarget)
}
