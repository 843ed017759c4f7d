package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/matchpulse/internal/config"
	"github.com/yourusername/matchpulse/internal/models"
)

func TestProjectGoalRatesEarlyGameGuard(t *testing.T) {
	cfg := config.DefaultEngineConfig()

	// Minute 10 with a big xG spike: extrapolating would be absurd, so the
	// league defaults apply and the projection is flagged unreliable
	snap := &models.MatchSnapshot{
		Minute: 10,
		Home:   models.TeamStats{XG: 0.8},
		Away:   models.TeamStats{XG: 0.1},
	}

	rates := ProjectGoalRates(snap, &cfg)
	assert.False(t, rates.Reliable)
	assert.InDelta(t, cfg.EarlyHomeXGPer90/90, rates.HomeRatePerMin, 1e-12)
	assert.InDelta(t, cfg.EarlyAwayXGPer90/90, rates.AwayRatePerMin, 1e-12)
}

func TestProjectGoalRatesObservedXG(t *testing.T) {
	cfg := config.DefaultEngineConfig()

	snap := &models.MatchSnapshot{
		Minute: 30,
		Home:   models.TeamStats{XG: 0.9},
		Away:   models.TeamStats{XG: 0.3},
	}

	rates := ProjectGoalRates(snap, &cfg)
	assert.True(t, rates.Reliable)
	assert.InDelta(t, 0.03, rates.HomeRatePerMin, 1e-12)
	assert.InDelta(t, 0.01, rates.AwayRatePerMin, 1e-12)
	assert.InDelta(t, 1.8, rates.RemainingHome(60), 1e-12)
}

func TestProjectGoalRatesShotProxy(t *testing.T) {
	cfg := config.DefaultEngineConfig()

	// No xG from the provider: the shot proxy stands in
	snap := &models.MatchSnapshot{
		Minute: 45,
		Home:   models.TeamStats{Shots: 10, ShotsOnTarget: 4},
		Away:   models.TeamStats{Shots: 5, ShotsOnTarget: 1},
	}

	rates := ProjectGoalRates(snap, &cfg)
	assert.True(t, rates.Reliable)
	assert.InDelta(t, (0.08*10+0.25*4)/45, rates.HomeRatePerMin, 1e-12)
	assert.InDelta(t, (0.08*5+0.25*1)/45, rates.AwayRatePerMin, 1e-12)
}
