package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/matchpulse/internal/config"
	"github.com/yourusername/matchpulse/internal/models"
)

func TestAttackMultiplierBounds(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		expected float64
	}{
		{"no events on this side", 0, 0.2},
		{"balanced", 0.5, 0.6},
		{"total dominance", 1, 1.0},
		{"above one stays capped", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, attackMultiplier(tt.ratio), 1e-12)
		})
	}
}

func TestMomentumForWindowFiltering(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	snap := &models.MatchSnapshot{
		Minute: 60,
		RecentEvents: []models.AttackEvent{
			{Minute: 54, Side: models.SideHome, Type: models.EventShot},            // before window
			{Minute: 55, Side: models.SideHome, Type: models.EventShot},            // exactly at cutoff, excluded
			{Minute: 56, Side: models.SideHome, Type: models.EventShot},            // counts
			{Minute: 58, Side: models.SideHome, Type: models.EventCorner},          // counts
			{Minute: 59, Side: models.SideAway, Type: models.EventDangerousAttack}, // counts
			{Minute: 61, Side: models.SideAway, Type: models.EventShot},            // in the future, excluded
		},
	}

	m := MomentumFor(snap, &cfg)
	assert.Equal(t, 2, m.HomeEvents)
	assert.Equal(t, 1, m.AwayEvents)
	assert.InDelta(t, 2.0/3.0, m.HomeRatio, 1e-12)
	assert.InDelta(t, 1.0/3.0, m.AwayRatio(), 1e-12)
}

func TestMomentumForEmptyWindow(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	snap := &models.MatchSnapshot{Minute: 30}

	m := MomentumFor(snap, &cfg)
	assert.Equal(t, 0.5, m.HomeRatio)
	assert.Equal(t, 0.5, m.AwayRatio())
	assert.InDelta(t, 0.6, m.HomeMultiplier(), 1e-12)
	assert.InDelta(t, 0.6, m.AwayMultiplier(), 1e-12)
}

func TestMomentumMultiplierNeverLeavesRange(t *testing.T) {
	cfg := config.DefaultEngineConfig()

	for home := 0; home <= 12; home++ {
		for away := 0; away <= 12; away++ {
			events := make([]models.AttackEvent, 0, home+away)
			for i := 0; i < home; i++ {
				events = append(events, models.AttackEvent{Minute: 58, Side: models.SideHome, Type: models.EventShot})
			}
			for i := 0; i < away; i++ {
				events = append(events, models.AttackEvent{Minute: 58, Side: models.SideAway, Type: models.EventShot})
			}
			m := MomentumFor(&models.MatchSnapshot{Minute: 60, RecentEvents: events}, &cfg)

			for _, mult := range []float64{m.HomeMultiplier(), m.AwayMultiplier()} {
				assert.GreaterOrEqual(t, mult, 0.2)
				assert.LessOrEqual(t, mult, 1.0)
			}
		}
	}
}
