package engine

import (
	"github.com/yourusername/matchpulse/internal/config"
	"github.com/yourusername/matchpulse/internal/models"
)

// Momentum is the trailing-window attacking tally per side. It is
// re-derived from the snapshot's recent-event history on every call rather
// than mutated incrementally, so it is a pure function of
// (snapshot, current minute) with no hidden state.
type Momentum struct {
	HomeEvents int
	AwayEvents int
	// HomeRatio is home's share of windowed events, 0.5 when no events
	// fall inside the window
	HomeRatio float64
}

// AwayRatio is the away side's share of windowed events
func (m Momentum) AwayRatio() float64 {
	return 1 - m.HomeRatio
}

// HomeMultiplier returns the multiplicative rate adjustment for the home side
func (m Momentum) HomeMultiplier() float64 {
	return attackMultiplier(m.HomeRatio)
}

// AwayMultiplier returns the multiplicative rate adjustment for the away side
func (m Momentum) AwayMultiplier() float64 {
	return attackMultiplier(m.AwayRatio())
}

// attackMultiplier converts a momentum ratio into a rate multiplier.
// Momentum is a dimensionless ratio and goal rate is goals/minute, so the
// adjustment must be multiplicative; adding the two units together inflated
// rates more than fourfold before this was fixed.
func attackMultiplier(ratio float64) float64 {
	return clamp(0.6+(ratio-0.5)*0.8, 0.2, 1.0)
}

// MomentumFor tallies shots, dangerous attacks and corners over the
// trailing window. Events at or before (current minute - window) are
// excluded from the tally.
func MomentumFor(snap *models.MatchSnapshot, cfg *config.EngineConfig) Momentum {
	cutoff := snap.Minute - cfg.MomentumWindowMinutes

	home, away := 0, 0
	for _, ev := range snap.RecentEvents {
		if ev.Minute <= cutoff || ev.Minute > snap.Minute {
			continue
		}
		switch ev.Type {
		case models.EventShot, models.EventDangerousAttack, models.EventCorner:
		default:
			continue
		}
		if ev.Side == models.SideHome {
			home++
		} else {
			away++
		}
	}

	m := Momentum{HomeEvents: home, AwayEvents: away, HomeRatio: 0.5}
	if home+away > 0 {
		m.HomeRatio = float64(home) / float64(home+away)
	}
	return m
}
