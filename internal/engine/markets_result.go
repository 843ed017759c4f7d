package engine

import (
	"fmt"

	"github.com/yourusername/matchpulse/internal/models"
)

// matchResultMarket prices 1X2. Base probabilities are seeded from the
// size of the current goal differential, adjusted additively by remaining
// xG difference, possession and dangerous-attack share, plus a time boost
// that grows quadratically with the clock: a late lead is much harder to
// overturn than an early one. Raw scores are floored BEFORE normalization
// and never clamped afterwards, which is what keeps the set summing to 100.
func (e *Engine) matchResultMarket(ctx *marketContext) []models.MarketResult {
	snap := ctx.snap
	homeGoals, awayGoals := snap.Home.Goals, snap.Away.Goals
	lead := homeGoals - awayGoals

	baseHome, baseDraw, baseAway := resultSeed(lead)

	// Remaining-xG difference, bounded so a single lopsided signal cannot
	// swamp the scoreline
	xgDiff := ctx.homeRemaining - ctx.awayRemaining
	xgAdj := clamp(xgDiff*10, -20, 20)

	possAdj := clamp((snap.Home.Possession-50)*0.2, -10, 10)

	attackAdj := 0.0
	attacks := snap.Home.DangerousAttacks + snap.Away.DangerousAttacks
	if attacks > 0 {
		ratio := float64(snap.Home.DangerousAttacks) / float64(attacks)
		attackAdj = clamp((ratio-0.5)*20, -10, 10)
	}

	elapsed := float64(snap.Minute) / 90
	if elapsed > 1 {
		elapsed = 1
	}
	timeBoost := 30 * elapsed * elapsed

	home := baseHome + xgAdj + possAdj + attackAdj
	away := baseAway - xgAdj - possAdj - attackAdj
	draw := baseDraw - absFloat(xgAdj)*0.3

	if lead > 0 {
		home += timeBoost
	} else if lead < 0 {
		away += timeBoost
	}

	norm := Normalize([]float64{home, draw, away}, e.cfg.ProbabilityFloor, 100)

	conf := resultConfidence(snap.Minute, lead, ctx.hasXG())
	status := fmt.Sprintf("%d-%d, %.0fmin left", homeGoals, awayGoals, ctx.timeRemaining)

	return []models.MarketResult{
		ctx.result(models.MarketMatchResult, "Match Result", "1 (Home Win)", norm[0], conf, models.StateActive,
			fmt.Sprintf("Score %s, remaining xG diff %+.1f", status, xgDiff)),
		ctx.result(models.MarketMatchResult, "Match Result", "X (Draw)", norm[1], conf, models.StateActive,
			fmt.Sprintf("Score %s", status)),
		ctx.result(models.MarketMatchResult, "Match Result", "2 (Away Win)", norm[2], conf, models.StateActive,
			fmt.Sprintf("Score %s, remaining xG diff %+.1f", status, -xgDiff)),
	}
}

// resultSeed maps the goal differential magnitude to base 1X2 scores.
// Larger leads seed progressively stronger favourites; the values are raw
// scores, not probabilities, and only become probabilities after the
// floor-then-normalize step.
func resultSeed(lead int) (home, draw, away float64) {
	magnitude := lead
	if magnitude < 0 {
		magnitude = -magnitude
	}

	var leader, mid, trailer float64
	switch {
	case magnitude == 0:
		return 35, 30, 35
	case magnitude == 1:
		leader, mid, trailer = 70, 20, 10
	case magnitude == 2:
		leader, mid, trailer = 80, 14, 6
	default:
		leader, mid, trailer = 88, 9, 3
	}

	if lead > 0 {
		return leader, mid, trailer
	}
	return trailer, mid, leader
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
