package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/matchpulse/internal/models"
)

// bttsMarket prices Both Teams To Score. Once both sides have scored the
// market is resolved and reported COMPLETE, never as a forward-looking
// probability. Otherwise the probability that each remaining side scores
// at least once comes from its remaining expectation; with Dixon-Coles
// active and neither side yet scoring, the joint corrected mass over
// (i>=1, j>=1) replaces the independent product.
func (e *Engine) bttsMarket(ctx *marketContext) []models.MarketResult {
	snap := ctx.snap
	homeScored := snap.Home.Goals > 0
	awayScored := snap.Away.Goals > 0

	if homeScored && awayScored {
		return []models.MarketResult{ctx.result(
			models.MarketBTTS, "Both Teams To Score", "Yes",
			100, models.ConfidenceVeryHigh, models.StateComplete,
			"Both teams already scored",
		)}
	}

	var yes float64
	switch {
	case !homeScored && !awayScored:
		if e.dixonColes && e.cfg.DixonColesRho != 0 {
			grid := NewScoreGrid(ctx.homeRemaining, ctx.awayRemaining, e.cfg.DixonColesRho)
			yes = grid.BTTSYes() * 100
		} else {
			pHome := 1 - math.Exp(-ctx.homeRemaining)
			pAway := 1 - math.Exp(-ctx.awayRemaining)
			yes = pHome * pAway * 100
		}
	case homeScored:
		// Only the away side still needs one; the joint correction has
		// nothing to correlate and the marginal is exact
		yes = (1 - math.Exp(-ctx.awayRemaining)) * 100
	default:
		yes = (1 - math.Exp(-ctx.homeRemaining)) * 100
	}

	yes += ctx.phase.Bias

	norm := Normalize([]float64{yes, 100 - yes}, 1, 100)
	yes, no := norm[0], norm[1]

	conf := goalsConfidence(snap.Minute, ctx.hasXG(), ctx.homeRemaining+ctx.awayRemaining, 1)
	rationale := fmt.Sprintf("Remaining xG %.2f/%.2f, phase %s (%+.0f)",
		ctx.homeRemaining, ctx.awayRemaining, ctx.phase.State, ctx.phase.Bias)

	if yes > 50 {
		return []models.MarketResult{ctx.result(
			models.MarketBTTS, "Both Teams To Score", "Yes",
			yes, conf, models.StateActive, rationale,
		)}
	}
	return []models.MarketResult{ctx.result(
		models.MarketBTTS, "Both Teams To Score", "No",
		no, conf, models.StateActive, rationale,
	)}
}

// cleanSheetMarkets prices each side keeping the opponent scoreless for
// the rest of the match. A clean sheet already conceded is a resolved
// outcome and reported COMPLETE with zero probability.
func (e *Engine) cleanSheetMarkets(ctx *marketContext) []models.MarketResult {
	snap := ctx.snap

	sides := []struct {
		name         string
		conceded     int
		oppRemaining float64
		oppName      string
	}{
		{snap.HomeTeam, snap.Away.Goals, ctx.awayRemaining, snap.AwayTeam},
		{snap.AwayTeam, snap.Home.Goals, ctx.homeRemaining, snap.HomeTeam},
	}

	results := make([]models.MarketResult, 0, 2)
	for _, side := range sides {
		label := fmt.Sprintf("%s Clean Sheet", side.name)
		if side.conceded > 0 {
			results = append(results, ctx.result(
				models.MarketCleanSheet, label, "Clean Sheet",
				0, models.ConfidenceVeryHigh, models.StateComplete,
				fmt.Sprintf("%s already scored %d", side.oppName, side.conceded),
			))
			continue
		}

		prob := math.Exp(-side.oppRemaining) * 100
		conf := goalsConfidence(snap.Minute, ctx.hasXG(), side.oppRemaining, 0.5)
		results = append(results, ctx.result(
			models.MarketCleanSheet, label, "Clean Sheet",
			prob, conf, models.StateActive,
			fmt.Sprintf("%s remaining xG %.2f, %.0fmin left", side.oppName, side.oppRemaining, ctx.timeRemaining),
		))
	}

	return results
}
