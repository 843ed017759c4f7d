package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/matchpulse/internal/models"
)

// trailingBoost is the rate multiplier for a side chasing the game
const trailingBoost = 1.10

// nextGoalMarket prices Home/Away/None for the next goal. The three
// outcomes always sum to exactly 100: None is computed as the remainder
// rather than independently.
func (e *Engine) nextGoalMarket(ctx *marketContext) []models.MarketResult {
	snap := ctx.snap

	homeRate := ctx.homeRate
	awayRate := ctx.awayRate

	// A trailing side pushes harder for the next goal
	if snap.Home.Goals < snap.Away.Goals {
		homeRate *= trailingBoost
	} else if snap.Away.Goals < snap.Home.Goals {
		awayRate *= trailingBoost
	}

	totalRate := homeRate + awayRate
	expectedRemaining := totalRate * ctx.timeRemaining

	pGoal := 1 - math.Exp(-expectedRemaining)

	homeShare, awayShare := 0.5, 0.5
	if totalRate > 0 {
		homeShare = homeRate / totalRate
		awayShare = awayRate / totalRate
	}

	homeNext := pGoal * homeShare * 100
	awayNext := pGoal * awayShare * 100
	noGoal := 100 - homeNext - awayNext

	conf := nextGoalConfidence(snap.Minute, ctx.hasXG(), homeNext, awayNext, ctx.mom)

	return []models.MarketResult{
		ctx.result(models.MarketNextGoal, "Next Goal", fmt.Sprintf("%s scores next", snap.HomeTeam),
			homeNext, conf, models.StateActive,
			fmt.Sprintf("Rate %.3f/min, momentum share %.0f%%", homeRate, ctx.mom.HomeRatio*100)),
		ctx.result(models.MarketNextGoal, "Next Goal", fmt.Sprintf("%s scores next", snap.AwayTeam),
			awayNext, conf, models.StateActive,
			fmt.Sprintf("Rate %.3f/min, momentum share %.0f%%", awayRate, ctx.mom.AwayRatio()*100)),
		ctx.result(models.MarketNextGoal, "Next Goal", "No more goals",
			noGoal, conf, models.StateActive,
			fmt.Sprintf("Expected remaining goals %.2f in %.0fmin", expectedRemaining, ctx.timeRemaining)),
	}
}
