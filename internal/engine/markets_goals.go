package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/matchpulse/internal/models"
)

// lineEpsilon nudges the ceil so an integer-valued line still demands a
// strictly higher count: at 2.0 with 1 scored, two more goals are needed
const lineEpsilon = 1e-9

// totalGoalsMarkets prices Over/Under for every configured total-goals line
func (e *Engine) totalGoalsMarkets(ctx *marketContext) []models.MarketResult {
	current := ctx.snap.TotalGoals()
	remaining := ctx.homeRemaining + ctx.awayRemaining
	expectedTotal := float64(current) + remaining

	results := make([]models.MarketResult, 0, len(e.cfg.GoalThresholds))
	for _, threshold := range e.cfg.GoalThresholds {
		if float64(current) > threshold {
			// Line already passed: terminal, no projection involved
			results = append(results, ctx.result(
				models.MarketTotalGoals,
				fmt.Sprintf("Total Goals Over %.1f", threshold),
				fmt.Sprintf("Over %.1f", threshold),
				100,
				models.ConfidenceVeryHigh,
				models.StateComplete,
				fmt.Sprintf("Already hit: %d goals scored", current),
			))
			continue
		}

		needed := int(math.Ceil(threshold - float64(current) + lineEpsilon))
		underProb := poissonCDF(needed-1, remaining) * 100
		overProb := 100 - underProb

		conf := goalsConfidence(ctx.snap.Minute, ctx.hasXG(), expectedTotal, threshold)
		rationale := fmt.Sprintf("Current: %d, expected total: %.1f, need %d more in %.0fmin",
			current, expectedTotal, needed, ctx.timeRemaining)

		if overProb > 50 {
			results = append(results, ctx.result(
				models.MarketTotalGoals,
				fmt.Sprintf("Total Goals Over %.1f", threshold),
				fmt.Sprintf("Over %.1f", threshold),
				overProb, conf, models.StateActive, rationale,
			))
		} else {
			results = append(results, ctx.result(
				models.MarketTotalGoals,
				fmt.Sprintf("Total Goals Under %.1f", threshold),
				fmt.Sprintf("Under %.1f", threshold),
				underProb, conf, models.StateActive, rationale,
			))
		}
	}

	return results
}

// teamTotalMarkets prices per-team goal lines with the same ceil/Poisson
// discipline as the aggregate market, applied to a single side's rate
func (e *Engine) teamTotalMarkets(ctx *marketContext) []models.MarketResult {
	results := make([]models.MarketResult, 0, len(e.cfg.TeamGoalThresholds)*2)

	sides := []struct {
		name      string
		goals     int
		remaining float64
	}{
		{ctx.snap.HomeTeam, ctx.snap.Home.Goals, ctx.homeRemaining},
		{ctx.snap.AwayTeam, ctx.snap.Away.Goals, ctx.awayRemaining},
	}

	for _, side := range sides {
		for _, threshold := range e.cfg.TeamGoalThresholds {
			if float64(side.goals) > threshold {
				results = append(results, ctx.result(
					models.MarketTeamTotal,
					fmt.Sprintf("%s Total Goals Over %.1f", side.name, threshold),
					fmt.Sprintf("Over %.1f", threshold),
					100,
					models.ConfidenceVeryHigh,
					models.StateComplete,
					fmt.Sprintf("Already scored %d goals", side.goals),
				))
				continue
			}

			needed := int(math.Ceil(threshold - float64(side.goals) + lineEpsilon))
			underProb := poissonCDF(needed-1, side.remaining) * 100
			overProb := 100 - underProb

			expected := float64(side.goals) + side.remaining
			conf := goalsConfidence(ctx.snap.Minute, ctx.hasXG(), expected, threshold)
			rationale := fmt.Sprintf("Current: %d, expected total: %.1f", side.goals, expected)

			if overProb > 50 {
				results = append(results, ctx.result(
					models.MarketTeamTotal,
					fmt.Sprintf("%s Total Goals Over %.1f", side.name, threshold),
					fmt.Sprintf("Over %.1f", threshold),
					overProb, conf, models.StateActive, rationale,
				))
			} else {
				results = append(results, ctx.result(
					models.MarketTeamTotal,
					fmt.Sprintf("%s Total Goals Under %.1f", side.name, threshold),
					fmt.Sprintf("Under %.1f", threshold),
					underProb, conf, models.StateActive, rationale,
				))
			}
		}
	}

	return results
}
