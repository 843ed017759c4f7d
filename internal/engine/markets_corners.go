package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/matchpulse/internal/models"
)

// cornersMarkets prices total-corners over/under lines from the observed
// corner rate, falling back to a league baseline in the opening minutes
func (e *Engine) cornersMarkets(ctx *marketContext) []models.MarketResult {
	snap := ctx.snap
	current := float64(snap.TotalCorners())

	var cornerRate float64
	if snap.Minute < 10 {
		cornerRate = e.cfg.CornersPer90 / 90
	} else {
		cornerRate = current / float64(snap.Minute)
	}

	expectedMore := cornerRate * ctx.timeRemaining
	conf := disciplineConfidence(snap.Minute, snap.TotalCorners())

	results := make([]models.MarketResult, 0, len(e.cfg.CornerThresholds))
	for _, threshold := range e.cfg.CornerThresholds {
		if current > threshold {
			results = append(results, ctx.result(models.MarketCorners,
				fmt.Sprintf("Corners Over %.1f", threshold), "Over",
				100, models.ConfidenceVeryHigh, models.StateComplete,
				fmt.Sprintf("Already hit: %d corners taken", int(current))))
			continue
		}

		needed := int(math.Ceil(threshold - current + lineEpsilon))
		underProb := poissonCDF(needed-1, expectedMore) * 100

		if underProb < 50 {
			results = append(results, ctx.result(models.MarketCorners,
				fmt.Sprintf("Corners Over %.1f", threshold), "Over",
				100-underProb, conf, models.StateActive,
				fmt.Sprintf("%d taken, expecting %.1f more", int(current), expectedMore)))
		} else {
			results = append(results, ctx.result(models.MarketCorners,
				fmt.Sprintf("Corners Under %.1f", threshold), "Under",
				underProb, conf, models.StateActive,
				fmt.Sprintf("%d taken, expecting %.1f more", int(current), expectedMore)))
		}
	}
	return results
}
