package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/matchpulse/internal/models"
)

// cardsMarkets prices total-cards over/under lines. Card counts are
// booking points style: a red counts double. The card rate is projected
// from the observed foul rate, since fouls accumulate fast enough to be a
// usable sample long before cards do.
func (e *Engine) cardsMarkets(ctx *marketContext) []models.MarketResult {
	snap := ctx.snap
	current := float64(snap.TotalCards())

	var cardRate float64 // cards per minute
	if snap.Minute < 10 {
		cardRate = e.cfg.CardsPer90 / 90
	} else {
		foulRate := float64(snap.TotalFouls()) / float64(snap.Minute)

		foulsPerCard := e.cfg.FoulsPerCard
		rawCards := snap.Home.RawCards() + snap.Away.RawCards()
		if snap.Minute > e.cfg.ReliabilityThresholdMinutes && rawCards > 0 {
			// enough of the match gone to trust this referee's own ratio
			foulsPerCard = float64(snap.TotalFouls()) / float64(rawCards)
		}
		if foulsPerCard <= 0 {
			foulsPerCard = e.cfg.FoulsPerCard
		}
		cardRate = foulRate / foulsPerCard
	}

	// bookings cluster late as legs tire and games break up
	switch {
	case snap.Minute >= 75:
		cardRate *= 1.3
	case snap.Minute >= 60:
		cardRate *= 1.15
	}

	expectedMore := cardRate * ctx.timeRemaining
	conf := disciplineConfidence(snap.Minute, snap.TotalFouls())

	results := make([]models.MarketResult, 0, len(e.cfg.CardThresholds))
	for _, threshold := range e.cfg.CardThresholds {
		if current > threshold {
			results = append(results, ctx.result(models.MarketCards,
				fmt.Sprintf("Cards Over %.1f", threshold), "Over",
				100, models.ConfidenceVeryHigh, models.StateComplete,
				fmt.Sprintf("Already hit: %d cards shown", int(current))))
			continue
		}

		needed := int(math.Ceil(threshold - current + lineEpsilon))
		underProb := poissonCDF(needed-1, expectedMore) * 100

		if underProb < 50 {
			results = append(results, ctx.result(models.MarketCards,
				fmt.Sprintf("Cards Over %.1f", threshold), "Over",
				100-underProb, conf, models.StateActive,
				fmt.Sprintf("%d shown, expecting %.1f more", int(current), expectedMore)))
		} else {
			results = append(results, ctx.result(models.MarketCards,
				fmt.Sprintf("Cards Under %.1f", threshold), "Under",
				underProb, conf, models.StateActive,
				fmt.Sprintf("%d shown, expecting %.1f more", int(current), expectedMore)))
		}
	}
	return results
}
