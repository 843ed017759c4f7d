package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yourusername/matchpulse/internal/models"
)

// SelectorOptions tunes the bet selector
type SelectorOptions struct {
	// TopN is how many picks the fallback list carries
	TopN int
	// MinProbability excludes long shots from the ranking, in percent
	MinProbability float64
}

// SelectBets ranks the active markets for one fixture and nominates the
// single best pick. Completed markets are never recommended. Ordering is
// fully deterministic: probability descending, then market specificity
// descending, then label ascending.
//
// MinProbability filters Ranked only. Best and TopN come from the full
// active ordering, so a caller whose probability bar excludes every pick
// still gets the fallback list.
func SelectBets(results []models.MarketResult, opts SelectorOptions) models.BetSlate {
	active := make([]models.MarketResult, 0, len(results))
	for _, r := range results {
		if !r.IsActive() {
			continue
		}
		enrichValue(&r)
		active = append(active, r)
	}

	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if a.Probability != b.Probability {
			return a.Probability > b.Probability
		}
		if a.Market.Specificity() != b.Market.Specificity() {
			return a.Market.Specificity() > b.Market.Specificity()
		}
		return a.Label < b.Label
	})

	ranked := make([]models.MarketResult, 0, len(active))
	for _, r := range active {
		if r.Probability < opts.MinProbability {
			continue
		}
		ranked = append(ranked, r)
	}

	slate := models.BetSlate{Ranked: ranked}
	if len(active) > 0 {
		slate.Best = &active[0]
	}

	n := opts.TopN
	if n <= 0 {
		n = 3
	}
	if n > len(active) {
		n = len(active)
	}
	slate.TopN = active[:n]

	return slate
}

// enrichValue fills the odds fields from the probability. The bookmaker
// margin shrinks for short-priced favourites, mirroring how overrounds are
// distributed in live markets.
func enrichValue(r *models.MarketResult) {
	if r.Probability <= 0 {
		return
	}

	prob := decimal.NewFromFloat(r.Probability).Div(decimal.NewFromInt(100))
	fair := decimal.NewFromInt(1).Div(prob)

	margin := decimal.NewFromFloat(0.10)
	switch {
	case r.Probability >= 80:
		margin = decimal.NewFromFloat(0.05)
	case r.Probability >= 60:
		margin = decimal.NewFromFloat(0.07)
	}

	est := fair.Mul(decimal.NewFromInt(1).Sub(margin))
	value := est.Mul(prob).Sub(decimal.NewFromInt(1))

	r.FairOdds = fair.Round(2).InexactFloat64()
	r.EstMarketOdds = est.Round(2).InexactFloat64()
	r.Value = value.Round(4).InexactFloat64()
}
