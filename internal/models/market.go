package models

// MarketKind is the closed set of betting markets the engine computes.
// Using a typed constant set keeps market identity comparisons exhaustive
// and compiler-visible instead of relying on free-form strings.
type MarketKind string

const (
	MarketMatchResult MarketKind = "MATCH_RESULT"
	MarketTotalGoals  MarketKind = "TOTAL_GOALS"
	MarketBTTS        MarketKind = "BTTS"
	MarketCleanSheet  MarketKind = "CLEAN_SHEET"
	MarketTeamTotal   MarketKind = "TEAM_TOTAL"
	MarketNextGoal    MarketKind = "NEXT_GOAL"
	MarketCards       MarketKind = "CARDS"
	MarketCorners     MarketKind = "CORNERS"
)

// AllMarketKinds lists every market the engine knows about
var AllMarketKinds = []MarketKind{
	MarketMatchResult,
	MarketTotalGoals,
	MarketBTTS,
	MarketCleanSheet,
	MarketTeamTotal,
	MarketNextGoal,
	MarketCards,
	MarketCorners,
}

// Specificity ranks how narrow a market is. At equal probability the
// selector prefers the narrower market, so the ordering here is the
// deterministic tie-break rule.
func (k MarketKind) Specificity() int {
	switch k {
	case MarketTeamTotal:
		return 7
	case MarketCleanSheet:
		return 6
	case MarketNextGoal:
		return 5
	case MarketBTTS:
		return 4
	case MarketCards:
		return 3
	case MarketCorners:
		return 2
	case MarketTotalGoals:
		return 1
	case MarketMatchResult:
		return 0
	default:
		return -1
	}
}

// MarketState tells whether a market is still bettable or already decided
type MarketState string

const (
	// StateActive marks a forward-looking, bettable outcome
	StateActive MarketState = "ACTIVE"
	// StateComplete marks an outcome that has already occurred (or become
	// impossible); it is reported for display but never recommended
	StateComplete MarketState = "COMPLETE"
)

// ConfidenceTier grades how much signal backs a probability
type ConfidenceTier string

const (
	ConfidenceLow      ConfidenceTier = "LOW"
	ConfidenceMedium   ConfidenceTier = "MEDIUM"
	ConfidenceHigh     ConfidenceTier = "HIGH"
	ConfidenceVeryHigh ConfidenceTier = "VERY_HIGH"
)

// MarketResult is one computed outcome probability for one market selection.
// Probability is expressed in percent and always lies in [0, 100].
type MarketResult struct {
	FixtureID   int64          `json:"fixture_id"`
	Market      MarketKind     `json:"market"`
	Label       string         `json:"label"`
	Selection   string         `json:"selection"`
	Probability float64        `json:"probability" validate:"gte=0,lte=100"`
	Confidence  ConfidenceTier `json:"confidence"`
	State       MarketState    `json:"state"`
	Rationale   string         `json:"rationale,omitempty"`

	// Value fields are filled in by the selector from the probability
	FairOdds      float64 `json:"fair_odds,omitempty"`
	EstMarketOdds float64 `json:"est_market_odds,omitempty"`
	Value         float64 `json:"value,omitempty"`
}

// IsActive reports whether the result is still a forward-looking probability
func (r *MarketResult) IsActive() bool {
	return r.State == StateActive
}

// BetSlate is the selector's ranked view over one fixture's market results
type BetSlate struct {
	// Ranked holds every active market, probability-descending
	Ranked []MarketResult `json:"ranked"`
	// Best is the single top pick, nil when no active market exists
	Best *MarketResult `json:"best,omitempty"`
	// TopN is the fallback list for callers whose minimum-probability
	// filter excludes the single best pick
	TopN []MarketResult `json:"top_n"`
}
