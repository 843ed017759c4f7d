package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchpulse/internal/models"
)

func TestSelectBetsExcludesCompletedMarkets(t *testing.T) {
	results := []models.MarketResult{
		{Market: models.MarketBTTS, Label: "Both Teams To Score", Selection: "Yes", Probability: 100, State: models.StateComplete},
		{Market: models.MarketTotalGoals, Label: "Total Goals Over 3.5", Selection: "Over 3.5", Probability: 62, State: models.StateActive},
	}

	slate := SelectBets(results, SelectorOptions{TopN: 3})
	require.Len(t, slate.Ranked, 1)
	assert.Equal(t, models.MarketTotalGoals, slate.Ranked[0].Market)
	require.NotNil(t, slate.Best)
	assert.Equal(t, "Total Goals Over 3.5", slate.Best.Label)
}

func TestSelectBetsDeterministicOrdering(t *testing.T) {
	results := []models.MarketResult{
		{Market: models.MarketTotalGoals, Label: "Total Goals Under 4.5", Probability: 85, State: models.StateActive},
		{Market: models.MarketTeamTotal, Label: "Arsenal Total Goals Over 0.5", Probability: 85, State: models.StateActive},
		{Market: models.MarketMatchResult, Label: "Match Result", Selection: "1 (Home Win)", Probability: 71, State: models.StateActive},
	}

	slate := SelectBets(results, SelectorOptions{TopN: 3})
	require.Len(t, slate.Ranked, 3)

	// Equal probability: the narrower team-total market outranks the
	// aggregate goals line
	assert.Equal(t, models.MarketTeamTotal, slate.Ranked[0].Market)
	assert.Equal(t, models.MarketTotalGoals, slate.Ranked[1].Market)
	assert.Equal(t, models.MarketMatchResult, slate.Ranked[2].Market)
}

func TestSelectBetsMinProbabilityFilter(t *testing.T) {
	results := []models.MarketResult{
		{Market: models.MarketNextGoal, Label: "Next Goal", Probability: 57, State: models.StateActive},
		{Market: models.MarketCorners, Label: "Corners Over 9.5", Probability: 41, State: models.StateActive},
	}

	slate := SelectBets(results, SelectorOptions{TopN: 3, MinProbability: 50})
	require.Len(t, slate.Ranked, 1)
	assert.Equal(t, models.MarketNextGoal, slate.Ranked[0].Market)
}

func TestSelectBetsFallbackSurvivesStrictFilter(t *testing.T) {
	results := []models.MarketResult{
		{Market: models.MarketNextGoal, Label: "Next Goal", Probability: 57, State: models.StateActive},
		{Market: models.MarketCorners, Label: "Corners Over 9.5", Probability: 41, State: models.StateActive},
	}

	// A bar that excludes everything empties the ranking, but the caller
	// still gets the best pick and the fallback list
	slate := SelectBets(results, SelectorOptions{TopN: 3, MinProbability: 65})
	assert.Empty(t, slate.Ranked)
	require.NotNil(t, slate.Best)
	assert.Equal(t, models.MarketNextGoal, slate.Best.Market)
	require.Len(t, slate.TopN, 2)
	assert.Equal(t, models.MarketNextGoal, slate.TopN[0].Market)
	assert.Equal(t, models.MarketCorners, slate.TopN[1].Market)
}

func TestSelectBetsEmptyInput(t *testing.T) {
	slate := SelectBets(nil, SelectorOptions{TopN: 3})
	assert.Nil(t, slate.Best)
	assert.Empty(t, slate.Ranked)
	assert.Empty(t, slate.TopN)
}

func TestSelectBetsTopNTruncation(t *testing.T) {
	results := make([]models.MarketResult, 0, 5)
	for i := 0; i < 5; i++ {
		results = append(results, models.MarketResult{
			Market:      models.MarketTotalGoals,
			Label:       "Total Goals",
			Probability: float64(60 + i),
			State:       models.StateActive,
		})
	}

	slate := SelectBets(results, SelectorOptions{TopN: 2})
	assert.Len(t, slate.Ranked, 5)
	assert.Len(t, slate.TopN, 2)
	assert.Equal(t, 64.0, slate.TopN[0].Probability)
}

func TestEnrichValueMarginTiers(t *testing.T) {
	tests := []struct {
		name         string
		prob         float64
		expectedFair float64
		expectedEst  float64
	}{
		{"short favourite gets 5% margin", 80, 1.25, 1.19},
		{"solid pick gets 7% margin", 60, 1.67, 1.55},
		{"long shot gets 10% margin", 40, 2.5, 2.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := models.MarketResult{Probability: tt.prob, State: models.StateActive}
			enrichValue(&r)
			assert.InDelta(t, tt.expectedFair, r.FairOdds, 0.01)
			assert.InDelta(t, tt.expectedEst, r.EstMarketOdds, 0.01)
		})
	}
}

func TestEnrichValueZeroProbability(t *testing.T) {
	r := models.MarketResult{Probability: 0, State: models.StateActive}
	enrichValue(&r)
	assert.Zero(t, r.FairOdds)
	assert.Zero(t, r.EstMarketOdds)
}
