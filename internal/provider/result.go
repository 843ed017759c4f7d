package provider

import (
	"context"
	"encoding/json"
	"fmt"
)

// FixtureFinal is the terminal score of a fixture once the provider
// reports it as finished.
type FixtureFinal struct {
	FixtureID int64 `json:"fixture_id"`
	HomeGoals int   `json:"home_goals"`
	AwayGoals int   `json:"away_goals"`
	Finished  bool  `json:"finished"`
}

// ResultSource fetches final scores for settled fixtures.
type ResultSource interface {
	// FinalScore looks up one fixture and reports its score and whether
	// the match has finished
	FinalScore(ctx context.Context, fixtureID int64) (FixtureFinal, error)
}

// finishedStatuses are the API-Football short codes for a completed match.
var finishedStatuses = map[string]bool{
	"FT":  true,
	"AET": true,
	"PEN": true,
}

// FinalScore fetches a single fixture by id and reports its final score.
func (c *APIFootballClient) FinalScore(ctx context.Context, fixtureID int64) (FixtureFinal, error) {
	raw, err := c.fetch(ctx, "fixture", fmt.Sprintf("%s/fixtures?id=%d", c.baseURL, fixtureID))
	if err != nil {
		return FixtureFinal{}, err
	}

	var entries []apiFixtureEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return FixtureFinal{}, NewProviderError(sourceName, ErrCodeInvalidData, "failed to parse fixture", err)
	}
	if len(entries) == 0 {
		return FixtureFinal{}, NewProviderError(sourceName, ErrCodeNotFound,
			fmt.Sprintf("fixture %d not found", fixtureID), ErrFixtureNotFound)
	}

	entry := entries[0]
	return FixtureFinal{
		FixtureID: entry.Fixture.ID,
		HomeGoals: intOrZero(entry.Goals.Home),
		AwayGoals: intOrZero(entry.Goals.Away),
		Finished:  finishedStatuses[entry.Fixture.Status.Short],
	}, nil
}
