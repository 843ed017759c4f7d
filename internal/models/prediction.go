package models

import (
	"time"

	"github.com/google/uuid"
)

// PredictionRecord is one persisted market probability from a scan cycle.
// Identity and timestamps are assigned at persist time, never by the
// engine, so re-evaluating the same snapshot stays side-effect free.
type PredictionRecord struct {
	ID          uuid.UUID      `json:"id"`
	ScanID      uuid.UUID      `json:"scan_id"`
	FixtureID   int64          `json:"fixture_id"`
	LeagueID    int64          `json:"league_id"`
	League      string         `json:"league"`
	HomeTeam    string         `json:"home_team"`
	AwayTeam    string         `json:"away_team"`
	Minute      int            `json:"minute"`
	HomeGoals   int            `json:"home_goals"`
	AwayGoals   int            `json:"away_goals"`
	Market      MarketKind     `json:"market"`
	Label       string         `json:"label"`
	Selection   string         `json:"selection"`
	Probability float64        `json:"probability"`
	Confidence  ConfidenceTier `json:"confidence"`
	State       MarketState    `json:"state"`
	FairOdds    float64        `json:"fair_odds"`
	EstOdds     float64        `json:"est_odds"`
	Value       float64        `json:"value"`
	IsBest      bool           `json:"is_best"`
	CreatedAt   time.Time      `json:"created_at"`
}

// OutcomeResult is the settled result of a prediction
type OutcomeResult string

const (
	OutcomeWon  OutcomeResult = "WON"
	OutcomeLost OutcomeResult = "LOST"
	OutcomeVoid OutcomeResult = "VOID"
)

// PredictionOutcome links a prediction to its settled result once the
// fixture finishes, enabling calibration of the engine's probabilities
type PredictionOutcome struct {
	ID           uuid.UUID     `json:"id"`
	PredictionID uuid.UUID     `json:"prediction_id"`
	FixtureID    int64         `json:"fixture_id"`
	Result       OutcomeResult `json:"result"`
	FinalHome    int           `json:"final_home"`
	FinalAway    int           `json:"final_away"`
	SettledAt    time.Time     `json:"settled_at"`
}
