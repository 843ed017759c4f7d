// Package models defines the core data types shared across the MatchPulse application.
package models

import "time"

// Side identifies one of the two teams in a fixture
type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
)

// AttackEventType classifies an attacking event contributing to momentum
type AttackEventType string

const (
	EventShot            AttackEventType = "SHOT"
	EventDangerousAttack AttackEventType = "DANGEROUS_ATTACK"
	EventCorner          AttackEventType = "CORNER"
)

// AttackEvent is a single timestamped attacking event reported by the live feed
type AttackEvent struct {
	Minute int             `json:"minute"`
	Side   Side            `json:"side"`
	Type   AttackEventType `json:"type"`
}

// Substitution records a substitution event and whether it was an attacking change
type Substitution struct {
	Minute    int  `json:"minute"`
	Side      Side `json:"side"`
	Offensive bool `json:"offensive"`
}

// TeamStats holds the cumulative in-play statistics for one side.
// Every field is a plain numeric: absent or null provider values are
// coerced to zero before a TeamStats is ever constructed.
type TeamStats struct {
	Goals            int     `json:"goals"`
	XG               float64 `json:"xg"`
	Shots            int     `json:"shots"`
	ShotsOnTarget    int     `json:"shots_on_target"`
	Corners          int     `json:"corners"`
	YellowCards      int     `json:"yellow_cards"`
	RedCards         int     `json:"red_cards"`
	Fouls            int     `json:"fouls"`
	Possession       float64 `json:"possession"`
	DangerousAttacks int     `json:"dangerous_attacks"`
}

// Cards returns the betting card count for the side (a red counts as two)
func (t TeamStats) Cards() int {
	return t.YellowCards + t.RedCards*2
}

// RawCards returns the plain number of cards shown, reds not weighted
func (t TeamStats) RawCards() int {
	return t.YellowCards + t.RedCards
}

// MatchSnapshot is an immutable view of a live fixture at a single poll.
// A newer snapshot for the same fixture supersedes the previous one
// wholesale; snapshots are never merged or mutated.
type MatchSnapshot struct {
	FixtureID     int64          `json:"fixture_id" validate:"required"`
	LeagueID      int64          `json:"league_id"`
	League        string         `json:"league"`
	HomeTeam      string         `json:"home_team"`
	AwayTeam      string         `json:"away_team"`
	Minute        int            `json:"minute" validate:"gte=0"`
	Home          TeamStats      `json:"home"`
	Away          TeamStats      `json:"away"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
	RecentEvents  []AttackEvent  `json:"recent_events,omitempty"`
	PolledAt      time.Time      `json:"polled_at"`
}

// TotalGoals returns the current aggregate score
func (s *MatchSnapshot) TotalGoals() int {
	return s.Home.Goals + s.Away.Goals
}

// TotalCards returns the aggregate betting card count (reds weighted double)
func (s *MatchSnapshot) TotalCards() int {
	return s.Home.Cards() + s.Away.Cards()
}

// TotalCorners returns the aggregate corner count
func (s *MatchSnapshot) TotalCorners() int {
	return s.Home.Corners + s.Away.Corners
}

// TotalFouls returns the aggregate foul count
func (s *MatchSnapshot) TotalFouls() int {
	return s.Home.Fouls + s.Away.Fouls
}

// TimeRemaining returns the regulation minutes left, never negative
func (s *MatchSnapshot) TimeRemaining() float64 {
	remaining := 90 - s.Minute
	if remaining < 0 {
		return 0
	}
	return float64(remaining)
}

// GoalRateProjection is the per-minute scoring rate projected for each side.
// It is a pure function of a MatchSnapshot and is recomputed on every call.
type GoalRateProjection struct {
	HomeRatePerMin float64 `json:"home_rate_per_min"`
	AwayRatePerMin float64 `json:"away_rate_per_min"`
	Reliable       bool    `json:"reliable"`
}

// RemainingHome returns the expected remaining home goals over the given minutes
func (p GoalRateProjection) RemainingHome(minutes float64) float64 {
	return p.HomeRatePerMin * minutes
}

// RemainingAway returns the expected remaining away goals over the given minutes
func (p GoalRateProjection) RemainingAway(minutes float64) float64 {
	return p.AwayRatePerMin * minutes
}
