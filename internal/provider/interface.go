package provider

import (
	"context"
	"errors"

	"github.com/yourusername/matchpulse/internal/models"
)

// FixtureHeader is the lightweight listing entry returned by the live
// fixtures feed. It carries just enough to decide whether to pull the full
// statistics for the fixture.
type FixtureHeader struct {
	FixtureID  int64  `json:"fixture_id"`
	LeagueID   int64  `json:"league_id"`
	League     string `json:"league"`
	HomeTeamID int64  `json:"home_team_id"`
	AwayTeamID int64  `json:"away_team_id"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	Minute     int    `json:"minute"`
	HomeGoals  int    `json:"home_goals"`
	AwayGoals  int    `json:"away_goals"`
}

// LiveSource defines the interface for fetching live match data from an
// external provider
type LiveSource interface {
	// LiveFixtures lists the fixtures currently in play
	LiveFixtures(ctx context.Context) ([]FixtureHeader, error)

	// Snapshot assembles the full statistics snapshot for one live fixture
	Snapshot(ctx context.Context, header FixtureHeader) (*models.MatchSnapshot, error)

	// Name returns the name of the provider
	Name() string

	// IsEnabled returns whether this provider is currently enabled
	IsEnabled() bool
}

// ProviderError represents errors from provider operations
type ProviderError struct {
	Source  string // Provider name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e ProviderError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// Sentinel errors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrFixtureNotFound      = errors.New("fixture not found")
	ErrInvalidData          = errors.New("invalid data format")
)

// NewProviderError creates a new provider error
func NewProviderError(source, code, message string, err error) ProviderError {
	return ProviderError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
