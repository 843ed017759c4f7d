package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchpulse/internal/metrics"
	"github.com/yourusername/matchpulse/internal/models"
)

const sourceName = "api_football"

// APIFootballClient implements LiveSource against an API-Football style
// REST feed. Statistics and event responses are cached with a short TTL so
// a scan cycle polling many lines for the same fixture does not multiply
// upstream requests.
type APIFootballClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	leagues    []int64
	enabled    bool
	cache      *gocache.Cache
	logger     *logrus.Logger
}

// NewAPIFootballClient creates a new API-Football client
func NewAPIFootballClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, leagues []int64, cacheTTL time.Duration, logger *logrus.Logger) *APIFootballClient {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &APIFootballClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		leagues:    leagues,
		enabled:    true,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
		logger:     logger,
	}
}

// envelope is the provider's standard response wrapper
type envelope struct {
	Response json.RawMessage `json:"response"`
	Errors   json.RawMessage `json:"errors"`
}

type apiFixtureEntry struct {
	Fixture struct {
		ID     int64 `json:"id"`
		Status struct {
			Short   string `json:"short"`
			Elapsed *int   `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Teams struct {
		Home apiTeam `json:"home"`
		Away apiTeam `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type apiTeam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type apiTeamStatistics struct {
	Team       apiTeam `json:"team"`
	Statistics []struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	} `json:"statistics"`
}

type apiEvent struct {
	Time struct {
		Elapsed int `json:"elapsed"`
	} `json:"time"`
	Team   apiTeam `json:"team"`
	Type   string  `json:"type"`
	Detail string  `json:"detail"`
	Player apiName `json:"player"`
	Assist apiName `json:"assist"`
}

type apiName struct {
	Name string `json:"name"`
}

// Name returns the provider name
func (c *APIFootballClient) Name() string {
	return sourceName
}

// IsEnabled returns whether this provider is enabled
func (c *APIFootballClient) IsEnabled() bool {
	return c.enabled
}

// LiveFixtures lists all fixtures currently in play, filtered to the
// configured leagues when a league list is set
func (c *APIFootballClient) LiveFixtures(ctx context.Context) ([]FixtureHeader, error) {
	if !c.enabled {
		return nil, NewProviderError(sourceName, ErrCodeNetworkError, "provider disabled", nil)
	}

	raw, err := c.fetch(ctx, "fixtures", c.baseURL+"/fixtures?live=all")
	if err != nil {
		return nil, err
	}

	var entries []apiFixtureEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, NewProviderError(sourceName, ErrCodeInvalidData, "failed to parse live fixtures", err)
	}

	wanted := make(map[int64]bool, len(c.leagues))
	for _, id := range c.leagues {
		wanted[id] = true
	}

	headers := make([]FixtureHeader, 0, len(entries))
	for _, entry := range entries {
		if len(wanted) > 0 && !wanted[entry.League.ID] {
			continue
		}
		headers = append(headers, FixtureHeader{
			FixtureID:  entry.Fixture.ID,
			LeagueID:   entry.League.ID,
			League:     entry.League.Name,
			HomeTeamID: entry.Teams.Home.ID,
			AwayTeamID: entry.Teams.Away.ID,
			HomeTeam:   entry.Teams.Home.Name,
			AwayTeam:   entry.Teams.Away.Name,
			Minute:     intOrZero(entry.Fixture.Status.Elapsed),
			HomeGoals:  intOrZero(entry.Goals.Home),
			AwayGoals:  intOrZero(entry.Goals.Away),
		})
	}
	return headers, nil
}

// Snapshot assembles the full statistics snapshot for one live fixture.
// Missing or null provider values coerce to zero so downstream arithmetic
// never sees absent data.
func (c *APIFootballClient) Snapshot(ctx context.Context, header FixtureHeader) (*models.MatchSnapshot, error) {
	stats, err := c.fetchStatistics(ctx, header.FixtureID)
	if err != nil {
		return nil, err
	}
	events, err := c.fetchEvents(ctx, header.FixtureID)
	if err != nil {
		return nil, err
	}

	snap := &models.MatchSnapshot{
		FixtureID: header.FixtureID,
		LeagueID:  header.LeagueID,
		League:    header.League,
		HomeTeam:  header.HomeTeam,
		AwayTeam:  header.AwayTeam,
		Minute:    header.Minute,
		PolledAt:  time.Now().UTC(),
	}
	snap.Home.Goals = header.HomeGoals
	snap.Away.Goals = header.AwayGoals

	for _, teamStats := range stats {
		side := &snap.Home
		if teamStats.Team.ID == header.AwayTeamID {
			side = &snap.Away
		}
		applyStatistics(side, teamStats)
	}

	c.applyEvents(snap, header, events)

	return snap, nil
}

// fetchStatistics pulls the per-team statistics table, from cache when fresh
func (c *APIFootballClient) fetchStatistics(ctx context.Context, fixtureID int64) ([]apiTeamStatistics, error) {
	key := fmt.Sprintf("stats:%d", fixtureID)
	if cached, found := c.cache.Get(key); found {
		metrics.RecordCacheHit()
		return cached.([]apiTeamStatistics), nil
	}

	raw, err := c.fetch(ctx, "statistics", fmt.Sprintf("%s/fixtures/statistics?fixture=%d", c.baseURL, fixtureID))
	if err != nil {
		return nil, err
	}

	var stats []apiTeamStatistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, NewProviderError(sourceName, ErrCodeInvalidData, "failed to parse statistics", err)
	}

	c.cache.Set(key, stats, gocache.DefaultExpiration)
	return stats, nil
}

// fetchEvents pulls the fixture event timeline, from cache when fresh
func (c *APIFootballClient) fetchEvents(ctx context.Context, fixtureID int64) ([]apiEvent, error) {
	key := fmt.Sprintf("events:%d", fixtureID)
	if cached, found := c.cache.Get(key); found {
		metrics.RecordCacheHit()
		return cached.([]apiEvent), nil
	}

	raw, err := c.fetch(ctx, "events", fmt.Sprintf("%s/fixtures/events?fixture=%d", c.baseURL, fixtureID))
	if err != nil {
		return nil, err
	}

	var events []apiEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, NewProviderError(sourceName, ErrCodeInvalidData, "failed to parse events", err)
	}

	c.cache.Set(key, events, gocache.DefaultExpiration)
	return events, nil
}

// fetch executes one authenticated GET and unwraps the response envelope
func (c *APIFootballClient) fetch(ctx context.Context, endpoint, url string) (json.RawMessage, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewProviderError(sourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("x-apisports-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		metrics.RecordProviderRequest(endpoint, "error", time.Since(start).Seconds())
		return nil, NewProviderError(sourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.RecordProviderRequest(endpoint, "auth_error", time.Since(start).Seconds())
		return nil, NewProviderError(sourceName, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.RecordProviderRequest(endpoint, "rate_limited", time.Since(start).Seconds())
		return nil, NewProviderError(sourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		metrics.RecordProviderRequest(endpoint, "server_error", time.Since(start).Seconds())
		return nil, NewProviderError(sourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		metrics.RecordProviderRequest(endpoint, "parse_error", time.Since(start).Seconds())
		return nil, NewProviderError(sourceName, ErrCodeInvalidData, "failed to parse response envelope", err)
	}

	metrics.RecordProviderRequest(endpoint, "success", time.Since(start).Seconds())
	return env.Response, nil
}

// applyStatistics maps the provider's loose statistics table onto TeamStats
func applyStatistics(side *models.TeamStats, teamStats apiTeamStatistics) {
	for _, stat := range teamStats.Statistics {
		switch stat.Type {
		case "Total Shots":
			side.Shots = statInt(stat.Value)
		case "Shots on Goal":
			side.ShotsOnTarget = statInt(stat.Value)
		case "Corner Kicks":
			side.Corners = statInt(stat.Value)
		case "Fouls":
			side.Fouls = statInt(stat.Value)
		case "Yellow Cards":
			side.YellowCards = statInt(stat.Value)
		case "Red Cards":
			side.RedCards = statInt(stat.Value)
		case "Ball Possession":
			side.Possession = statPercent(stat.Value)
		case "Dangerous Attacks":
			side.DangerousAttacks = statInt(stat.Value)
		case "expected_goals":
			side.XG = statFloat(stat.Value)
		}
	}
}

// applyEvents folds the event timeline into substitutions and the
// recent-attack history the momentum tracker consumes
func (c *APIFootballClient) applyEvents(snap *models.MatchSnapshot, header FixtureHeader, events []apiEvent) {
	for _, ev := range events {
		side := models.SideHome
		if ev.Team.ID == header.AwayTeamID {
			side = models.SideAway
		}

		switch ev.Type {
		case "subst":
			snap.Substitutions = append(snap.Substitutions, models.Substitution{
				Minute: ev.Time.Elapsed,
				Side:   side,
				// the feed does not classify changes; a chasing side making
				// one late in the game is treated as attacking intent
				Offensive: ev.Time.Elapsed >= 60,
			})
		case "Shot":
			snap.RecentEvents = append(snap.RecentEvents, models.AttackEvent{
				Minute: ev.Time.Elapsed, Side: side, Type: models.EventShot,
			})
		case "Corner":
			snap.RecentEvents = append(snap.RecentEvents, models.AttackEvent{
				Minute: ev.Time.Elapsed, Side: side, Type: models.EventCorner,
			})
		case "Dangerous Attack":
			snap.RecentEvents = append(snap.RecentEvents, models.AttackEvent{
				Minute: ev.Time.Elapsed, Side: side, Type: models.EventDangerousAttack,
			})
		}
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// statInt parses a statistics value that may be null, a number or a string
func statInt(raw json.RawMessage) int {
	return int(statFloat(raw))
}

func statFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSuffix(strings.TrimSpace(s), "%")
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			return parsed
		}
	}
	return 0
}

// statPercent parses a "58%" style possession value
func statPercent(raw json.RawMessage) float64 {
	return statFloat(raw)
}
