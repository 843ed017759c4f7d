package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchpulse/internal/models"
)

const liveFixturesBody = `{
	"response": [
		{
			"fixture": {"id": 867201, "status": {"short": "2H", "elapsed": 62}},
			"league": {"id": 39, "name": "Premier League"},
			"teams": {"home": {"id": 42, "name": "Arsenal"}, "away": {"id": 55, "name": "Brentford"}},
			"goals": {"home": 1, "away": 1}
		},
		{
			"fixture": {"id": 867202, "status": {"short": "1H", "elapsed": 31}},
			"league": {"id": 140, "name": "La Liga"},
			"teams": {"home": {"id": 529, "name": "Barcelona"}, "away": {"id": 532, "name": "Valencia"}},
			"goals": {"home": null, "away": 0}
		}
	]
}`

const statisticsBody = `{
	"response": [
		{
			"team": {"id": 42, "name": "Arsenal"},
			"statistics": [
				{"type": "Total Shots", "value": 13},
				{"type": "Shots on Goal", "value": 6},
				{"type": "Corner Kicks", "value": 5},
				{"type": "Fouls", "value": 8},
				{"type": "Yellow Cards", "value": 1},
				{"type": "Red Cards", "value": null},
				{"type": "Ball Possession", "value": "58%"},
				{"type": "Dangerous Attacks", "value": 41},
				{"type": "expected_goals", "value": "1.45"}
			]
		},
		{
			"team": {"id": 55, "name": "Brentford"},
			"statistics": [
				{"type": "Total Shots", "value": 6},
				{"type": "Shots on Goal", "value": 2},
				{"type": "Corner Kicks", "value": null},
				{"type": "Ball Possession", "value": "42%"},
				{"type": "expected_goals", "value": null}
			]
		}
	]
}`

const eventsBody = `{
	"response": [
		{"time": {"elapsed": 58}, "team": {"id": 42}, "type": "Shot", "detail": "Shot on target"},
		{"time": {"elapsed": 60}, "team": {"id": 42}, "type": "Corner", "detail": "Corner awarded"},
		{"time": {"elapsed": 61}, "team": {"id": 55}, "type": "Dangerous Attack", "detail": ""},
		{"time": {"elapsed": 63}, "team": {"id": 55}, "type": "subst", "detail": "Substitution 1",
		 "player": {"name": "Off Player"}, "assist": {"name": "On Player"}},
		{"time": {"elapsed": 40}, "team": {"id": 42}, "type": "Goal", "detail": "Normal Goal"}
	]
}`

func newTestClient(t *testing.T, handler http.Handler) (*APIFootballClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	httpCfg := DefaultHTTPClientConfig()
	httpCfg.RateLimit = 1000
	httpCfg.MaxRetries = 0

	httpClient := NewRateLimitedHTTPClient(httpCfg, logger)
	client := NewAPIFootballClient(httpClient, server.URL, "test-key", nil, 30*time.Second, logger)
	return client, server
}

func routedHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/fixtures", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(liveFixturesBody))
	})
	mux.HandleFunc("/fixtures/statistics", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(statisticsBody))
	})
	mux.HandleFunc("/fixtures/events", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventsBody))
	})
	return mux
}

func TestLiveFixtures(t *testing.T) {
	client, _ := newTestClient(t, routedHandler())

	headers, err := client.LiveFixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, headers, 2)

	assert.Equal(t, int64(867201), headers[0].FixtureID)
	assert.Equal(t, "Arsenal", headers[0].HomeTeam)
	assert.Equal(t, 62, headers[0].Minute)
	assert.Equal(t, 1, headers[0].HomeGoals)

	// null goals coerce to zero
	assert.Equal(t, 0, headers[1].HomeGoals)
}

func TestLiveFixturesLeagueFilter(t *testing.T) {
	client, _ := newTestClient(t, routedHandler())
	client.leagues = []int64{39}

	headers, err := client.LiveFixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, int64(39), headers[0].LeagueID)
}

func TestSnapshotAssembly(t *testing.T) {
	client, _ := newTestClient(t, routedHandler())

	header := FixtureHeader{
		FixtureID: 867201, LeagueID: 39, League: "Premier League",
		HomeTeamID: 42, AwayTeamID: 55,
		HomeTeam: "Arsenal", AwayTeam: "Brentford",
		Minute: 62, HomeGoals: 1, AwayGoals: 1,
	}

	snap, err := client.Snapshot(context.Background(), header)
	require.NoError(t, err)

	assert.Equal(t, int64(867201), snap.FixtureID)
	assert.Equal(t, 13, snap.Home.Shots)
	assert.Equal(t, 6, snap.Home.ShotsOnTarget)
	assert.InDelta(t, 58.0, snap.Home.Possession, 1e-9)
	assert.InDelta(t, 1.45, snap.Home.XG, 1e-9)

	// null statistics coerce to zero
	assert.Equal(t, 0, snap.Home.RedCards)
	assert.Equal(t, 0, snap.Away.Corners)
	assert.Equal(t, 0.0, snap.Away.XG)

	// attack events mapped, goal/card events ignored for momentum
	require.Len(t, snap.RecentEvents, 3)
	assert.Equal(t, models.EventShot, snap.RecentEvents[0].Type)
	assert.Equal(t, models.SideAway, snap.RecentEvents[2].Side)

	require.Len(t, snap.Substitutions, 1)
	assert.Equal(t, 63, snap.Substitutions[0].Minute)
	assert.True(t, snap.Substitutions[0].Offensive)
}

func TestSnapshotUsesCache(t *testing.T) {
	var statCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/fixtures/statistics", func(w http.ResponseWriter, r *http.Request) {
		statCalls.Add(1)
		w.Write([]byte(statisticsBody))
	})
	mux.HandleFunc("/fixtures/events", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventsBody))
	})

	client, _ := newTestClient(t, mux)
	header := FixtureHeader{FixtureID: 867201, HomeTeamID: 42, AwayTeamID: 55, Minute: 62}

	_, err := client.Snapshot(context.Background(), header)
	require.NoError(t, err)
	_, err = client.Snapshot(context.Background(), header)
	require.NoError(t, err)

	assert.Equal(t, int64(1), statCalls.Load())
}

func TestFetchAuthError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.LiveFixtures(context.Background())
	require.Error(t, err)

	var provErr ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ErrCodeAuthenticationFailed, provErr.Code)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestFetchSendsAPIKey(t *testing.T) {
	var gotKey string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-apisports-key")
		w.Write([]byte(`{"response": []}`))
	}))

	_, err := client.LiveFixtures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
}

func TestStatValueParsing(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"plain number", `13`, 13},
		{"null", `null`, 0},
		{"percent string", `"58%"`, 58},
		{"decimal string", `"1.45"`, 1.45},
		{"garbage string", `"n/a"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, statFloat(json.RawMessage(tt.raw)), 1e-9)
		})
	}
}
