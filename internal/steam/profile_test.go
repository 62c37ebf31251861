package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/steamlens/internal/apperrors"
)

func TestGetPlayerSummarySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/ISteamUser/GetPlayerSummaries/v2/")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "76561198240690266", r.URL.Query().Get("steamids"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": {
				"players": [{
					"steamid": "76561198240690266",
					"personaname": "testplayer",
					"avatarfull": "https://avatars.example/full.jpg",
					"realname": "Test Player",
					"loccountrycode": "FI",
					"timecreated": 1474416000,
					"lastlogoff": 1704067200,
					"profileurl": "https://steamcommunity.com/id/testplayer/",
					"personastate": 1,
					"gameextrainfo": "Team Fortress 2",
					"gameid": "440",
					"communityvisibilitystate": 3
				}]
			}
		}`))
	}))
	defer server.Close()

	profile, err := newTestClient(server).GetPlayerSummary(context.Background(), "76561198240690266")
	require.NoError(t, err)

	assert.Equal(t, "76561198240690266", profile.SteamID)
	assert.Equal(t, "testplayer", profile.PersonaName)
	assert.Equal(t, "https://avatars.example/full.jpg", profile.Avatar)
	assert.Equal(t, "FI", profile.Country)
	assert.Equal(t, "Online", profile.CurrentStatus)
	assert.Equal(t, "Public", profile.ProfileVisibility)
	assert.Equal(t, "Team Fortress 2", profile.CurrentGame)
	assert.Equal(t, "2024-01-01T00:00:00Z", profile.LastOnline)
	assert.Equal(t, "2016-09-21T00:00:00Z", profile.AccountCreated)
}

func TestGetPlayerSummaryUnknownStates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": {
				"players": [{
					"steamid": "76561198240690266",
					"personaname": "mystery",
					"personastate": 42,
					"communityvisibilitystate": 9
				}]
			}
		}`))
	}))
	defer server.Close()

	profile, err := newTestClient(server).GetPlayerSummary(context.Background(), "76561198240690266")
	require.NoError(t, err)

	assert.Equal(t, "Unknown", profile.CurrentStatus)
	assert.Equal(t, "Unknown", profile.ProfileVisibility)
	// Private profiles carry no epochs; the derived strings stay empty.
	assert.Empty(t, profile.LastOnline)
	assert.Empty(t, profile.AccountCreated)
}

func TestGetPlayerSummaryNoPlayers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response": {"players": []}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetPlayerSummary(context.Background(), "76561198000000000")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGetPlayerSummaryUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server).GetPlayerSummary(context.Background(), "76561198240690266")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
	assert.Contains(t, err.Error(), "playersummaries")
}

func TestPersonaStateLabels(t *testing.T) {
	tests := []struct {
		state int
		want  string
	}{
		{0, "Offline"},
		{1, "Online"},
		{2, "Busy"},
		{3, "Away"},
		{4, "Snooze"},
		{5, "Looking to trade"},
		{6, "Looking to play"},
		{7, "Unknown"},
		{-1, "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PersonaStateLabel(tt.state), "state %d", tt.state)
	}
}

func TestVisibilityStateLabels(t *testing.T) {
	assert.Equal(t, "Private", VisibilityStateLabel(1))
	assert.Equal(t, "Friends only", VisibilityStateLabel(2))
	assert.Equal(t, "Public", VisibilityStateLabel(3))
	assert.Equal(t, "Unknown", VisibilityStateLabel(0))
	assert.Equal(t, "Unknown", VisibilityStateLabel(4))
}
