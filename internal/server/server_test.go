package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/steamlens/internal/aggregate"
	"github.com/lepinkainen/steamlens/internal/fetch"
	"github.com/lepinkainen/steamlens/internal/steam"
)

const testSteamID = "76561198240690266"

// fakeUpstream fakes the Steam Web API and Store endpoints the
// handlers reach through the client and builder.
type fakeUpstream struct {
	profileBody   string
	profileStatus int
	vanityBody    string
	detailsBody   string
	vanityCalls   atomic.Int32
	profileCalls  atomic.Int32
}

func (f *fakeUpstream) handler() http.Handler {
	writeJSON := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "GetPlayerSummaries"):
			f.profileCalls.Add(1)
			if f.profileStatus != 0 {
				w.WriteHeader(f.profileStatus)
				return
			}
			writeJSON(w, f.profileBody)
		case strings.Contains(r.URL.Path, "ResolveVanityURL"):
			f.vanityCalls.Add(1)
			writeJSON(w, f.vanityBody)
		case strings.Contains(r.URL.Path, "GetOwnedGames"):
			writeJSON(w, `{"response": {"game_count": 0, "games": []}}`)
		case strings.Contains(r.URL.Path, "GetWishlist"):
			writeJSON(w, `{"response": {}}`)
		case strings.Contains(r.URL.Path, "appdetails"):
			writeJSON(w, f.detailsBody)
		default:
			http.NotFound(w, r)
		}
	})
}

func defaultUpstream() *fakeUpstream {
	return &fakeUpstream{
		profileBody: `{"response": {"players": [{
			"steamid": "76561198240690266",
			"personaname": "testplayer",
			"personastate": 1,
			"communityvisibilitystate": 3
		}]}}`,
		vanityBody: `{"response": {"success": 1, "steamid": "76561198240690266"}}`,
		detailsBody: `{"440": {"success": true, "data": {
			"name": "Team Fortress 2",
			"platforms": {"windows": true, "mac": true, "linux": true}
		}}}`,
	}
}

func newTestServer(t *testing.T, fake *fakeUpstream) *Server {
	t.Helper()

	upstream := httptest.NewServer(fake.handler())
	t.Cleanup(upstream.Close)

	client := steam.NewClient("test-key",
		steam.WithAPIBaseURL(upstream.URL),
		steam.WithStoreBaseURL(upstream.URL),
		steam.WithAPILimiter(nil),
		steam.WithStoreLimiter(nil),
		steam.WithFetchClient(fetch.NewClient(
			fetch.WithHTTPClient(upstream.Client()),
			fetch.WithSleepFunc(func(time.Duration) {}),
		)),
	)

	return NewServer(0, client, aggregate.NewBuilder(client))
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, defaultUpstream())

	rec := doRequest(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestAggregateEndpoint(t *testing.T) {
	s := newTestServer(t, defaultUpstream())

	rec := doRequest(t, s, "/api/steam?steamId="+testSteamID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result aggregate.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Profile)
	assert.Equal(t, "testplayer", result.Profile.PersonaName)
	assert.Equal(t, "Online", result.Profile.CurrentStatus)
}

func TestAggregateMissingSteamID(t *testing.T) {
	s := newTestServer(t, defaultUpstream())

	rec := doRequest(t, s, "/api/steam")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid request", body["error"])
	assert.Contains(t, body["message"], "steamId")
}

func TestAggregateNonNumericSteamID(t *testing.T) {
	s := newTestServer(t, defaultUpstream())

	rec := doRequest(t, s, "/api/steam?steamId=not-a-steamid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileEndpoint(t *testing.T) {
	s := newTestServer(t, defaultUpstream())

	rec := doRequest(t, s, "/api/steam/profile?steamId="+testSteamID)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Profile)
	assert.Equal(t, testSteamID, resp.Profile.SteamID)
	assert.Equal(t, "Public", resp.Profile.ProfileVisibility)
	assert.NotNil(t, resp.OwnedGames)
}

func TestProfileNotFound(t *testing.T) {
	fake := defaultUpstream()
	fake.profileBody = `{"response": {"players": []}}`
	s := newTestServer(t, fake)

	rec := doRequest(t, s, "/api/steam/profile?steamId="+testSteamID)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, testSteamID, body["steamId"])
}

func TestGameDetailsEndpoint(t *testing.T) {
	s := newTestServer(t, defaultUpstream())

	rec := doRequest(t, s, "/api/steam/game?appId=440")
	require.Equal(t, http.StatusOK, rec.Code)

	var details steam.GameDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	assert.Equal(t, "Team Fortress 2", details.Name)
	assert.True(t, details.Platforms.Linux)
}

func TestGameDetailsInvalidAppID(t *testing.T) {
	s := newTestServer(t, defaultUpstream())

	for _, path := range []string{
		"/api/steam/game",
		"/api/steam/game?appId=abc",
		"/api/steam/game?appId=-1",
	} {
		rec := doRequest(t, s, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestGameDetailsNotFound(t *testing.T) {
	fake := defaultUpstream()
	fake.detailsBody = `{"440": {"success": false}}`
	s := newTestServer(t, fake)

	rec := doRequest(t, s, "/api/steam/game?appId=440")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(440), body["appId"])
}

func TestResolveEndpoint(t *testing.T) {
	fake := defaultUpstream()
	s := newTestServer(t, fake)

	rec := doRequest(t, s, "/api/steam/resolve?username=gabelogannewell")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp resolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "gabelogannewell", resp.Username)
	assert.Equal(t, testSteamID, resp.SteamID)

	// Second lookup is served from the memoized result.
	rec = doRequest(t, s, "/api/steam/resolve?username=gabelogannewell")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), fake.vanityCalls.Load())
}

func TestResolveFallsBackToProfile(t *testing.T) {
	fake := defaultUpstream()
	fake.vanityBody = `{"response": {"success": 42, "message": "No match"}}`
	s := newTestServer(t, fake)

	rec := doRequest(t, s, "/api/steam/resolve?username="+testSteamID)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp resolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testSteamID, resp.SteamID)
	assert.Equal(t, int32(1), fake.profileCalls.Load())
}

func TestResolveMissingUsername(t *testing.T) {
	s := newTestServer(t, defaultUpstream())

	rec := doRequest(t, s, "/api/steam/resolve")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpstreamFailureIsInternalError(t *testing.T) {
	fake := defaultUpstream()
	fake.profileStatus = http.StatusInternalServerError
	s := newTestServer(t, fake)

	rec := doRequest(t, s, "/api/steam/profile?steamId="+testSteamID)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch Steam data", body["error"])
}
