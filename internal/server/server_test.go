package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles struct {
	profile *domain.Profile
	err     error
	gotID   string
}

func (f *fakeProfiles) Lookup(_ context.Context, riotID string) (*domain.Profile, error) {
	f.gotID = riotID
	return f.profile, f.err
}

type fakeLive struct {
	game domain.LiveGame
	err  error
}

func (f *fakeLive) Lookup(context.Context, string) (domain.LiveGame, error) {
	return f.game, f.err
}

type fakeNarrator struct {
	gotName    string
	gotMatches []domain.MatchSummary
}

func (f *fakeNarrator) Narrate(_ context.Context, name string, matches []domain.MatchSummary) string {
	f.gotName = name
	f.gotMatches = matches
	return "Nice games."
}

type fakeAnalyzer struct{}

func (fakeAnalyzer) Analyze(_ context.Context, text string) string {
	return "analysis of " + text
}

type fakeHistory struct {
	searches []domain.RecentSearch
	err      error
	gotQuery string
	gotLimit int
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]domain.RecentSearch, error) {
	f.gotLimit = limit
	return f.searches, f.err
}

func (f *fakeHistory) Search(_ context.Context, query string, limit int) ([]domain.RecentSearch, error) {
	f.gotQuery = query
	f.gotLimit = limit
	return f.searches, f.err
}

type deps struct {
	profiles *fakeProfiles
	live     *fakeLive
	narrator *fakeNarrator
	history  *fakeHistory
}

func newTestServer() (http.Handler, *deps) {
	d := &deps{
		profiles: &fakeProfiles{},
		live:     &fakeLive{},
		narrator: &fakeNarrator{},
		history:  &fakeHistory{searches: []domain.RecentSearch{}},
	}
	s := NewInsightServer(d.profiles, d.live, d.narrator, fakeAnalyzer{}, d.history, zerolog.Nop())
	return s.Routes(), d
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer()

	rec := serve(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestGetSummonerUnranked(t *testing.T) {
	h, d := newTestServer()
	d.profiles.profile = &domain.Profile{
		Account:  domain.Account{Puuid: "p1", GameName: "Faker", TagLine: "KR1"},
		Summoner: domain.SummonerProfile{Puuid: "p1", SummonerLevel: 700, ProfileIconID: 6},
		Ranked:   domain.UnrankedEntry(),
	}

	rec := serve(h, http.MethodGet, "/api/summoner/Faker%23KR1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Faker#KR1", d.profiles.gotID)
	assert.JSONEq(t, `{
		"summoner": {"riotId":"Faker#KR1","gameName":"Faker","tagLine":"KR1","puuid":"p1","level":700,"profileIconId":6},
		"ranked": {"tier":"UNRANKED","rank":"","leaguePoints":0,"wins":0,"losses":0},
		"recentMatches": []
	}`, rec.Body.String())
}

func TestGetSummonerErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{fmt.Errorf("%w: bad", domain.ErrMalformedIdentifier), http.StatusBadRequest, "Invalid Riot ID format, expected name#tag"},
		{domain.ErrAccountNotFound, http.StatusNotFound, "Account not found"},
		{domain.ErrSummonerNotFound, http.StatusNotFound, "Summoner not found"},
		{domain.ErrNotConfigured, http.StatusServiceUnavailable, "Riot API is not configured"},
		{fmt.Errorf("account lookup: %w", domain.ErrUpstreamTimeout), http.StatusGatewayTimeout, "Upstream API timed out"},
		{&domain.UpstreamError{Op: "account lookup", Status: 403, Err: errors.New("forbidden")}, http.StatusBadGateway, "Upstream API error"},
		{errors.New("surprise"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			h, d := newTestServer()
			d.profiles.err = tt.err

			rec := serve(h, http.MethodGet, "/api/summoner/x%23y", "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, map[string]any{"error": tt.msg}, decode(t, rec))
		})
	}
}

func TestGetLiveGameNotInGame(t *testing.T) {
	h, _ := newTestServer()

	rec := serve(h, http.MethodGet, "/api/live-game/Faker%23KR1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"inGame":false}`, rec.Body.String())
}

func TestGetLiveGameInGame(t *testing.T) {
	h, d := newTestServer()
	d.live.game = domain.LiveGame{
		InGame:     true,
		GameMode:   "ARAM",
		Team1:      []domain.LiveParticipant{{SummonerName: "a", TeamID: 100, Rank: domain.UnrankedEntry()}},
		Prediction: domain.Prediction{Team1WinChance: 50, Team2WinChance: 50, Reasoning: "even"},
	}

	rec := serve(h, http.MethodGet, "/api/live-game/Faker%23KR1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["inGame"])
	assert.Equal(t, "ARAM", body["gameMode"])
	assert.Len(t, body["team1"], 1)
	assert.Equal(t, []any{}, body["team2"])
	assert.Equal(t, map[string]any{"team1_win_chance": 50.0, "team2_win_chance": 50.0, "reasoning": "even"}, body["prediction"])
}

func TestGetLiveGameAccountNotFound(t *testing.T) {
	h, d := newTestServer()
	d.live.err = domain.ErrAccountNotFound

	rec := serve(h, http.MethodGet, "/api/live-game/Faker%23KR1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzePerformance(t *testing.T) {
	h, d := newTestServer()

	rec := serve(h, http.MethodPost, "/api/analyze-performance",
		`{"summoner_name":"Faker","match_history":[{"champion":"Ahri","result":"Victory","kda":"1/2/3","duration":"2:05","gameMode":"CLASSIC"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"analysis":"Nice games."}`, rec.Body.String())
	assert.Equal(t, "Faker", d.narrator.gotName)
	require.Len(t, d.narrator.gotMatches, 1)
	assert.Equal(t, "Ahri", d.narrator.gotMatches[0].Champion)
}

func TestAnalyzePerformanceCamelCase(t *testing.T) {
	h, d := newTestServer()

	rec := serve(h, http.MethodPost, "/api/analyze-performance",
		`{"summonerName":"Caps","matchHistory":[{"champion":"Sylas","result":"Defeat","kda":"4/5/6","duration":"28:00","gameMode":"CLASSIC"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"analysis":"Nice games."}`, rec.Body.String())
	assert.Equal(t, "Caps", d.narrator.gotName)
	require.Len(t, d.narrator.gotMatches, 1)
	assert.Equal(t, "Sylas", d.narrator.gotMatches[0].Champion)
}

func TestAnalyzePerformanceValidation(t *testing.T) {
	h, _ := newTestServer()

	rec := serve(h, http.MethodPost, "/api/analyze-performance", `{"match_history":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Summoner name is required"}`, rec.Body.String())

	rec = serve(h, http.MethodPost, "/api/analyze-performance", `{"summoner_name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON body"}`, rec.Body.String())
}

func TestAnalyzeText(t *testing.T) {
	h, _ := newTestServer()

	rec := serve(h, http.MethodPost, "/analyze", `{"text":"gg"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"original_text":"gg","analysis":"analysis of gg","status":"success"}`, rec.Body.String())

	rec = serve(h, http.MethodPost, "/analyze", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No text provided"}`, rec.Body.String())
}

func TestRecentSearches(t *testing.T) {
	h, d := newTestServer()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	d.history.searches = []domain.RecentSearch{{ID: "abc", GameName: "Faker", TagLine: "KR1", Puuid: "p1", SearchedAt: at}}

	rec := serve(h, http.MethodGet, "/api/recent-searches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, d.history.gotLimit)
	assert.JSONEq(t, `{"searches":[{"id":"abc","gameName":"Faker","tagLine":"KR1","puuid":"p1","searchedAt":"2025-03-01T12:00:00Z"}]}`, rec.Body.String())
}

func TestSearchSuggestions(t *testing.T) {
	h, d := newTestServer()

	rec := serve(h, http.MethodGet, "/api/search?q=fak", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fak", d.history.gotQuery)
	assert.Equal(t, 10, d.history.gotLimit)
	assert.JSONEq(t, `{"suggestions":[]}`, rec.Body.String())

	d.history.gotQuery = ""
	rec = serve(h, http.MethodGet, "/api/search?q=%20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, d.history.gotQuery)
	assert.JSONEq(t, `{"suggestions":[]}`, rec.Body.String())
}

func TestHistoryFailure(t *testing.T) {
	h, d := newTestServer()
	d.history.err = errors.New("database is locked")

	rec := serve(h, http.MethodGet, "/api/recent-searches", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestServer()

	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/health"},
		{http.MethodGet, "/api/analyze-performance"},
		{http.MethodDelete, "/api/summoner/Faker%23KR1"},
	} {
		rec := serve(h, tc.method, tc.target, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, tc.target)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), tc.target)
		assert.NotEmpty(t, rec.Header().Get("Allow"), tc.target)
		assert.Equal(t, map[string]any{"error": "Method not allowed"}, decode(t, rec))
	}
}

func TestUnknownRouteIsJSON(t *testing.T) {
	h, _ := newTestServer()

	for _, target := range []string{"/", "/api/unknown", "/api/summoner/a/b"} {
		rec := serve(h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), target)
		assert.Equal(t, map[string]any{"error": "Not found"}, decode(t, rec))
	}
}

func TestEmptyRiotID(t *testing.T) {
	h, d := newTestServer()
	d.profiles.err = errors.New("lookup must not run")
	d.live.err = errors.New("lookup must not run")

	for _, target := range []string{"/api/summoner/", "/api/live-game/"} {
		rec := serve(h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, map[string]any{"error": "Invalid Riot ID format, expected name#tag"}, decode(t, rec))
	}
	assert.Empty(t, d.profiles.gotID)
}
