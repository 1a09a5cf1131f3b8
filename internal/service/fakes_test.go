package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"lol-insight/internal/api"
	"lol-insight/internal/config"
	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
)

var notFound = &api.StatusError{Code: http.StatusNotFound}

type fakeRiot struct {
	mu    sync.Mutex
	calls []string

	accounts    map[string]*api.AccountDTO
	accountErr  error
	summoners   map[string]*api.SummonerDTO
	summonerErr error
	leagues     map[string][]api.LeagueEntryDTO
	leagueErrs  map[string]error
	matchIDs    []string
	matchIDsErr error
	matches     map[string]*api.MatchDTO
	matchErrs   map[string]error
	activeGame  *api.ActiveGameDTO
	activeErr   error
}

func (f *fakeRiot) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRiot) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRiot) GetAccountByRiotID(_ context.Context, gameName, tagLine string) (*api.AccountDTO, error) {
	f.record("account:" + gameName + "#" + tagLine)
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	if a, ok := f.accounts[gameName+"#"+tagLine]; ok {
		return a, nil
	}
	return nil, notFound
}

func (f *fakeRiot) GetSummonerByPUUID(_ context.Context, puuid string) (*api.SummonerDTO, error) {
	f.record("summoner:" + puuid)
	if f.summonerErr != nil {
		return nil, f.summonerErr
	}
	if s, ok := f.summoners[puuid]; ok {
		return s, nil
	}
	return nil, notFound
}

func (f *fakeRiot) GetLeagueEntries(_ context.Context, summonerID string) ([]api.LeagueEntryDTO, error) {
	f.record("league:" + summonerID)
	if err, ok := f.leagueErrs[summonerID]; ok {
		return nil, err
	}
	return f.leagues[summonerID], nil
}

func (f *fakeRiot) GetMatchIDs(_ context.Context, puuid string, count int) ([]string, error) {
	f.record("matchids:" + puuid)
	if f.matchIDsErr != nil {
		return nil, f.matchIDsErr
	}
	ids := f.matchIDs
	if len(ids) > count {
		ids = ids[:count]
	}
	return ids, nil
}

func (f *fakeRiot) GetMatch(_ context.Context, matchID string) (*api.MatchDTO, error) {
	f.record("match:" + matchID)
	if err, ok := f.matchErrs[matchID]; ok {
		return nil, err
	}
	if m, ok := f.matches[matchID]; ok {
		return m, nil
	}
	return nil, &api.StatusError{Code: http.StatusInternalServerError}
}

func (f *fakeRiot) GetActiveGame(_ context.Context, summonerID string) (*api.ActiveGameDTO, error) {
	f.record("active:" + summonerID)
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	if f.activeGame == nil {
		return nil, notFound
	}
	return f.activeGame, nil
}

type fakeCompleter struct {
	reply    string
	err      error
	messages []api.ChatMessage
}

func (f *fakeCompleter) Complete(_ context.Context, messages []api.ChatMessage, _ int, _ float64) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

type fakeCache struct {
	entries map[string]domain.Account
}

func (c *fakeCache) Get(_ context.Context, id domain.PlayerIdentifier) (*domain.Account, bool) {
	acc, ok := c.entries[id.String()]
	if !ok {
		return nil, false
	}
	return &acc, true
}

func (c *fakeCache) Set(_ context.Context, id domain.PlayerIdentifier, acc domain.Account) {
	if c.entries == nil {
		c.entries = map[string]domain.Account{}
	}
	c.entries[id.String()] = acc
}

type fakeRecorder struct {
	recorded []domain.Account
	err      error
}

func (r *fakeRecorder) Record(_ context.Context, acc domain.Account, _ time.Time) error {
	r.recorded = append(r.recorded, acc)
	return r.err
}

func testConfig(concurrency int) *config.Config {
	return &config.Config{FetchConcurrency: concurrency}
}

func nop() zerolog.Logger {
	return zerolog.Nop()
}

func match(id, mode string, duration int64, participants ...api.MatchParticipantDTO) *api.MatchDTO {
	m := &api.MatchDTO{}
	m.Metadata.MatchID = id
	m.Info = api.MatchInfoDTO{GameDuration: duration, GameMode: mode, Participants: participants}
	return m
}
