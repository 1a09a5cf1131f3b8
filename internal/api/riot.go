package api

import (
	"context"
	"fmt"
	"net/url"

	"lol-insight/internal/config"
	"lol-insight/internal/constants"
	"lol-insight/internal/domain"

	"github.com/valyala/fasthttp"
)

type RiotClient struct {
	apiKey      string
	configured  bool
	regionalURL string
	platformURL string
	client      *fasthttp.Client
}

func NewRiotClient(cfg *config.Config) *RiotClient {
	return &RiotClient{
		apiKey:      cfg.RiotAPIKey,
		configured:  cfg.RiotConfigured(),
		regionalURL: cfg.RiotRegionalURL,
		platformURL: cfg.RiotPlatformURL,
		client:      newHTTPClient(constants.ExternalAPITimeout),
	}
}

func (c *RiotClient) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*AccountDTO, error) {
	return riotGet[AccountDTO](ctx, c, c.regionalURL+riotIDPath(gameName, tagLine))
}

func (c *RiotClient) GetSummonerByPUUID(ctx context.Context, puuid string) (*SummonerDTO, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.platformURL, url.PathEscape(puuid))
	return riotGet[SummonerDTO](ctx, c, u)
}

func (c *RiotClient) GetLeagueEntries(ctx context.Context, summonerID string) ([]LeagueEntryDTO, error) {
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-summoner/%s", c.platformURL, url.PathEscape(summonerID))
	entries, err := riotGet[[]LeagueEntryDTO](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *RiotClient) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d", c.regionalURL, url.PathEscape(puuid), count)
	ids, err := riotGet[[]string](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *RiotClient) GetMatch(ctx context.Context, matchID string) (*MatchDTO, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalURL, url.PathEscape(matchID))
	return riotGet[MatchDTO](ctx, c, u)
}

func (c *RiotClient) GetActiveGame(ctx context.Context, summonerID string) (*ActiveGameDTO, error) {
	u := fmt.Sprintf("%s/lol/spectator/v4/active-games/by-summoner/%s", c.platformURL, url.PathEscape(summonerID))
	return riotGet[ActiveGameDTO](ctx, c, u)
}

func riotGet[T any](ctx context.Context, c *RiotClient, u string) (*T, error) {
	if !c.configured {
		return nil, domain.ErrNotConfigured
	}
	return doRequest[T](ctx, c.client, request{
		method:  fasthttp.MethodGet,
		url:     u,
		headers: map[string]string{"X-Riot-Token": c.apiKey},
	}, constants.ExternalAPITimeout)
}

// riotIDPath escapes both halves so names with spaces, '#' or non-ASCII survive.
func riotIDPath(gameName, tagLine string) string {
	return fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s", url.PathEscape(gameName), url.PathEscape(tagLine))
}
