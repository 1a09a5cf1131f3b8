package service

import (
	"context"
	"errors"

	"lol-insight/internal/api"
	"lol-insight/internal/constants"
	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
)

// SummonerService fetches summoner metadata and ranked standing.
type SummonerService struct {
	riot   RiotAPI
	logger zerolog.Logger
}

func NewSummonerService(riot RiotAPI, logger zerolog.Logger) *SummonerService {
	return &SummonerService{riot: riot, logger: logger}
}

// Summoner is a required call: any non-200 is ErrSummonerNotFound.
func (s *SummonerService) Summoner(ctx context.Context, puuid string) (domain.SummonerProfile, error) {
	dto, err := s.riot.GetSummonerByPUUID(ctx, puuid)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) {
			logFor(ctx, &s.logger).Info().Int("status", se.Code).Str("puuid", puuid).Msg("summoner not found")
			return domain.SummonerProfile{}, domain.ErrSummonerNotFound
		}
		logFor(ctx, &s.logger).Error().Err(err).Str("puuid", puuid).Msg("failed to fetch summoner")
		return domain.SummonerProfile{}, upstreamError("summoner lookup", err)
	}

	p := domain.SummonerProfile{
		Puuid:         dto.Puuid,
		SummonerLevel: dto.SummonerLevel,
		ProfileIconID: dto.ProfileIconID,
		SummonerID:    dto.ID,
	}
	if p.Puuid == "" {
		p.Puuid = puuid
	}
	return p, nil
}

// SoloRank never fails: a missing summoner id or any upstream error yields
// the UNRANKED default.
func (s *SummonerService) SoloRank(ctx context.Context, summonerID string) domain.RankedEntry {
	if summonerID == "" {
		return domain.UnrankedEntry()
	}

	entries, err := s.riot.GetLeagueEntries(ctx, summonerID)
	if err != nil {
		logFor(ctx, &s.logger).Warn().
			Err(err).
			Str("summoner_id", summonerID).
			Int("retry_after_s", api.RetryAfter(err)).
			Msg("ranked lookup failed, treating as unranked")
		return domain.UnrankedEntry()
	}
	return SelectSoloQueue(entries)
}

// SelectSoloQueue returns the first RANKED_SOLO_5x5 entry, or UNRANKED.
func SelectSoloQueue(entries []api.LeagueEntryDTO) domain.RankedEntry {
	for _, e := range entries {
		if e.QueueType == constants.SoloQueueType {
			return domain.RankedEntry{
				Tier:         e.Tier,
				Rank:         e.Rank,
				LeaguePoints: e.LeaguePoints,
				Wins:         e.Wins,
				Losses:       e.Losses,
				QueueType:    e.QueueType,
			}
		}
	}
	return domain.UnrankedEntry()
}
