package service

import (
	"context"
	"time"

	"lol-insight/internal/constants"
	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
)

// ProfileService assembles the profile page payload for one Riot ID.
type ProfileService struct {
	resolver  *IdentityResolver
	summoners *SummonerService
	matches   *MatchHistoryService
	history   SearchRecorder
	logger    zerolog.Logger
}

func NewProfileService(resolver *IdentityResolver, summoners *SummonerService, matches *MatchHistoryService, history SearchRecorder, logger zerolog.Logger) *ProfileService {
	return &ProfileService{resolver: resolver, summoners: summoners, matches: matches, history: history, logger: logger}
}

func (s *ProfileService) Lookup(ctx context.Context, riotID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	log := logFor(ctx, &s.logger)
	log.Info().Str("riot_id", riotID).Msg("looking up profile")

	acc, err := s.resolver.Resolve(ctx, riotID)
	if err != nil {
		return nil, err
	}

	summoner, err := s.summoners.Summoner(ctx, acc.Puuid)
	if err != nil {
		return nil, err
	}

	if summoner.SummonerID == "" {
		log.Debug().Str("puuid", acc.Puuid).Msg("summoner id missing, skipping ranked lookup")
	}

	profile := &domain.Profile{
		Account:       acc,
		Summoner:      summoner,
		Ranked:        s.summoners.SoloRank(ctx, summoner.SummonerID),
		RecentMatches: s.matches.Recent(ctx, acc.Puuid),
	}

	s.recordSearch(ctx, acc)

	log.Info().
		Str("puuid", acc.Puuid).
		Str("tier", profile.Ranked.Tier).
		Int("matches", len(profile.RecentMatches)).
		Msg("profile assembled")
	return profile, nil
}

func (s *ProfileService) recordSearch(ctx context.Context, acc domain.Account) {
	if s.history == nil {
		return
	}
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.history.Record(dbCtx, acc, time.Now()); err != nil {
		logFor(ctx, &s.logger).Warn().Err(err).Str("puuid", acc.Puuid).Msg("failed to record search")
	}
}
