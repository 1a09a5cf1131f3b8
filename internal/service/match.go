package service

import (
	"context"
	"fmt"

	"lol-insight/internal/api"
	"lol-insight/internal/config"
	"lol-insight/internal/constants"
	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
)

type MatchHistoryService struct {
	riot        RiotAPI
	concurrency int
	logger      zerolog.Logger
}

func NewMatchHistoryService(riot RiotAPI, cfg *config.Config, logger zerolog.Logger) *MatchHistoryService {
	return &MatchHistoryService{riot: riot, concurrency: cfg.FetchConcurrency, logger: logger}
}

// Recent returns up to MatchDetailLimit summaries in upstream order. Every
// failure along the way shrinks the result instead of failing it.
func (s *MatchHistoryService) Recent(ctx context.Context, puuid string) []domain.MatchSummary {
	log := logFor(ctx, &s.logger)

	ids, err := s.riot.GetMatchIDs(ctx, puuid, constants.MatchIDCount)
	if err != nil {
		log.Warn().Err(err).Str("puuid", puuid).Int("retry_after_s", api.RetryAfter(err)).Msg("failed to fetch match ids")
		return []domain.MatchSummary{}
	}
	if len(ids) > constants.MatchDetailLimit {
		ids = ids[:constants.MatchDetailLimit]
	}

	summaries := fetchEach(ctx, s.concurrency, ids, func(ctx context.Context, matchID string) *domain.MatchSummary {
		match, err := s.riot.GetMatch(ctx, matchID)
		if err != nil {
			log.Warn().Err(err).Str("match_id", matchID).Int("retry_after_s", api.RetryAfter(err)).Msg("skipping match")
			return nil
		}
		summary := Summarize(match, puuid)
		if summary == nil {
			log.Debug().Str("match_id", matchID).Str("puuid", puuid).Msg("player not in match participants")
		}
		return summary
	})

	result := compact(summaries)
	log.Debug().Str("puuid", puuid).Int("candidates", len(ids)).Int("count", len(result)).Msg("match history fetched")
	return result
}

// Summarize projects match onto the participant with puuid, or nil.
func Summarize(match *api.MatchDTO, puuid string) *domain.MatchSummary {
	if match == nil {
		return nil
	}
	for _, p := range match.Info.Participants {
		if p.Puuid != puuid {
			continue
		}
		result := domain.ResultDefeat
		if p.Win {
			result = domain.ResultVictory
		}
		return &domain.MatchSummary{
			Champion: p.ChampionName,
			Result:   result,
			KDA:      fmt.Sprintf("%d/%d/%d", p.Kills, p.Deaths, p.Assists),
			Duration: FormatDuration(match.Info.GameDuration),
			GameMode: match.Info.GameMode,
		}
	}
	return nil
}

// FormatDuration renders seconds as M:SS.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
