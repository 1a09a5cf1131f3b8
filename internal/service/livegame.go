package service

import (
	"context"
	"net/http"

	"lol-insight/internal/api"
	"lol-insight/internal/champions"
	"lol-insight/internal/config"
	"lol-insight/internal/constants"
	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
)

type LiveGameService struct {
	riot        RiotAPI
	resolver    *IdentityResolver
	summoners   *SummonerService
	predictor   *Predictor
	concurrency int
	logger      zerolog.Logger
}

func NewLiveGameService(riot RiotAPI, resolver *IdentityResolver, summoners *SummonerService, predictor *Predictor, cfg *config.Config, logger zerolog.Logger) *LiveGameService {
	return &LiveGameService{
		riot:        riot,
		resolver:    resolver,
		summoners:   summoners,
		predictor:   predictor,
		concurrency: cfg.FetchConcurrency,
		logger:      logger,
	}
}

// Lookup returns the in-progress game for riotID. Not being in a game is a
// normal result with InGame false, not an error.
func (s *LiveGameService) Lookup(ctx context.Context, riotID string) (domain.LiveGame, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	log := logFor(ctx, &s.logger)

	acc, err := s.resolver.Resolve(ctx, riotID)
	if err != nil {
		return domain.LiveGame{}, err
	}

	summoner, err := s.summoners.Summoner(ctx, acc.Puuid)
	if err != nil {
		return domain.LiveGame{}, err
	}
	if summoner.SummonerID == "" {
		log.Info().Str("puuid", acc.Puuid).Msg("summoner id missing, cannot query spectator")
		return domain.LiveGame{InGame: false}, nil
	}

	game, err := s.riot.GetActiveGame(ctx, summoner.SummonerID)
	if err != nil {
		if api.StatusCode(err) == http.StatusNotFound {
			log.Info().Str("puuid", acc.Puuid).Msg("player not in game")
			return domain.LiveGame{InGame: false}, nil
		}
		log.Error().Err(err).Str("puuid", acc.Puuid).Msg("failed to fetch active game")
		return domain.LiveGame{}, upstreamError("active game lookup", err)
	}

	participants := compact(fetchEach(ctx, s.concurrency, game.Participants, s.participant))
	team1, team2 := PartitionTeams(participants)

	live := domain.LiveGame{
		InGame:            true,
		GameMode:          game.GameMode,
		GameLength:        game.GameLength,
		GameQueueConfigID: game.GameQueueConfigID,
		Team1:             team1,
		Team2:             team2,
		Prediction:        s.predictor.Predict(ctx, team1, team2),
	}

	log.Info().
		Str("puuid", acc.Puuid).
		Str("game_mode", live.GameMode).
		Int("team1", len(team1)).
		Int("team2", len(team2)).
		Msg("live game assembled")
	return live, nil
}

// participant enriches one spectator entry. Lookups here only degrade.
func (s *LiveGameService) participant(ctx context.Context, p api.ActiveParticipantDTO) *domain.LiveParticipant {
	lp := &domain.LiveParticipant{
		SummonerName:  p.DisplayName(),
		ChampionID:    p.ChampionID,
		ChampionName:  champions.Name(p.ChampionID),
		TeamID:        p.TeamID,
		Spells:        []int{p.Spell1ID, p.Spell2ID},
		IsBot:         p.Bot,
		Puuid:         p.Puuid,
		ProfileIconID: p.ProfileIconID,
		Rank:          domain.UnrankedEntry(),
	}
	if p.Bot {
		return lp
	}

	// The spectator payload carries no level; the summoner record does, and
	// also supplies the summoner id when the spectator entry omits it.
	summonerID := p.SummonerID
	if p.Puuid != "" {
		if sp, err := s.summoners.Summoner(ctx, p.Puuid); err == nil {
			lp.SummonerLevel = sp.SummonerLevel
			if summonerID == "" {
				summonerID = sp.SummonerID
			}
		}
	}

	lp.Rank = s.summoners.SoloRank(ctx, summonerID)
	return lp
}

// PartitionTeams splits participants by team id 100/200; any other team id
// lands in neither slice.
func PartitionTeams(participants []domain.LiveParticipant) (team1, team2 []domain.LiveParticipant) {
	team1 = []domain.LiveParticipant{}
	team2 = []domain.LiveParticipant{}
	for _, p := range participants {
		switch p.TeamID {
		case constants.BlueTeamID:
			team1 = append(team1, p)
		case constants.RedTeamID:
			team2 = append(team2, p)
		}
	}
	return team1, team2
}
