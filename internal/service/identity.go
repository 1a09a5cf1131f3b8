package service

import (
	"context"
	"net/http"

	"lol-insight/internal/api"
	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
)

type IdentityResolver struct {
	riot   RiotAPI
	cache  AccountCache
	logger zerolog.Logger
}

func NewIdentityResolver(riot RiotAPI, cache AccountCache, logger zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{riot: riot, cache: cache, logger: logger}
}

// Resolve turns "name#tag" into an Account. Malformed input fails before any
// outbound call.
func (r *IdentityResolver) Resolve(ctx context.Context, raw string) (domain.Account, error) {
	id, err := domain.ParseIdentifier(raw)
	if err != nil {
		return domain.Account{}, err
	}

	log := logFor(ctx, &r.logger)

	if r.cache != nil {
		if acc, ok := r.cache.Get(ctx, id); ok {
			log.Debug().Str("riot_id", id.String()).Msg("account cache hit")
			return *acc, nil
		}
	}

	dto, err := r.riot.GetAccountByRiotID(ctx, id.GameName, id.TagLine)
	if err != nil {
		if api.StatusCode(err) == http.StatusNotFound {
			log.Info().Str("riot_id", id.String()).Msg("account not found")
			return domain.Account{}, domain.ErrAccountNotFound
		}
		log.Error().Err(err).Str("riot_id", id.String()).Msg("failed to fetch account")
		return domain.Account{}, upstreamError("account lookup", err)
	}

	acc := domain.Account{Puuid: dto.Puuid, GameName: dto.GameName, TagLine: dto.TagLine}
	if acc.GameName == "" {
		acc.GameName = id.GameName
	}
	if acc.TagLine == "" {
		acc.TagLine = id.TagLine
	}

	if r.cache != nil {
		r.cache.Set(ctx, id, acc)
	}

	log.Debug().Str("riot_id", id.String()).Str("puuid", acc.Puuid).Msg("account resolved")
	return acc, nil
}
