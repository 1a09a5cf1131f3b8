// Package service implements the lookup pipeline: Riot ID resolution,
// profile and match aggregation, live games and completion-backed commentary.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lol-insight/internal/api"
	"lol-insight/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RiotAPI is the subset of the Riot REST API the pipeline consumes.
type RiotAPI interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*api.AccountDTO, error)
	GetSummonerByPUUID(ctx context.Context, puuid string) (*api.SummonerDTO, error)
	GetLeagueEntries(ctx context.Context, summonerID string) ([]api.LeagueEntryDTO, error)
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (*api.MatchDTO, error)
	GetActiveGame(ctx context.Context, summonerID string) (*api.ActiveGameDTO, error)
}

type Completer interface {
	Complete(ctx context.Context, messages []api.ChatMessage, maxTokens int, temperature float64) (string, error)
}

type AccountCache interface {
	Get(ctx context.Context, id domain.PlayerIdentifier) (*domain.Account, bool)
	Set(ctx context.Context, id domain.PlayerIdentifier, acc domain.Account)
}

type SearchRecorder interface {
	Record(ctx context.Context, acc domain.Account, at time.Time) error
}

// fetchEach calls fetch for every item, at most limit at a time, and returns
// the results in input order. A nil result marks an item that produced nothing.
func fetchEach[In, Out any](ctx context.Context, limit int, items []In, fetch func(context.Context, In) *Out) []*Out {
	results := make([]*Out, len(items))

	var g errgroup.Group
	g.SetLimit(max(limit, 1))
	for i, item := range items {
		g.Go(func() error {
			results[i] = fetch(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// compact drops nil entries, keeping order.
func compact[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, *it)
		}
	}
	return out
}

// upstreamError classifies a failed required call. Timeouts and missing
// configuration keep their sentinels; everything else becomes *domain.UpstreamError.
func upstreamError(op string, err error) error {
	if errors.Is(err, domain.ErrUpstreamTimeout) || errors.Is(err, domain.ErrNotConfigured) ||
		errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &domain.UpstreamError{Op: op, Status: api.StatusCode(err), Err: err}
}

func logFor(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}
