package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"lol-insight/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// SearchRepository keeps one row per Riot ID that resolved successfully.
type SearchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSearchRepository(sqlDB *sql.DB, logger zerolog.Logger) *SearchRepository {
	return &SearchRepository{db: sqlDB, logger: logger}
}

const upsertSearch = `
INSERT INTO search_history (id, riot_id_key, game_name, tag_line, puuid, searched_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (riot_id_key) DO UPDATE SET
    game_name   = excluded.game_name,
    tag_line    = excluded.tag_line,
    puuid       = excluded.puuid,
    searched_at = excluded.searched_at`

func (r *SearchRepository) Record(ctx context.Context, acc domain.Account, at time.Time) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}

	_, err = r.db.ExecContext(ctx, upsertSearch,
		id, riotIDKey(acc.GameName, acc.TagLine), acc.GameName, acc.TagLine, acc.Puuid, at.UTC())
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

func (r *SearchRepository) Recent(ctx context.Context, limit int) ([]domain.RecentSearch, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, game_name, tag_line, puuid, searched_at
FROM search_history
ORDER BY searched_at DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent searches: %w", err)
	}
	return scanSearches(rows)
}

// Search matches query as a literal substring of the lower-cased "name#tag" key.
func (r *SearchRepository) Search(ctx context.Context, query string, limit int) ([]domain.RecentSearch, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	rows, err := r.db.QueryContext(ctx, `
SELECT id, game_name, tag_line, puuid, searched_at
FROM search_history
WHERE riot_id_key LIKE ? ESCAPE '\'
ORDER BY searched_at DESC
LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	return scanSearches(rows)
}

func scanSearches(rows *sql.Rows) ([]domain.RecentSearch, error) {
	defer rows.Close()

	result := []domain.RecentSearch{}
	for rows.Next() {
		var s domain.RecentSearch
		if err := rows.Scan(&s.ID, &s.GameName, &s.TagLine, &s.Puuid, &s.SearchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// likeEscaper makes user input literal inside a LIKE ... ESCAPE '\' pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func riotIDKey(gameName, tagLine string) string {
	return strings.ToLower(gameName) + "#" + strings.ToLower(tagLine)
}
