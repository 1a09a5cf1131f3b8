package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"strconv"

	"lol-insight/internal/config"
	"lol-insight/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// New opens the search-history database and migrates it. SQLite settings
// travel in the DSN so every pooled connection gets them, not just the first.
func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	logger.Info().Str("path", cfg.DBPath).Int("max_open_conns", cfg.DBMaxOpenConns).Msg("connecting to database")

	db, err := sql.Open("sqlite3", dsn(cfg.DBPath))
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	maxOpen := max(cfg.DBMaxOpenConns, 1)
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(constants.DBMaxIdleConns, maxOpen))
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	if err := checkSettings(db, logger); err != nil {
		_ = db.Close()
		logger.Error().Err(err).Msg("database settings not applied")
		return nil, err
	}
	if err := runMigrations(db, logger); err != nil {
		_ = db.Close()
		logger.Error().Err(err).Msg("failed to run migrations")
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database ready")
	return db, nil
}

// dsn enables WAL, waits out writer contention for DatabaseTimeout and starts
// write transactions with BEGIN IMMEDIATE so the history upsert never fails
// on a lock upgrade.
func dsn(path string) string {
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_synchronous", "NORMAL")
	q.Set("_busy_timeout", strconv.FormatInt(constants.DatabaseTimeout.Milliseconds(), 10))
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

func checkSettings(db *sql.DB, logger zerolog.Logger) error {
	var journal string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journal); err != nil {
		return fmt.Errorf("failed to read journal_mode: %w", err)
	}
	var busy int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&busy); err != nil {
		return fmt.Errorf("failed to read busy_timeout: %w", err)
	}

	logger.Debug().Str("journal_mode", journal).Int("busy_timeout_ms", busy).Msg("SQLite settings")
	if journal != "wal" {
		logger.Warn().Str("journal_mode", journal).Msg("WAL not available, concurrent reads will block on writes")
	}
	return nil
}

func runMigrations(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Info().Msg("migrations completed successfully")
	return nil
}
