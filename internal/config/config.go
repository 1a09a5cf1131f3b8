package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Placeholder values shipped in .env.example; treated as "not configured".
const (
	RiotKeyPlaceholder       = "your-riot-api-key-here"
	CompletionKeyPlaceholder = "your-api-key-here"
)

type Config struct {
	RiotAPIKey      string
	RiotRegionalURL string // account + match endpoints
	RiotPlatformURL string // summoner, league, spectator endpoints

	CompletionAPIKey string
	CompletionURL    string
	CompletionModel  string

	ServerPort       string
	LogLevel         string
	DBPath           string
	DBMaxOpenConns   int
	RedisURL         string
	AccountCacheTTL  time.Duration
	FetchConcurrency int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAPIKey:      getEnv("RIOT_API_KEY", RiotKeyPlaceholder),
		RiotRegionalURL: getEnv("RIOT_REGIONAL_URL", "https://europe.api.riotgames.com"),
		RiotPlatformURL: getEnv("RIOT_PLATFORM_URL", "https://eun1.api.riotgames.com"),

		CompletionAPIKey: getEnv("OPENROUTER_API_KEY", CompletionKeyPlaceholder),
		CompletionURL:    getEnv("OPENROUTER_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		CompletionModel:  getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),

		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DBPath:           getEnv("DB_PATH", "lol-insight.db"),
		DBMaxOpenConns:   getInt(logger, "DB_MAX_OPEN_CONNS", 4),
		RedisURL:         getEnv("REDIS_URL", ""),
		AccountCacheTTL:  getDuration(logger, "ACCOUNT_CACHE_TTL", 10*time.Minute),
		FetchConcurrency: getInt(logger, "FETCH_CONCURRENCY", 1),
	}

	if cfg.FetchConcurrency < 1 {
		cfg.FetchConcurrency = 1
	}
	if cfg.DBMaxOpenConns < 1 {
		cfg.DBMaxOpenConns = 1
	}

	if !cfg.RiotConfigured() {
		logger.Warn().Msg("RIOT_API_KEY is not set, riot lookups will fail with 503")
	}
	if !cfg.CompletionConfigured() {
		logger.Warn().Msg("OPENROUTER_API_KEY is not set, predictions and narration will use fallbacks")
	}

	logger.Info().
		Str("riot_regional_url", cfg.RiotRegionalURL).
		Str("riot_platform_url", cfg.RiotPlatformURL).
		Str("completion_model", cfg.CompletionModel).
		Str("db_path", cfg.DBPath).
		Int("db_max_open_conns", cfg.DBMaxOpenConns).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Bool("redis", cfg.RedisURL != "").
		Dur("account_cache_ttl", cfg.AccountCacheTTL).
		Int("fetch_concurrency", cfg.FetchConcurrency).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) RiotConfigured() bool {
	return c.RiotAPIKey != "" && c.RiotAPIKey != RiotKeyPlaceholder
}

func (c *Config) CompletionConfigured() bool {
	return c.CompletionAPIKey != "" && c.CompletionAPIKey != CompletionKeyPlaceholder
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(logger zerolog.Logger, key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Str("value", v).Msg("invalid duration, using default")
		return fallback
	}
	return d
}

func getInt(logger zerolog.Logger, key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Str("value", v).Msg("invalid integer, using default")
		return fallback
	}
	return n
}
