// Package cache holds the optional Redis cache for Riot ID lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"lol-insight/internal/config"
	"lol-insight/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type AccountCache struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
	logger  zerolog.Logger
}

// NewAccountCache connects to REDIS_URL. Any setup failure yields a disabled
// cache so lookups always fall through to the Riot API.
func NewAccountCache(cfg *config.Config, logger zerolog.Logger) *AccountCache {
	disabled := &AccountCache{logger: logger}

	if cfg.RedisURL == "" {
		logger.Info().Msg("redis not configured, account cache disabled")
		return disabled
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to parse REDIS_URL, account cache disabled")
		return disabled
	}

	opt.PoolSize = 5
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), opt.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, account cache disabled")
		_ = client.Close()
		return disabled
	}

	logger.Info().Dur("ttl", cfg.AccountCacheTTL).Msg("redis connected, account cache enabled")
	return &AccountCache{client: client, enabled: true, ttl: cfg.AccountCacheTTL, logger: logger}
}

func (c *AccountCache) Enabled() bool {
	return c != nil && c.enabled
}

// Get reports a miss on any redis or decode error.
func (c *AccountCache) Get(ctx context.Context, id domain.PlayerIdentifier) (*domain.Account, bool) {
	if !c.Enabled() {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("riot_id", id.String()).Msg("account cache read failed")
		return nil, false
	}

	var acc domain.Account
	if err := json.Unmarshal([]byte(raw), &acc); err != nil || acc.Puuid == "" {
		c.logger.Warn().Str("riot_id", id.String()).Msg("discarding malformed cached account")
		return nil, false
	}
	return &acc, true
}

func (c *AccountCache) Set(ctx context.Context, id domain.PlayerIdentifier, acc domain.Account) {
	if !c.Enabled() || acc.Puuid == "" {
		return
	}

	data, err := json.Marshal(acc)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(id), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("riot_id", id.String()).Msg("account cache write failed")
	}
}

func (c *AccountCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func key(id domain.PlayerIdentifier) string {
	return "account:" + strings.ToLower(id.GameName) + "#" + strings.ToLower(id.TagLine)
}
