package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"qr-seat-reservation/internal/handler/middleware"
	"qr-seat-reservation/internal/pkg/config"
	"qr-seat-reservation/internal/pkg/ratelimit"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedisClient,
		NewRateLimiter,
	),
)

// NewRedisClient returns nil when REDIS_ADDR is unset or the server is unreachable.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis is unreachable, continuing without it", "addr", cfg.Redis.Addr, "error", err)
		_ = client.Close()
		return nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

// NewRateLimiter returns an untyped nil when limiting is disabled so the router
// sees a nil interface.
func NewRateLimiter(cfg config.Config, client *redis.Client) middleware.RateLimiter {
	if !cfg.RateLimit.Enabled || client == nil {
		if cfg.RateLimit.Enabled {
			slog.Warn("rate limiting is enabled but redis is not available; check-ins are not limited")
		}
		return nil
	}
	return ratelimit.NewTokenBucket(client, ratelimit.Config{
		Capacity:       cfg.RateLimit.Capacity,
		RefillTokens:   cfg.RateLimit.RefillTokens,
		RefillInterval: cfg.RateLimit.RefillInterval,
		TTL:            cfg.RateLimit.TTL,
		Prefix:         cfg.RateLimit.Prefix,
	})
}
