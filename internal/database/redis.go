package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tinybank/backend/internal/config"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

// InitRedis connects to Redis. It returns nil when the server is unreachable
// so callers can fall back to running without it.
func InitRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis connection failed, continuing without redis",
			zap.String("addr", cfg.Addr()), zap.Error(err))
		_ = rdb.Close()
		return nil
	}

	log.Info("redis connection established", zap.String("addr", cfg.Addr()))
	return rdb
}
