package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient connects to Redis when REDIS_ADDR is set. It returns nil
// when Redis is not configured or unreachable; callers then fall back to
// in-process state.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).WithField("addr", cfg.Addr).Warn("⚠️ Redis unreachable, rate limiter will use memory")
		_ = client.Close()
		return nil
	}

	logrus.WithField("addr", cfg.Addr).Info("✅ Redis connected")
	return client
}
