package config

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedis اتصال به Redis و بررسی با Ping
func NewRedis(ctx context.Context, cfg *Config, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	s, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, err
	}
	logger.Info("✅ Connected to Redis", zap.String("ping", s))
	return client, nil
}
