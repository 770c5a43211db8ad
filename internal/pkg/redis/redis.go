package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/configs"
)

type RedisClient struct {
	Client *redis.Client
	log    *logrus.Logger
}

func NewRedisClient(cfg *configs.RedisConfig, log *logrus.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	log.WithField("addr", cfg.Addr).Info("Connected to Redis.")
	return &RedisClient{Client: rdb, log: log}, nil
}

// NewFromClient wraps an existing client, used by tests against miniredis.
func NewFromClient(rdb *redis.Client, log *logrus.Logger) *RedisClient {
	return &RedisClient{Client: rdb, log: log}
}

func (rc *RedisClient) Close() {
	if rc.Client != nil {
		if err := rc.Client.Close(); err != nil {
			rc.log.Errorf("Failed to close Redis connection: %v", err)
		}
	}
}
