package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/TLMHoang/TriviaAPI/internal/config"
)

// NewRedisClient создает клиент Redis и проверяет подключение
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis configuration error: addr must be provided")
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:       []string{cfg.Addr},
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if _, err := client.Ping(pingCtx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (addr: %s): %w", cfg.Addr, err)
	}

	return client, nil
}
