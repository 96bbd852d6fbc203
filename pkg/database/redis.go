package database

import (
	"context"
	"fmt"

	"mindclass_backend/internal/config"
	"mindclass_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}

	logger.Log.Info("Redis connection established", zap.String("addr", addr))
	return rdb, nil
}
