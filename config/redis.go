package config

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CartCache holds in-progress booking carts.
var CartCache *redis.Client

func ConnectRedis() {
	CartCache = redis.NewClient(&redis.Options{
		Addr:     AppConfig.RedisAddr,
		Password: AppConfig.RedisPassword,
		DB:       AppConfig.RedisCartDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CartCache.Ping(ctx).Result(); err != nil {
		zap.L().Fatal("Failed to connect to Redis (Carts)", zap.Error(err))
	}
}
