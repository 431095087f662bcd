package redis

import (
	"context"
	"fmt"
	"time"

	"vida-likes/internal/config"
	"vida-likes/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// StatsKeyPrefix 统计缓存的键前缀，多个实例共用一个 Redis 时按应用名隔离
func StatsKeyPrefix(appName string) string {
	return appName + ":stats:"
}

// NewClient 创建客户端并确认可连通，Ping 失败时关闭客户端
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// OpenStatsCache 连接 Redis 并返回统计结果缓存，调用方负责 Close
func OpenStatsCache(ctx context.Context, cfg *config.RedisConfig, appName string) (*JSONCache, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	prefix := StatsKeyPrefix(appName)
	logger.Info("Statistics cache connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.String("prefix", prefix),
	)
	return NewJSONCache(client, prefix), nil
}
