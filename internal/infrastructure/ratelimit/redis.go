package ratelimit

import (
	"context"
	"fmt"
	"time"

	"meal-planner/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "meal-planner:ratelimit"

// RedisLimiter 以 Redis 計數的固定視窗限流器，多個實例共用額度
type RedisLimiter struct {
	client   *redis.Client
	requests int64
	window   time.Duration
	now      func() time.Time
}

// NewRedisClient 依設定建立 Redis 連線並測試
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisLimiter 每個 key 在每個 window 內最多 requests 次
func NewRedisLimiter(client *redis.Client, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		requests: int64(requests),
		window:   window,
		now:      time.Now,
	}
}

// Allow 累加當前視窗的計數，超過上限時拒絕
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := l.windowKey(key, l.now())

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.Expire(ctx, windowKey, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	return incr.Val() <= l.requests, nil
}

// Ping 就緒檢查
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// windowKey 同一視窗內的請求共用同一個計數 key
func (l *RedisLimiter) windowKey(key string, now time.Time) string {
	slot := now.UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%s:%d", keyPrefix, key, slot)
}
