package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter 以 key（通常是客戶端 IP）判斷請求是否放行
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// bucket 單一 key 的令牌桶
type bucket struct {
	tokens   float64
	lastTime time.Time
}

// TokenBucket 行程內的令牌桶限流器，每個 key 各自計算
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	rate     float64
	idle     time.Duration
	now      func() time.Time
	lastGC   time.Time
}

// NewTokenBucket 每個 key 在 window 內最多 requests 次，令牌依比例回補
func NewTokenBucket(requests int, window time.Duration) *TokenBucket {
	return &TokenBucket{
		buckets:  make(map[string]*bucket),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		idle:     window,
		now:      time.Now,
	}
}

// Allow 檢查是否允許請求
func (tb *TokenBucket) Allow(_ context.Context, key string) (bool, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	tb.collect(now)

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, lastTime: now}
		tb.buckets[key] = b
	}

	// 添加新令牌
	elapsed := now.Sub(b.lastTime).Seconds()
	b.tokens = min(tb.capacity, b.tokens+elapsed*tb.rate)
	b.lastTime = now

	// 檢查是否有可用令牌
	if b.tokens >= 1 {
		b.tokens--
		return true, nil
	}
	return false, nil
}

// collect 移除閒置超過 idle 的桶，這些桶已回補滿
func (tb *TokenBucket) collect(now time.Time) {
	if now.Sub(tb.lastGC) < tb.idle {
		return
	}
	tb.lastGC = now
	for key, b := range tb.buckets {
		if now.Sub(b.lastTime) >= tb.idle {
			delete(tb.buckets, key)
		}
	}
}
