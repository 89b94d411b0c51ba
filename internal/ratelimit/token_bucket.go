package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket 單機限流, 取 token 時依經過時間補充
// 不需要背景 goroutine, 也不需要關閉
type TokenBucket struct {
	capacity float64
	ratePS   float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
	now    func() time.Time
}

func NewTokenBucket(config *LimiterConfig) *TokenBucket {
	cfg := GetDefaultLimiterConfig()
	if config != nil {
		cfg = *config
	}
	return newTokenBucket(cfg, time.Now)
}

func newTokenBucket(cfg LimiterConfig, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity: float64(cfg.Capacity),
		ratePS:   cfg.RatePS,
		tokens:   float64(cfg.Capacity),
		last:     now(),
		now:      now,
	}
}

func (b *TokenBucket) Allow(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// refill 小數部分保留, 慢速補充也不會遺失
func (b *TokenBucket) refill() {
	now := b.now()
	elapsed := now.Sub(b.last)
	if elapsed <= 0 {
		return
	}
	b.last = now
	b.tokens += elapsed.Seconds() * b.ratePS
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
}
