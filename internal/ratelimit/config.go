package ratelimit

import (
	"context"
)

type RateLimitType string

var (
	TokenBucketType = RateLimitType("token_bucket")
	RedisBucketType = RateLimitType("redis_bucket")
	NoLimitType     = RateLimitType("none")
)

// Limiter Allow 回傳 false 代表應拒絕本次請求
type Limiter interface {
	Allow(ctx context.Context) bool
}

type LimiterConfig struct {
	Key      string
	Capacity int
	RatePS   float64 // tokens/秒
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Key:      "global",
		Capacity: 100,
		RatePS:   50,
	}
}

type noLimit struct{}

func (noLimit) Allow(ctx context.Context) bool { return true }

func NoLimit() Limiter { return noLimit{} }
