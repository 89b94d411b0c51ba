package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "rate_limit:"

// RedisClient 介面定義
type RedisClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RsBucketToken 多個服務實例共用的 token bucket
// 時間以毫秒傳入, 避免 lua number 精度問題
type RsBucketToken struct {
	LimiterConfig
	client RedisClient
}

const tokenBucketScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local currentTokens = tonumber(bucket[1])
	local lastRefill = tonumber(bucket[2])

	-- key 不存在時以滿桶初始化
	if currentTokens == nil then
		currentTokens = capacity
		lastRefill = now
	end

	local elapsedSeconds = (now - lastRefill) / 1000
	if elapsedSeconds < 0 then
		elapsedSeconds = 0
	end
	currentTokens = math.min(capacity, currentTokens + elapsedSeconds * rate)

	local allowed = 0
	if currentTokens >= 1 then
		currentTokens = currentTokens - 1
		allowed = 1
	end

	redis.call('HSET', key, 'tokens', tostring(currentTokens), 'last_refill', tostring(now))
	redis.call('EXPIRE', key, 60)
	return allowed
`

func NewRsBucketToken(client RedisClient, config *LimiterConfig) *RsBucketToken {
	rb := &RsBucketToken{
		client: client,
	}

	if config != nil {
		rb.LimiterConfig = *config
	} else {
		rb.LimiterConfig = GetDefaultLimiterConfig()
	}

	return rb
}

// Allow redis 錯誤時放行
func (r *RsBucketToken) Allow(ctx context.Context) bool {
	result, err := r.client.Eval(
		ctx,
		tokenBucketScript,
		[]string{redisKeyPrefix + r.Key},
		r.Capacity,
		r.RatePS,
		time.Now().UnixMilli(),
	).Int64()
	if err != nil {
		return true
	}

	return result == 1
}
