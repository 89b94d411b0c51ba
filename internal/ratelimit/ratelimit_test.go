package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTokenBucket_Basic(t *testing.T) {
	// 容量5, 每秒補充2個
	clock := &fakeClock{t: time.Unix(0, 0)}
	bucket := newTokenBucket(LimiterConfig{Capacity: 5, RatePS: 2}, clock.now)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.Truef(t, bucket.Allow(ctx), "應該允許第 %d 次請求", i+1)
	}
	require.False(t, bucket.Allow(ctx), "超過容量限制應該被拒絕")

	clock.advance(time.Second)
	require.True(t, bucket.Allow(ctx))
	require.True(t, bucket.Allow(ctx))
	require.False(t, bucket.Allow(ctx))
}

func TestTokenBucket_FractionalRefill(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	bucket := newTokenBucket(LimiterConfig{Capacity: 1, RatePS: 4}, clock.now)

	ctx := context.Background()
	require.True(t, bucket.Allow(ctx))

	// 每次不足一個 token, 累積後補滿
	for i := 0; i < 3; i++ {
		clock.advance(100 * time.Millisecond)
		require.False(t, bucket.Allow(ctx))
	}
	clock.advance(100 * time.Millisecond)
	require.True(t, bucket.Allow(ctx))
}

func TestTokenBucket_CapacityCap(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	bucket := newTokenBucket(LimiterConfig{Capacity: 2, RatePS: 10}, clock.now)

	clock.advance(time.Hour)
	ctx := context.Background()
	require.True(t, bucket.Allow(ctx))
	require.True(t, bucket.Allow(ctx))
	require.False(t, bucket.Allow(ctx))
}

func TestTokenBucket_RealClock(t *testing.T) {
	bucket := NewTokenBucket(&LimiterConfig{Capacity: 1, RatePS: 50})

	ctx := context.Background()
	require.True(t, bucket.Allow(ctx))
	require.Eventually(t, func() bool {
		return bucket.Allow(ctx)
	}, time.Second, 5*time.Millisecond)
}

type RsTokenBucketTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	ctx    context.Context
}

func TestRsTokenBucketSuite(t *testing.T) {
	suite.Run(t, new(RsTokenBucketTestSuite))
}

func (s *RsTokenBucketTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.ctx = context.Background()
}

func (s *RsTokenBucketTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func (s *RsTokenBucketTestSuite) TestBasicRateLimit() {
	config := LimiterConfig{
		Key:      "api",
		Capacity: 5,
		RatePS:   0.001,
	}
	bucket := NewRsBucketToken(s.client, &config)

	for i := 0; i < 5; i++ {
		s.Truef(bucket.Allow(s.ctx), "應該允許第 %d 次請求", i+1)
	}
	s.False(bucket.Allow(s.ctx))
	s.True(s.mr.Exists("rate_limit:api"))
}

func (s *RsTokenBucketTestSuite) TestSharedAcrossInstances() {
	config := LimiterConfig{
		Key:      "shared",
		Capacity: 3,
		RatePS:   0.001,
	}
	a := NewRsBucketToken(s.client, &config)
	b := NewRsBucketToken(s.client, &config)

	s.True(a.Allow(s.ctx))
	s.True(b.Allow(s.ctx))
	s.True(a.Allow(s.ctx))
	s.False(b.Allow(s.ctx))
}

func (s *RsTokenBucketTestSuite) TestRedisDownFailsOpen() {
	bucket := NewRsBucketToken(s.client, &LimiterConfig{Key: "down", Capacity: 1, RatePS: 1})
	s.mr.Close()
	s.True(bucket.Allow(s.ctx))
	s.True(bucket.Allow(s.ctx))
}

func TestNoLimit(t *testing.T) {
	require.True(t, NoLimit().Allow(context.Background()))
}
