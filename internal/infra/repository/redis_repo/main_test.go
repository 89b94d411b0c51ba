package redis_repo

import (
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis 使用 miniredis, 不依賴外部redis
func setupTestRedis() (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	return mr, redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
