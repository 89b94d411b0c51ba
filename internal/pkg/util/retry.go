package util

import (
	"context"
	"time"
)

// RetryConfig 指數退避, 第 i 次失敗後等待 Delay * 2^i, 上限 MaxDelay
type RetryConfig struct {
	Limit    int
	Delay    time.Duration
	MaxDelay time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Limit:    3,
		Delay:    50 * time.Millisecond,
		MaxDelay: 2 * time.Second,
	}
}

func (c RetryConfig) backoff(attempt int) time.Duration {
	d := c.Delay * time.Duration(1<<attempt)
	if c.MaxDelay > 0 && d > c.MaxDelay {
		return c.MaxDelay
	}
	return d
}

// Retry 最多執行 Limit+1 次
// retryable 回傳 false 的錯誤立即返回, context 結束時返回最後一次的錯誤
func Retry(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error, retryable func(error) bool) error {
	var err error
	for i := 0; i <= cfg.Limit; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err == nil {
				err = ctxErr
			}
			return err
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if i == cfg.Limit {
			break
		}

		timer := time.NewTimer(cfg.backoff(i))
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
	return err
}
