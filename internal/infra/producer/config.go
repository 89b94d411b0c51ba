package producer

import (
	"errors"
	"time"
)

// Config kafka 生產者設定
type Config struct {
	Brokers []string
	Topic   string

	// -1 等待所有副本確認
	RequiredAcks int
	BatchSize    int
	BatchTimeout time.Duration
	WriteTimeout time.Duration

	// 應用層重試, 第 i 次失敗後等待 RetryDelay * 2^i
	RetryLimit int
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with default settings
func DefaultConfig() *Config {
	return &Config{
		RequiredAcks: -1,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		RetryLimit:   3,
		RetryDelay:   200 * time.Millisecond,
	}
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return errors.New("kafka brokers is required")
	}
	if c.Topic == "" {
		return errors.New("kafka topic is required")
	}
	if c.RetryLimit < 0 {
		return errors.New("retry limit must not be negative")
	}
	return nil
}
