package producer

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=producer.go -destination=mock/mock_producer.go -package=mock_producer

// Writer 抽出 kafka.Writer 方便測試
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer interface defines the methods that a Kafka producer must implement
type Producer interface {
	// Produce 同步發送, block到所有消息寫入或重試用盡
	Produce(ctx context.Context, msgs []Message) error
	Close() error
}

type kafkaProducer struct {
	writer Writer
	cfg    *Config
	logger *zerolog.Logger
	closed atomic.Bool
}

// New creates a new Kafka producer
func New(cfg *Config, logger *zerolog.Logger) (Producer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Async:        false,

		// 重試交給應用層處理
		MaxAttempts: 1,

		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second, // 連接超時
					DualStack: true,             // 支援 IPv4/IPv6
					KeepAlive: 30 * time.Second, // TCP keepalive
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		Compression: kafka.Snappy,
	}

	return NewWithWriter(writer, cfg, logger), nil
}

// NewWithWriter 使用外部提供的 writer
func NewWithWriter(writer Writer, cfg *Config, logger *zerolog.Logger) Producer {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &kafkaProducer{
		writer: writer,
		cfg:    cfg,
		logger: logger,
	}
}

// Produce implements the Producer interface
func (p *kafkaProducer) Produce(ctx context.Context, msgs []Message) error {
	if p.closed.Load() {
		return NewKafkaError("Produce", p.cfg.Topic, ErrProducerClosed)
	}
	if len(msgs) == 0 {
		return nil
	}

	kafkaMsgs := make([]kafka.Message, len(msgs))
	for i, msg := range msgs {
		kafkaMsgs[i] = msg.ToKafkaMessage()
	}

	var err error
	for i := 0; i <= p.cfg.RetryLimit; i++ {
		// 檢查外部 context 是否已經取消
		if ctx.Err() != nil {
			return NewKafkaError("Produce", p.cfg.Topic, ctx.Err())
		}

		err = p.writer.WriteMessages(ctx, kafkaMsgs...)
		if err == nil {
			return nil
		}
		p.logger.Warn().Err(err).Str("topic", p.cfg.Topic).Int("attempt", i+1).Msg("kafka produce failed")

		if !IsTemporaryError(err) || i == p.cfg.RetryLimit {
			break
		}

		n := 1 << i
		select {
		case <-ctx.Done():
			return NewKafkaError("Produce", p.cfg.Topic, ctx.Err())
		case <-time.After(p.cfg.RetryDelay * time.Duration(n)):
		}
	}

	return NewKafkaError("Produce", p.cfg.Topic, err)
}

// Close implements the Producer interface
func (p *kafkaProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
