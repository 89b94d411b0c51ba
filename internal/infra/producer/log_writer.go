package producer

import (
	"context"
	"encoding/binary"
	"errors"
	"sync/atomic"
	"time"
)

// LogWriter 讓 zerolog 把 log 寫到 kafka, 用於維運告警 topic
type LogWriter struct {
	p       Producer
	logId   atomic.Int64
	timeout time.Duration
}

func NewLogWriter(p Producer, timeout time.Duration) *LogWriter {
	return &LogWriter{p: p, timeout: timeout}
}

func (kw *LogWriter) Write(p []byte) (n int, err error) {
	if kw == nil || kw.p == nil {
		return 0, errors.New("kafka log writer is not init")
	}

	// key 用遞增序號, 平均分到各分區
	id := kw.logId.Add(1)
	kbuf := make([]byte, 8)
	binary.BigEndian.PutUint64(kbuf, uint64(id))

	// zerolog 會重用 buffer
	value := make([]byte, len(p))
	copy(value, p)

	ctx, cancel := context.WithTimeout(context.Background(), kw.timeout)
	defer cancel()
	err = kw.p.Produce(ctx, []Message{
		{
			Key:   kbuf,
			Value: value,
			Time:  time.Now().UTC(),
		},
	})
	if err != nil {
		return 0, err
	}

	return len(p), nil
}

func (kw *LogWriter) Close() error {
	return kw.p.Close()
}
