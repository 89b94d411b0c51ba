package producer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrProducerClosed 生產者已關閉
	ErrProducerClosed = errors.New("producer is closed")
)

// KafkaError 代表 Kafka 操作錯誤
type KafkaError struct {
	Operation string
	Topic     string
	Err       error
}

func (e *KafkaError) Error() string {
	return fmt.Sprintf("kafka operation %s on topic %s failed: %v", e.Operation, e.Topic, e.Err)
}

func (e *KafkaError) Unwrap() error {
	return e.Err
}

// NewKafkaError 創建新的 KafkaError
func NewKafkaError(operation, topic string, err error) error {
	return &KafkaError{
		Operation: operation,
		Topic:     topic,
		Err:       err,
	}
}

// IsTemporaryError 判斷是否為可重試的臨時錯誤
// return
// true 表示可重試, false 表示不可重試
func IsTemporaryError(err error) bool {
	if err == nil {
		return false
	}
	if IsFatalError(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrProducerClosed) {
		return false
	}

	// 檢查 Kafka 特定的可重試錯誤
	if errors.Is(err, kafka.LeaderNotAvailable) ||
		errors.Is(err, kafka.NotLeaderForPartition) ||
		errors.Is(err, kafka.RequestTimedOut) ||
		errors.Is(err, kafka.RebalanceInProgress) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// 網路錯誤
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset by peer") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "temporary")
}

// IsFatalError 判斷是否為致命錯誤（不可重試）
func IsFatalError(err error) bool {
	if err == nil {
		return false
	}

	// 檢查 Kafka 特定的致命錯誤
	if errors.Is(err, kafka.TopicAuthorizationFailed) ||
		errors.Is(err, kafka.GroupAuthorizationFailed) ||
		errors.Is(err, kafka.ClusterAuthorizationFailed) ||
		errors.Is(err, kafka.MessageSizeTooLarge) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "authentication failed") ||
		strings.Contains(errStr, "authorization failed") ||
		strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "invalid topic")
}
