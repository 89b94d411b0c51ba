package producer

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// Header 消息標頭, 存放事件類型等元數據
type Header struct {
	Key   string
	Value []byte
}

// Message 代表一個 Kafka 消息
type Message struct {
	// Key 相同的 Key 會被分配到相同的分區, 保證同一收件者的順序
	Key     []byte
	Value   []byte
	Headers []Header
	Time    time.Time
}

// ToKafkaMessage converts our Message to kafka-go Message
func (m *Message) ToKafkaMessage() kafka.Message {
	headers := make([]kafka.Header, len(m.Headers))
	for i, h := range m.Headers {
		headers[i] = kafka.Header{
			Key:   h.Key,
			Value: h.Value,
		}
	}

	return kafka.Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: headers,
		Time:    m.Time,
	}
}

// FromKafkaMessage converts kafka-go Message to our Message
func FromKafkaMessage(msg kafka.Message) Message {
	headers := make([]Header, len(msg.Headers))
	for i, h := range msg.Headers {
		headers[i] = Header{
			Key:   h.Key,
			Value: h.Value,
		}
	}

	return Message{
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
		Time:    msg.Time,
	}
}

func (m *Message) HeaderValue(key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
