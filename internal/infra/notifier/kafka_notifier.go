package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	evt_model "github.com/RoyceAzure/lab/fulfillment/internal/domain/model/event"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/producer"
)

const (
	HeaderEventType = "event_type"
	HeaderEventID   = "event_id"
)

// KafkaNotifier 把通知事件寫到 notification topic
// key 為收件者, 同一收件者的通知落在同一分區
type KafkaNotifier struct {
	p producer.Producer
}

func NewKafkaNotifier(p producer.Producer) *KafkaNotifier {
	return &KafkaNotifier{p: p}
}

func (n *KafkaNotifier) Notify(ctx context.Context, evt evt_model.Notification) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", evt.Type(), err)
	}

	msg := producer.Message{
		Key:   []byte(evt.Recipient()),
		Value: b,
		Headers: []producer.Header{
			{Key: HeaderEventType, Value: []byte(evt.Type())},
			{Key: HeaderEventID, Value: []byte(evt.GetID())},
		},
		Time: time.Now().UTC(),
	}
	return n.p.Produce(ctx, []producer.Message{msg})
}

func (n *KafkaNotifier) Close() error {
	return n.p.Close()
}
