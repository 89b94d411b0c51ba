package notifier

import (
	"context"

	evt_model "github.com/RoyceAzure/lab/fulfillment/internal/domain/model/event"
	"github.com/rs/zerolog"
)

// LogNotifier 沒有 kafka 時使用, 只寫 log
type LogNotifier struct {
	logger *zerolog.Logger
}

func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, evt evt_model.Notification) error {
	n.logger.Info().
		Str("event_type", string(evt.Type())).
		Str("event_id", evt.GetID()).
		Str("recipient", evt.Recipient()).
		Interface("payload", evt).
		Msg("notification")
	return nil
}
