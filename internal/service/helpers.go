package service

import (
	"context"

	evt_model "github.com/RoyceAzure/lab/fulfillment/internal/domain/model/event"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/util"
	"github.com/rs/zerolog"
)

// notifyWithRetry 通知失敗不影響已提交的狀態, 重試用盡只記log
func notifyWithRetry(ctx context.Context, notifier Notifier, retry util.RetryConfig, logger *zerolog.Logger, evt evt_model.Notification) error {
	err := util.Retry(ctx, retry, func(ctx context.Context) error {
		return notifier.Notify(ctx, evt)
	}, app_err.IsRetryable)
	if err != nil {
		logger.Error().Err(err).
			Str("event_type", string(evt.Type())).
			Str("event_id", evt.GetID()).
			Str("recipient", evt.Recipient()).
			Msg("failed to send notification")
	}
	return err
}

func appendJournal(ctx context.Context, journal Journal, logger *zerolog.Logger, orderID string, evt evt_model.Event) {
	if journal == nil {
		return
	}
	if err := journal.Append(ctx, orderID, evt); err != nil {
		logger.Warn().Err(err).
			Str("order_id", orderID).
			Str("event_type", string(evt.Type())).
			Msg("failed to append order journal")
	}
}
