package service

import (
	"context"
	"time"

	evt_model "github.com/RoyceAzure/lab/fulfillment/internal/domain/model/event"
)

//go:generate mockgen -source=interfaces.go -destination=mock/mock_service.go -package=mock_service

// Notifier 對外通知, 只接受四種 Notification
type Notifier interface {
	Notify(ctx context.Context, evt evt_model.Notification) error
}

// Alerter 重試用盡後的維運告警
type Alerter interface {
	Alert(ctx context.Context, op string, key string, err error)
}

// Journal 訂單生命週期流水帳, 寫入失敗只記log
type Journal interface {
	Append(ctx context.Context, orderID string, evt evt_model.Event) error
}

// StockStore 庫存協作者, redis 或 db 實作
// TryReserveStock 必須是單一商品的原子操作, 不足時不做任何異動
// 同一 reservationID 重送只扣一次
type StockStore interface {
	TryReserveStock(ctx context.Context, reservationID, productID string, quantity int) error
	ReleaseStock(ctx context.Context, productID string, quantity int) error
}

// DeliveryClock 計算預計送達時間
type DeliveryClock func(now time.Time) time.Time

func FlatRateDelivery(days int) DeliveryClock {
	return func(now time.Time) time.Time {
		return now.AddDate(0, 0, days)
	}
}

type BackGroundService interface {
	Start() error
	Stop(timeout time.Duration) error
}
