package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/constants"
	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/fulfillment/internal/domain/model/event"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/util"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SettlementReceipt 一次結算的結果
// AlreadySettled 為 true 時沒有任何金流或通知
type SettlementReceipt struct {
	OrderID        string
	Captured       decimal.Decimal
	Refund         decimal.Decimal
	AlreadySettled bool
	Notification   evt_model.EventType
	SettledAt      time.Time
}

// SettlementCoordinator 訂單離開 Pending 後的金流與通知
// 同一訂單只會結算一次, 以 orders.settled_at 作為冪等標記
type SettlementCoordinator struct {
	store    db.IStore
	ledger   *LedgerService
	notifier Notifier
	journal  Journal
	alerter  Alerter
	retry    util.RetryConfig
	logger   *zerolog.Logger
}

func NewSettlementCoordinator(store db.IStore, ledger *LedgerService, notifier Notifier, journal Journal, alerter Alerter, retry util.RetryConfig, logger *zerolog.Logger) *SettlementCoordinator {
	if store == nil {
		panic("settlement coordinator dependency store is nil")
	}
	if ledger == nil {
		panic("settlement coordinator dependency ledger is nil")
	}
	if notifier == nil {
		panic("settlement coordinator dependency notifier is nil")
	}
	return &SettlementCoordinator{
		store:    store,
		ledger:   ledger,
		notifier: notifier,
		journal:  journal,
		alerter:  alerter,
		retry:    retry,
		logger:   logger,
	}
}

/*
Settle
退款 = 被拒明細加總, 入帳 = 核准明細加總
結算標記與退款在同一個交易, 標記已存在時不做任何事
提交後送出且只送出一則客戶通知
錯誤:

	app_err.ErrSettlementFailure 可重試
*/
func (s *SettlementCoordinator) Settle(ctx context.Context, order *model.Order, approved, rejected []model.OrderItem) (*SettlementReceipt, error) {
	refund := model.SumSubtotal(rejected)
	captured := model.SumSubtotal(approved)

	wallet, err := s.ledger.OpenWallet(ctx, order.CustomerID)
	if err != nil {
		return nil, app_err.NewSettlementError(order.OrderID, err)
	}

	unlock, err := s.ledger.lockWallet(ctx, wallet.WalletID)
	if err != nil {
		return nil, app_err.NewSettlementError(order.OrderID, err)
	}
	defer unlock()

	receipt := &SettlementReceipt{
		OrderID:   order.OrderID,
		Captured:  captured,
		Refund:    refund,
		SettledAt: time.Now().UTC(),
	}
	err = s.store.ExecTx(ctx, func(q db.IStore) error {
		ok, err := q.Orders().MarkSettled(ctx, order.OrderID, receipt.SettledAt, captured, refund)
		if err != nil {
			return err
		}
		if !ok {
			receipt.AlreadySettled = true
			return nil
		}
		if !refund.IsPositive() {
			return nil
		}
		_, err = applyInTx(ctx, q, wallet.WalletID, model.TransactionTypeCredit, refund,
			fmt.Sprintf("%s %s", constants.DescriptionRefundPrefix, order.OrderID), order.OrderID)
		return err
	})
	if err != nil {
		return nil, app_err.NewSettlementError(order.OrderID, err)
	}
	unlock()

	if receipt.AlreadySettled {
		s.logger.Info().Str("order_id", order.OrderID).Msg("order already settled")
		return receipt, nil
	}

	s.logger.Info().
		Str("order_id", order.OrderID).
		Str("captured", captured.String()).
		Str("refund", refund.String()).
		Msg("order settled")
	appendJournal(ctx, s.journal, s.logger, order.OrderID, evt_model.NewOrderSettledEvent(order, refund))

	evt := settlementNotification(order, approved, rejected, refund)
	receipt.Notification = evt.Type()
	_ = notifyWithRetry(ctx, s.notifier, s.retry, s.logger, evt)

	return receipt, nil
}

// SettleWithRetry 以 orderID 為冪等鍵重試, 用盡後升級告警
func (s *SettlementCoordinator) SettleWithRetry(ctx context.Context, order *model.Order, approved, rejected []model.OrderItem) (*SettlementReceipt, error) {
	var receipt *SettlementReceipt
	err := util.Retry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		receipt, err = s.Settle(ctx, order, approved, rejected)
		return err
	}, app_err.IsRetryable)
	if err != nil {
		if s.alerter != nil {
			s.alerter.Alert(ctx, "settle_order", order.OrderID, err)
		}
		return nil, err
	}
	return receipt, nil
}

// 沒有被拒 -> 全部核准; 沒有核准 -> 全部被拒; 其餘 -> 部分被拒
func settlementNotification(order *model.Order, approved, rejected []model.OrderItem, refund decimal.Decimal) evt_model.Notification {
	switch {
	case len(rejected) == 0:
		return evt_model.NewCustomerOrderApproved(order, approved)
	case len(approved) == 0:
		return evt_model.NewCustomerOrderFullyRejected(order, rejected, refund)
	default:
		return evt_model.NewCustomerItemsRejected(order, rejected, refund)
	}
}
