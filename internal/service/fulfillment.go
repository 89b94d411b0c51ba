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

type IFulfillmentService interface {
	ApproveItem(ctx context.Context, orderItemID, sellerID string) (*model.OrderItem, error)
	RejectItem(ctx context.Context, orderItemID, sellerID string) (*model.OrderItem, error)
	CancelOrder(ctx context.Context, orderID, customerID string) (*model.Order, error)
	MarkDelivered(ctx context.Context, orderID string) (*model.Order, error)
}

// FulfillmentService 賣家逐筆核准或拒絕明細, 推導訂單狀態並觸發結算
type FulfillmentService struct {
	store      db.IStore
	ledger     *LedgerService
	settlement *SettlementCoordinator
	inventory  *InventoryGuard
	journal    Journal
	alerter    Alerter
	clock      DeliveryClock
	retry      util.RetryConfig
	logger     *zerolog.Logger
	now        func() time.Time
}

func NewFulfillmentService(
	store db.IStore,
	ledger *LedgerService,
	settlement *SettlementCoordinator,
	inventory *InventoryGuard,
	journal Journal,
	alerter Alerter,
	clock DeliveryClock,
	retry util.RetryConfig,
	logger *zerolog.Logger,
) *FulfillmentService {
	if store == nil || ledger == nil || settlement == nil || inventory == nil {
		panic("fulfillment service dependency is nil")
	}
	if clock == nil {
		clock = FlatRateDelivery(5)
	}
	return &FulfillmentService{
		store:      store,
		ledger:     ledger,
		settlement: settlement,
		inventory:  inventory,
		journal:    journal,
		alerter:    alerter,
		clock:      clock,
		retry:      retry,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (f *FulfillmentService) ApproveItem(ctx context.Context, orderItemID, sellerID string) (*model.OrderItem, error) {
	return f.resolveItem(ctx, orderItemID, sellerID, model.OrderItemStatusApproved)
}

func (f *FulfillmentService) RejectItem(ctx context.Context, orderItemID, sellerID string) (*model.OrderItem, error) {
	return f.resolveItem(ctx, orderItemID, sellerID, model.OrderItemStatusRejected)
}

/*
resolveItem
明細以 row lock + 條件更新 (status = Pending) 寫入, 第二次處理回傳 ErrAlreadyResolved
明細提交後才推導訂單狀態, 訂單狀態寫入失敗不影響明細結果
*/
func (f *FulfillmentService) resolveItem(ctx context.Context, orderItemID, sellerID string, status model.OrderItemStatus) (*model.OrderItem, error) {
	var item *model.OrderItem
	resolvedAt := f.now()

	err := f.store.ExecTx(ctx, func(q db.IStore) error {
		it, err := q.Orders().GetOrderItemForUpdate(ctx, orderItemID)
		if err != nil {
			return err
		}
		if it.SellerID != sellerID {
			return fmt.Errorf("%w: order item %s is not owned by seller %s", app_err.ErrNotOwner, orderItemID, sellerID)
		}
		if !it.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: order item %s is %s", app_err.ErrAlreadyResolved, orderItemID, it.Status)
		}

		order, err := q.Orders().GetOrderByID(ctx, it.OrderID)
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusPending {
			return fmt.Errorf("%w: order %s is %s", app_err.ErrInvalidOrderAction, order.OrderID, order.Status)
		}

		ok, err := q.Orders().ResolveOrderItem(ctx, orderItemID, status, resolvedAt)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: order item %s", app_err.ErrAlreadyResolved, orderItemID)
		}

		it.Status = status
		it.ResolvedAt = &resolvedAt
		item = it
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info().
		Str("order_id", item.OrderID).
		Str("order_item_id", item.OrderItemID).
		Str("seller_id", sellerID).
		Str("status", string(status)).
		Msg("order item resolved")
	appendJournal(ctx, f.journal, f.logger, item.OrderID, evt_model.NewOrderItemResolvedEvent(item))

	// 明細已提交, 請求中斷也要把訂單推進到結算
	// 失敗由告警與補償排程處理
	if err := f.advanceOrder(context.WithoutCancel(ctx), item.OrderID, false); err != nil {
		f.logger.Warn().Err(err).Str("order_id", item.OrderID).Msg("order left for reconciler")
	}

	return item, nil
}

/*
advanceOrder
依全部明細重新推導訂單狀態, 以 version 樂觀鎖寫入, 衝突時重試
只有成功把訂單帶離 Pending 的呼叫者會觸發結算
reconcile 為 true 時, 已推導完成但尚未結算的訂單也會補結算
*/
func (f *FulfillmentService) advanceOrder(ctx context.Context, orderID string, reconcile bool) error {
	var toSettle *model.Order

	err := util.Retry(ctx, f.retry, func(ctx context.Context) error {
		toSettle = nil

		order, err := f.store.Orders().GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}

		next := model.AggregateOrderStatus(order.OrderItems)
		if next == order.Status {
			if reconcile && order.Status.IsResolved() && order.SettledAt == nil {
				toSettle = order
			}
			return nil
		}
		if !order.Status.CanTransitionTo(next) {
			f.logger.Warn().
				Str("order_id", orderID).
				Str("from", string(order.Status)).
				Str("to", string(next)).
				Msg("skip aggregate transition")
			return nil
		}

		var eta *time.Time
		if order.Status == model.OrderStatusPending {
			t := f.clock(f.now())
			eta = &t
		}

		ok, err := f.store.Orders().UpdateOrderStatus(ctx, orderID, order.Version, order.Status, next, eta)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: order %s version %d", app_err.ErrConcurrentAggregateConflict, orderID, order.Version)
		}

		order.Status = next
		order.Version++
		if eta != nil {
			order.EstimatedDeliveryTime = eta
		}
		f.logger.Info().
			Str("order_id", orderID).
			Str("status", string(next)).
			Int64("version", order.Version).
			Msg("order status changed")
		appendJournal(ctx, f.journal, f.logger, orderID, evt_model.NewOrderStatusChangedEvent(order))

		toSettle = order
		return nil
	}, app_err.IsRetryable)
	if err != nil {
		if f.alerter != nil && !app_err.IsUserError(err) {
			f.alerter.Alert(ctx, "advance_order", orderID, err)
		}
		f.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to advance order status")
		return err
	}

	if toSettle == nil || !toSettle.Status.IsResolved() {
		return nil
	}

	approved, rejected := model.SplitByStatus(toSettle.OrderItems)
	_, err = f.settlement.SettleWithRetry(ctx, toSettle, approved, rejected)
	return err
}

// MarkDelivered 只有 Approved / PartiallyApproved 可以送達
func (f *FulfillmentService) MarkDelivered(ctx context.Context, orderID string) (*model.Order, error) {
	var delivered *model.Order

	err := util.Retry(ctx, f.retry, func(ctx context.Context) error {
		order, err := f.store.Orders().GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(model.OrderStatusDelivered) {
			return fmt.Errorf("%w: order %s is %s", app_err.ErrInvalidTransition, orderID, order.Status)
		}

		ok, err := f.store.Orders().UpdateOrderStatus(ctx, orderID, order.Version, order.Status, model.OrderStatusDelivered, nil)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: order %s version %d", app_err.ErrConcurrentAggregateConflict, orderID, order.Version)
		}

		order.Status = model.OrderStatusDelivered
		order.Version++
		delivered = order
		return nil
	}, app_err.IsRetryable)
	if err != nil {
		return nil, err
	}

	appendJournal(ctx, f.journal, f.logger, orderID, evt_model.NewOrderDeliveredEvent(delivered))
	return delivered, nil
}

/*
CancelOrder
只有客戶本人, 且訂單與全部明細都還是 Pending 時可以取消
取消, 結算標記, 全額退款 在同一個交易; 提交後歸還庫存
取消不發送客戶通知
*/
func (f *FulfillmentService) CancelOrder(ctx context.Context, orderID, customerID string) (*model.Order, error) {
	order, err := f.store.Orders().GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, fmt.Errorf("%w: order %s is not owned by customer %s", app_err.ErrNotOwner, orderID, customerID)
	}
	if order.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("%w: order %s is %s", app_err.ErrInvalidOrderAction, orderID, order.Status)
	}

	wallet, err := f.ledger.OpenWallet(ctx, customerID)
	if err != nil {
		return nil, err
	}
	unlock, err := f.ledger.lockWallet(ctx, wallet.WalletID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var cancelled *model.Order
	err = util.Retry(ctx, f.retry, func(ctx context.Context) error {
		return f.store.ExecTx(ctx, func(q db.IStore) error {
			items, err := q.Orders().LockOrderItems(ctx, orderID)
			if err != nil {
				return err
			}
			current, err := q.Orders().GetOrderByID(ctx, orderID)
			if err != nil {
				return err
			}
			current.OrderItems = items
			if current.Status != model.OrderStatusPending || !current.AllItemsPending() {
				return fmt.Errorf("%w: order %s has items already resolved", app_err.ErrInvalidOrderAction, orderID)
			}

			ok, err := q.Orders().UpdateOrderStatus(ctx, orderID, current.Version, model.OrderStatusPending, model.OrderStatusCancelled, nil)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: order %s version %d", app_err.ErrConcurrentAggregateConflict, orderID, current.Version)
			}

			now := f.now()
			ok, err = q.Orders().MarkSettled(ctx, orderID, now, decimal.Zero, current.TotalAmount)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: order %s already settled", app_err.ErrInvalidOrderAction, orderID)
			}

			if current.TotalAmount.IsPositive() {
				if _, err := applyInTx(ctx, q, wallet.WalletID, model.TransactionTypeCredit, current.TotalAmount,
					fmt.Sprintf("%s %s", constants.DescriptionCancelRefund, orderID), orderID); err != nil {
					return err
				}
			}

			current.Status = model.OrderStatusCancelled
			current.Version++
			current.SettledAt = &now
			current.RefundAmount = current.TotalAmount
			cancelled = current
			return nil
		})
	}, app_err.IsRetryable)
	if err != nil {
		return nil, err
	}
	unlock()

	reservations := make([]*Reservation, 0, len(cancelled.OrderItems))
	for _, item := range cancelled.OrderItems {
		reservations = append(reservations, &Reservation{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if err := f.inventory.ReleaseAll(ctx, reservations); err != nil && f.alerter != nil {
		f.alerter.Alert(ctx, "cancel_order_release_stock", orderID, err)
	}

	f.logger.Info().
		Str("order_id", orderID).
		Str("customer_id", customerID).
		Str("refund", cancelled.TotalAmount.String()).
		Msg("order cancelled")
	appendJournal(ctx, f.journal, f.logger, orderID, evt_model.NewOrderCancelledEvent(cancelled))
	appendJournal(ctx, f.journal, f.logger, orderID, evt_model.NewOrderSettledEvent(cancelled, cancelled.TotalAmount))

	return cancelled, nil
}
