package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/fulfillment/internal/domain/model/event"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/util"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type IOrderAssembler interface {
	PlaceOrder(ctx context.Context, customerID string) (*model.Order, error)
}

// OrderAssembler 購物車 -> 訂單
// 庫存預留全部成功才建立訂單, 任一失敗歸還已預留的部分
type OrderAssembler struct {
	store     db.IStore
	carts     redis_repo.ICartRepository
	inventory *InventoryGuard
	notifier  Notifier
	journal   Journal
	alerter   Alerter
	retry     util.RetryConfig
	locks     *util.KeyedMutex
	logger    *zerolog.Logger
}

func NewOrderAssembler(
	store db.IStore,
	carts redis_repo.ICartRepository,
	inventory *InventoryGuard,
	notifier Notifier,
	journal Journal,
	alerter Alerter,
	retry util.RetryConfig,
	logger *zerolog.Logger,
) *OrderAssembler {
	if store == nil || carts == nil || inventory == nil || notifier == nil {
		panic("order assembler dependency is nil")
	}
	return &OrderAssembler{
		store:     store,
		carts:     carts,
		inventory: inventory,
		notifier:  notifier,
		journal:   journal,
		alerter:   alerter,
		retry:     retry,
		locks:     util.NewKeyedMutex(),
		logger:    logger,
	}
}

/*
PlaceOrder
同一客戶的下單序列化, 同一份購物車不會被結帳兩次
錯誤:

	app_err.ErrEmptyCart
	app_err.ErrProductNotFound
	*app_err.StockError (errors.Is app_err.ErrInsufficientStock)
*/
func (a *OrderAssembler) PlaceOrder(ctx context.Context, customerID string) (*model.Order, error) {
	unlock, err := a.locks.Lock(ctx, customerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cart, err := a.carts.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, fmt.Errorf("%w: customer %s", app_err.ErrEmptyCart, customerID)
	}

	productIDs := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := a.store.Products().GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	// 購物車已依 productID 排序, 預留順序固定
	reservations := make([]*Reservation, 0, len(cart.Items))
	for _, item := range cart.Items {
		r, err := a.inventory.TryReserve(ctx, item.ProductID, item.Quantity)
		if err != nil {
			_ = a.inventory.ReleaseAll(ctx, reservations)
			return nil, err
		}
		reservations = append(reservations, r)
	}

	order := buildOrder(customerID, cart, products)
	if err := a.store.ExecTx(ctx, func(q db.IStore) error {
		return q.Orders().CreateOrder(ctx, order)
	}); err != nil {
		_ = a.inventory.ReleaseAll(ctx, reservations)
		return nil, fmt.Errorf("create order: %w", err)
	}

	a.logger.Info().
		Str("order_id", order.OrderID).
		Str("customer_id", customerID).
		Int("items", len(order.OrderItems)).
		Str("total", order.TotalAmount.String()).
		Msg("order placed")
	appendJournal(ctx, a.journal, a.logger, order.OrderID, evt_model.NewOrderPlacedEvent(order))

	// 訂單已成立, 清空購物車失敗只告警
	if err := a.carts.Clear(ctx, customerID); err != nil {
		a.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to clear cart")
		if a.alerter != nil {
			a.alerter.Alert(ctx, "clear_cart", customerID, err)
		}
	}

	a.notifySellers(ctx, order)
	return order, nil
}

func buildOrder(customerID string, cart *model.Cart, products map[string]*model.Product) *model.Order {
	orderID := util.GenerateID()
	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		p := products[ci.ProductID]
		items = append(items, model.OrderItem{
			OrderItemID:     util.GenerateID(),
			OrderID:         orderID,
			ProductID:       p.ProductID,
			SellerID:        p.SellerID,
			Quantity:        ci.Quantity,
			PriceAtPurchase: p.Price,
			Status:          model.OrderItemStatusPending,
		})
	}

	return &model.Order{
		OrderID:     orderID,
		CustomerID:  customerID,
		OrderItems:  items,
		TotalAmount: model.SumSubtotal(items),
		OrderDate:   time.Now().UTC(),
		Status:      model.OrderStatusPending,
		Version:     0,
	}
}

// notifySellers 每個賣家一則, 只帶該賣家的明細
// 通知失敗只記log, 不回滾訂單
func (a *OrderAssembler) notifySellers(ctx context.Context, order *model.Order) {
	// 不用 errgroup.WithContext, 一個賣家失敗不取消其他賣家
	var g errgroup.Group
	nctx := context.WithoutCancel(ctx)
	for sellerID, items := range model.GroupBySeller(order.OrderItems) {
		evt := evt_model.NewSellerApprovalRequested(order.OrderID, sellerID, items)
		g.Go(func() error {
			return notifyWithRetry(nctx, a.notifier, a.retry, a.logger, evt)
		})
	}
	_ = g.Wait()
}
