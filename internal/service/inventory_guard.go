package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/util"
	"github.com/rs/zerolog"
)

// Reservation 已預留的庫存, Release 時原數量歸還
// ID 只在預留時使用, 由訂單明細重建時為空
type Reservation struct {
	ID        string
	ProductID string
	Quantity  int
}

// InventoryGuard 單一商品的預留是原子的, 不足時不做任何異動
type InventoryGuard struct {
	stock          StockStore
	retry          util.RetryConfig
	attemptTimeout time.Duration
	logger         *zerolog.Logger
}

func NewInventoryGuard(stock StockStore, retry util.RetryConfig, attemptTimeout time.Duration, logger *zerolog.Logger) *InventoryGuard {
	if stock == nil {
		panic("inventory guard dependency stock is nil")
	}
	return &InventoryGuard{
		stock:          stock,
		retry:          retry,
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}
}

// TryReserve 庫存不足回傳 *app_err.StockError, 不重試
// 基礎設施錯誤在重試額度內以指數退避重試, 每次嘗試受 attemptTimeout 限制
// 每次重試帶同一個 reservation ID, 逾時但實際已扣減的嘗試不會重複扣
func (g *InventoryGuard) TryReserve(ctx context.Context, productID string, quantity int) (*Reservation, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: product %s quantity %d", app_err.ErrInvalidQuantity, productID, quantity)
	}

	reservationID := util.GenerateID()
	err := util.Retry(ctx, g.retry, func(ctx context.Context) error {
		return g.withTimeout(ctx, func(ctx context.Context) error {
			return g.stock.TryReserveStock(ctx, reservationID, productID, quantity)
		})
	}, app_err.IsRetryable)
	if err != nil {
		if errors.Is(err, app_err.ErrInsufficientStock) {
			return nil, app_err.NewStockError(productID, quantity)
		}
		return nil, fmt.Errorf("reserve product %s: %w", productID, err)
	}

	return &Reservation{ID: reservationID, ProductID: productID, Quantity: quantity}, nil
}

func (g *InventoryGuard) Release(ctx context.Context, r *Reservation) error {
	if r == nil {
		return nil
	}
	err := util.Retry(ctx, g.retry, func(ctx context.Context) error {
		return g.withTimeout(ctx, func(ctx context.Context) error {
			return g.stock.ReleaseStock(ctx, r.ProductID, r.Quantity)
		})
	}, app_err.IsRetryable)
	if err != nil {
		return fmt.Errorf("release product %s: %w", r.ProductID, err)
	}
	return nil
}

// ReleaseAll 補償用, 呼叫端的 ctx 被取消也要歸還
func (g *InventoryGuard) ReleaseAll(ctx context.Context, reservations []*Reservation) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for _, r := range reservations {
		if err := g.Release(ctx, r); err != nil {
			g.logger.Error().Err(err).
				Str("product_id", r.ProductID).
				Int("quantity", r.Quantity).
				Msg("failed to release reservation")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (g *InventoryGuard) withTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	if g.attemptTimeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, g.attemptTimeout)
	defer cancel()
	return fn(attemptCtx)
}
