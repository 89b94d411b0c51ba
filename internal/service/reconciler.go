package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db"
	"github.com/rs/zerolog"
)

const reconcileBatchSize = 100

// SettlementReconciler 定期補推導訂單狀態與補結算
// 對象: 未結算且未取消, 建立超過 interval 的訂單
type SettlementReconciler struct {
	orderRepo   db.IOrderRepository
	fulfillment *FulfillmentService
	interval    time.Duration
	logger      *zerolog.Logger

	// 建立未滿 minAge 的訂單可能還在正常流程中, 不處理
	minAge    time.Duration
	batchSize int

	isRunning     atomic.Bool
	stopCtxCancel context.CancelFunc
	done          chan struct{}
}

func NewSettlementReconciler(orderRepo db.IOrderRepository, fulfillment *FulfillmentService, interval time.Duration, logger *zerolog.Logger) *SettlementReconciler {
	if orderRepo == nil {
		panic("settlement reconciler dependency orderRepo is nil")
	}
	if fulfillment == nil {
		panic("settlement reconciler dependency fulfillment is nil")
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &SettlementReconciler{
		orderRepo:   orderRepo,
		fulfillment: fulfillment,
		interval:    interval,
		minAge:      interval,
		batchSize:   reconcileBatchSize,
		logger:      logger,
	}
}

func (r *SettlementReconciler) Start() error {
	if !r.isRunning.CompareAndSwap(false, true) {
		return fmt.Errorf("settlement reconciler is already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.stopCtxCancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		defer r.isRunning.Store(false)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := r.RunOnce(ctx); err != nil {
					r.logger.Error().Err(err).Msg("settlement reconcile failed")
				}
			}
		}
	}()
	return nil
}

func (r *SettlementReconciler) Stop(timeout time.Duration) error {
	if r.stopCtxCancel == nil {
		return nil
	}
	r.stopCtxCancel()

	select {
	case <-r.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("time out for stop settlement reconciler")
	}
}

// RunOnce 分頁掃完所有需要處理的訂單, 回傳成功處理的數量
// 單筆失敗不中斷, 也不會卡住後面的訂單
func (r *SettlementReconciler) RunOnce(ctx context.Context) (int, error) {
	createdBefore := time.Now().UTC().Add(-r.minAge)
	processed, failed := 0, 0
	after := ""

	for {
		orders, err := r.orderRepo.GetUnsettledOrders(ctx, createdBefore, after, r.batchSize)
		if err != nil {
			return processed, err
		}

		for i := range orders {
			if ctx.Err() != nil {
				return processed, ctx.Err()
			}
			if err := r.fulfillment.advanceOrder(ctx, orders[i].OrderID, true); err != nil {
				r.logger.Warn().Err(err).Str("order_id", orders[i].OrderID).Msg("reconcile order failed")
				failed++
				continue
			}
			processed++
		}

		if len(orders) < r.batchSize {
			break
		}
		after = orders[len(orders)-1].OrderID
	}

	if processed > 0 || failed > 0 {
		r.logger.Info().Int("orders", processed).Int("failed", failed).Msg("settlement reconcile done")
	}
	return processed, nil
}
