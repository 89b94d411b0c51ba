package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 購物車階段只存在redis, 下單後訂單與明細才寫入db
type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("product_id")
}

// Create - 創建訂單, 明細隨訂單一起寫入
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems", preloadItems).First(&order, "order_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", app_err.ErrOrderNotFound, id)
		}
		return nil, err
	}
	return &order, nil
}

// Read - 根據客戶查詢訂單, 新的在前
func (s *OrderRepo) GetOrdersByCustomerID(ctx context.Context, customerID string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems", preloadItems).
		Where("customer_id = ?", customerID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

// Read - 賣家視角, 只帶出該賣家自己的明細
func (s *OrderRepo) GetOrdersBySellerID(ctx context.Context, sellerID string) ([]model.Order, error) {
	var orders []model.Order
	sub := s.db.WithContext(ctx).Model(&model.OrderItem{}).Select("order_id").Where("seller_id = ?", sellerID)
	err := s.db.WithContext(ctx).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Where("seller_id = ?", sellerID).Order("product_id")
		}).
		Where("order_id IN (?)", sub).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

// 鎖定明細, 需在交易內呼叫
func (s *OrderRepo) GetOrderItemForUpdate(ctx context.Context, orderItemID string) (*model.OrderItem, error) {
	var item model.OrderItem
	err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_item_id = ?", orderItemID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order item %s", app_err.ErrOrderItemNotFound, orderItemID)
		}
		return nil, err
	}
	return &item, nil
}

// ResolveOrderItem 只有 Pending 的明細會被更新
// 回傳 false 代表明細已經被處理過
func (s *OrderRepo) ResolveOrderItem(ctx context.Context, orderItemID string, status model.OrderItemStatus, resolvedAt time.Time) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_item_id = ? AND status = ?", orderItemID, model.OrderItemStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_at": resolvedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// UpdateOrderStatus 樂觀鎖, version 或 status 不符時回傳 false
// eta 為 nil 時不更新預計送達時間
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID string, expectedVersion int64, from, to model.OrderStatus, eta *time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":  to,
		"version": gorm.Expr("version + 1"),
	}
	if eta != nil {
		updates["estimated_delivery_time"] = *eta
	}

	result := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND version = ? AND status = ?", orderID, expectedVersion, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// MarkSettled 設定結算標記, 已結算過回傳 false
func (s *OrderRepo) MarkSettled(ctx context.Context, orderID string, settledAt time.Time, captured, refund decimal.Decimal) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND settled_at IS NULL", orderID).
		Updates(map[string]interface{}{
			"settled_at":      settledAt,
			"captured_amount": captured,
			"refund_amount":   refund,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

/*
GetUnsettledOrders 給補償排程使用, 只回傳需要處理的訂單:
已推導出結果但未結算, 或仍為 Pending 但明細已全部處理
以 order_id 分頁, afterOrderID 為上一頁最後一筆, 第一頁傳空字串
*/
func (s *OrderRepo) GetUnsettledOrders(ctx context.Context, createdBefore time.Time, afterOrderID string, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems", preloadItems).
		Where("settled_at IS NULL AND created_at < ? AND order_id > ?", createdBefore, afterOrderID).
		Where("status IN ? OR (status = ? AND NOT EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.order_id AND oi.status = ? AND oi.deleted_at IS NULL))",
			[]model.OrderStatus{
				model.OrderStatusPartiallyApproved,
				model.OrderStatusApproved,
				model.OrderStatusRejected,
			},
			model.OrderStatusPending,
			model.OrderItemStatusPending,
		).
		Order("order_id").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// LockOrderItems 鎖定訂單全部明細, 需在交易內呼叫
func (s *OrderRepo) LockOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		Order("order_item_id").
		Find(&items).Error
	return items, err
}
