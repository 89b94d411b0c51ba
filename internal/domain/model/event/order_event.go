package model

import (
	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/shopspring/decimal"
)

// OrderJournalEvent 寫入 order-{id} stream 的生命週期紀錄
type OrderJournalEvent struct {
	BaseEvent
	OrderID     string                `json:"orderId"`
	CustomerID  string                `json:"customerId,omitempty"`
	OrderItemID string                `json:"orderItemId,omitempty"`
	SellerID    string                `json:"sellerId,omitempty"`
	ItemStatus  model.OrderItemStatus `json:"itemStatus,omitempty"`
	Status      model.OrderStatus     `json:"status,omitempty"`
	Version     int64                 `json:"version"`
	Amount      decimal.Decimal       `json:"amount"`
}

func NewOrderPlacedEvent(order *model.Order) *OrderJournalEvent {
	return &OrderJournalEvent{
		BaseEvent:  newBaseEvent(order.OrderID, OrderPlacedEventName),
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Version:    order.Version,
		Amount:     order.TotalAmount,
	}
}

func NewOrderItemResolvedEvent(item *model.OrderItem) *OrderJournalEvent {
	return &OrderJournalEvent{
		BaseEvent:   newBaseEvent(item.OrderID, OrderItemResolvedEventName),
		OrderID:     item.OrderID,
		OrderItemID: item.OrderItemID,
		SellerID:    item.SellerID,
		ItemStatus:  item.Status,
		Amount:      item.Subtotal(),
	}
}

func NewOrderStatusChangedEvent(order *model.Order) *OrderJournalEvent {
	return &OrderJournalEvent{
		BaseEvent:  newBaseEvent(order.OrderID, OrderStatusChangedEventName),
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Version:    order.Version,
		Amount:     order.TotalAmount,
	}
}

// amount 為退款金額
func NewOrderSettledEvent(order *model.Order, refund decimal.Decimal) *OrderJournalEvent {
	return &OrderJournalEvent{
		BaseEvent:  newBaseEvent(order.OrderID, OrderSettledEventName),
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Version:    order.Version,
		Amount:     refund,
	}
}

func NewOrderCancelledEvent(order *model.Order) *OrderJournalEvent {
	return &OrderJournalEvent{
		BaseEvent:  newBaseEvent(order.OrderID, OrderCancelledEventName),
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		Status:     model.OrderStatusCancelled,
		Version:    order.Version,
		Amount:     order.TotalAmount,
	}
}

func NewOrderDeliveredEvent(order *model.Order) *OrderJournalEvent {
	return &OrderJournalEvent{
		BaseEvent:  newBaseEvent(order.OrderID, OrderDeliveredEventName),
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		Status:     model.OrderStatusDelivered,
		Version:    order.Version,
		Amount:     order.TotalAmount,
	}
}
