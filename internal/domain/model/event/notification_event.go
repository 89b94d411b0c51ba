package model

import (
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notification 對外通知只有四種, notification() 不開放外部實作
type Notification interface {
	Event
	// Recipient 收件者 (sellerID 或 customerID), 也當作 kafka key
	Recipient() string
	notification()
}

type NotificationItem struct {
	OrderItemID     string          `json:"orderItemId"`
	ProductID       string          `json:"productId"`
	SellerID        string          `json:"sellerId"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

func ToNotificationItems(items []model.OrderItem) []NotificationItem {
	res := make([]NotificationItem, 0, len(items))
	for i := range items {
		res = append(res, NotificationItem{
			OrderItemID:     items[i].OrderItemID,
			ProductID:       items[i].ProductID,
			SellerID:        items[i].SellerID,
			Quantity:        items[i].Quantity,
			PriceAtPurchase: items[i].PriceAtPurchase,
			Subtotal:        items[i].Subtotal(),
		})
	}
	return res
}

func newBaseEvent(aggregateID string, eventType EventType) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: aggregateID,
		CreatedAt:   time.Now().UTC(),
		EventType:   eventType,
	}
}

type SellerApprovalRequested struct {
	BaseEvent
	SellerID string             `json:"sellerId"`
	OrderID  string             `json:"orderId"`
	Items    []NotificationItem `json:"items"`
}

func NewSellerApprovalRequested(orderID, sellerID string, items []model.OrderItem) *SellerApprovalRequested {
	return &SellerApprovalRequested{
		BaseEvent: newBaseEvent(orderID, SellerApprovalRequestedEventName),
		SellerID:  sellerID,
		OrderID:   orderID,
		Items:     ToNotificationItems(items),
	}
}

func (e *SellerApprovalRequested) Recipient() string { return e.SellerID }
func (e *SellerApprovalRequested) notification()     {}

type CustomerItemsRejected struct {
	BaseEvent
	CustomerID    string             `json:"customerId"`
	OrderID       string             `json:"orderId"`
	RejectedItems []NotificationItem `json:"rejectedItems"`
	RefundAmount  decimal.Decimal    `json:"refundAmount"`
}

func NewCustomerItemsRejected(order *model.Order, rejected []model.OrderItem, refund decimal.Decimal) *CustomerItemsRejected {
	return &CustomerItemsRejected{
		BaseEvent:     newBaseEvent(order.OrderID, CustomerItemsRejectedEventName),
		CustomerID:    order.CustomerID,
		OrderID:       order.OrderID,
		RejectedItems: ToNotificationItems(rejected),
		RefundAmount:  refund,
	}
}

func (e *CustomerItemsRejected) Recipient() string { return e.CustomerID }
func (e *CustomerItemsRejected) notification()     {}

type CustomerOrderApproved struct {
	BaseEvent
	CustomerID    string             `json:"customerId"`
	OrderID       string             `json:"orderId"`
	ApprovedItems []NotificationItem `json:"approvedItems"`
}

func NewCustomerOrderApproved(order *model.Order, approved []model.OrderItem) *CustomerOrderApproved {
	return &CustomerOrderApproved{
		BaseEvent:     newBaseEvent(order.OrderID, CustomerOrderApprovedEventName),
		CustomerID:    order.CustomerID,
		OrderID:       order.OrderID,
		ApprovedItems: ToNotificationItems(approved),
	}
}

func (e *CustomerOrderApproved) Recipient() string { return e.CustomerID }
func (e *CustomerOrderApproved) notification()     {}

type CustomerOrderFullyRejected struct {
	BaseEvent
	CustomerID    string             `json:"customerId"`
	OrderID       string             `json:"orderId"`
	RejectedItems []NotificationItem `json:"rejectedItems"`
	RefundAmount  decimal.Decimal    `json:"refundAmount"`
}

func NewCustomerOrderFullyRejected(order *model.Order, rejected []model.OrderItem, refund decimal.Decimal) *CustomerOrderFullyRejected {
	return &CustomerOrderFullyRejected{
		BaseEvent:     newBaseEvent(order.OrderID, CustomerOrderFullyRejectedEventName),
		CustomerID:    order.CustomerID,
		OrderID:       order.OrderID,
		RejectedItems: ToNotificationItems(rejected),
		RefundAmount:  refund,
	}
}

func (e *CustomerOrderFullyRejected) Recipient() string { return e.CustomerID }
func (e *CustomerOrderFullyRejected) notification()     {}

var (
	_ Notification = (*SellerApprovalRequested)(nil)
	_ Notification = (*CustomerItemsRejected)(nil)
	_ Notification = (*CustomerOrderApproved)(nil)
	_ Notification = (*CustomerOrderFullyRejected)(nil)
)
