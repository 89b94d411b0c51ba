package model

import "time"

type BaseEvent struct {
	EventID     string    `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	CreatedAt   time.Time `json:"createdAt"`
	EventType   EventType `json:"eventType"`
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

func (e *BaseEvent) Type() EventType {
	return e.EventType
}

type EventType string

const (
	// 通知事件, 只有這四種
	SellerApprovalRequestedEventName    EventType = "SellerApprovalRequested"
	CustomerItemsRejectedEventName      EventType = "CustomerItemsRejected"
	CustomerOrderApprovedEventName      EventType = "CustomerOrderApproved"
	CustomerOrderFullyRejectedEventName EventType = "CustomerOrderFullyRejected"

	// 訂單流水帳事件
	OrderPlacedEventName        EventType = "OrderPlaced"
	OrderItemResolvedEventName  EventType = "OrderItemResolved"
	OrderStatusChangedEventName EventType = "OrderStatusChanged"
	OrderSettledEventName       EventType = "OrderSettled"
	OrderCancelledEventName     EventType = "OrderCancelled"
	OrderDeliveredEventName     EventType = "OrderDelivered"
)

type Event interface {
	Type() EventType
	GetID() string
}
