package model

// OrderStatus 訂單聚合狀態, 由所有 OrderItem 狀態推導
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "Pending"
	OrderStatusPartiallyApproved OrderStatus = "PartiallyApproved"
	OrderStatusApproved          OrderStatus = "Approved"
	OrderStatusRejected          OrderStatus = "Rejected"
	OrderStatusCancelled         OrderStatus = "Cancelled"
	OrderStatusDelivered         OrderStatus = "Delivered"
)

// 封閉的狀態轉移表, 不在表內的轉移一律拒絕
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {
		OrderStatusPartiallyApproved,
		OrderStatusApproved,
		OrderStatusRejected,
		OrderStatusCancelled,
	},
	OrderStatusPartiallyApproved: {OrderStatusDelivered},
	OrderStatusApproved:          {OrderStatusDelivered},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsResolved 所有 item 都已離開 Pending 的結果狀態
func (s OrderStatus) IsResolved() bool {
	switch s {
	case OrderStatusPartiallyApproved, OrderStatusApproved, OrderStatusRejected:
		return true
	default:
		return false
	}
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPartiallyApproved, OrderStatusApproved,
		OrderStatusRejected, OrderStatusCancelled, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// OrderItemStatus 單一賣家明細狀態, 只能 Pending -> Approved/Rejected
type OrderItemStatus string

const (
	OrderItemStatusPending  OrderItemStatus = "Pending"
	OrderItemStatusApproved OrderItemStatus = "Approved"
	OrderItemStatusRejected OrderItemStatus = "Rejected"
)

func (s OrderItemStatus) CanTransitionTo(next OrderItemStatus) bool {
	return s == OrderItemStatusPending &&
		(next == OrderItemStatusApproved || next == OrderItemStatusRejected)
}

// AggregateOrderStatus 依照明細推導訂單狀態
// 任一明細仍為 Pending 時維持 Pending
func AggregateOrderStatus(items []OrderItem) OrderStatus {
	if len(items) == 0 {
		return OrderStatusPending
	}

	approved, rejected := 0, 0
	for _, item := range items {
		switch item.Status {
		case OrderItemStatusApproved:
			approved++
		case OrderItemStatusRejected:
			rejected++
		default:
			return OrderStatusPending
		}
	}

	switch {
	case rejected == 0:
		return OrderStatusApproved
	case approved == 0:
		return OrderStatusRejected
	default:
		return OrderStatusPartiallyApproved
	}
}

// TransactionType 錢包交易方向
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "Credit"
	TransactionTypeDebit  TransactionType = "Debit"
)
