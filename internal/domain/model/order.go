package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order 建立後價格快照不可變, TotalAmount 不會再依現價重算
type Order struct {
	OrderID               string          `gorm:"primaryKey;type:varchar(64)" json:"order_id"`
	CustomerID            string          `gorm:"not null;index;type:varchar(64)" json:"customer_id"`
	OrderItems            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"` // 一對多
	TotalAmount           decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"total_amount"`
	OrderDate             time.Time       `gorm:"not null" json:"order_date"`
	EstimatedDeliveryTime *time.Time      `json:"estimated_delivery_time,omitempty"`
	Status                OrderStatus     `gorm:"not null;index;type:varchar(32)" json:"status"`
	// 樂觀鎖, 聚合狀態更新時比對
	Version int64 `gorm:"not null" json:"version"`
	// 結算標記, 非空代表退款與通知已處理
	SettledAt      *time.Time      `gorm:"index" json:"settled_at,omitempty"`
	CapturedAmount decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"captured_amount"`
	RefundAmount   decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"refund_amount"`
	BaseModel
}

type OrderItem struct {
	OrderItemID     string          `gorm:"primaryKey;type:varchar(64)" json:"order_item_id"`
	OrderID         string          `gorm:"not null;index;type:varchar(64)" json:"order_id"`
	ProductID       string          `gorm:"not null;type:varchar(64)" json:"product_id"`
	SellerID        string          `gorm:"not null;index;type:varchar(64)" json:"seller_id"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price_at_purchase"`
	Status          OrderItemStatus `gorm:"not null;type:varchar(32)" json:"status"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
	BaseModel
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SumSubtotal Σ(priceAtPurchase × quantity)
func SumSubtotal(items []OrderItem) decimal.Decimal {
	amount := decimal.Zero
	for i := range items {
		amount = amount.Add(items[i].Subtotal())
	}
	return amount
}

// SplitByStatus 拆出已核准與已拒絕的明細
func SplitByStatus(items []OrderItem) (approved, rejected []OrderItem) {
	for _, item := range items {
		switch item.Status {
		case OrderItemStatusApproved:
			approved = append(approved, item)
		case OrderItemStatusRejected:
			rejected = append(rejected, item)
		}
	}
	return approved, rejected
}

// GroupBySeller 依賣家分組, 同一賣家可能有多筆明細
func GroupBySeller(items []OrderItem) map[string][]OrderItem {
	groups := make(map[string][]OrderItem)
	for _, item := range items {
		groups[item.SellerID] = append(groups[item.SellerID], item)
	}
	return groups
}

func (o *Order) AllItemsPending() bool {
	for _, item := range o.OrderItems {
		if item.Status != OrderItemStatusPending {
			return false
		}
	}
	return true
}
