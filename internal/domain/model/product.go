package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 由商品目錄系統維護, 這裡只讀取價格與賣家
// Stock 在 db 庫存模式下才是真相來源, redis 模式以 product:{id}:stock 為準
type Product struct {
	ProductID string          `gorm:"primaryKey;type:varchar(64)" json:"product_id"`
	SellerID  string          `gorm:"not null;index;type:varchar(64)" json:"seller_id"`
	Name      string          `gorm:"not null;type:varchar(255)" json:"name"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	Stock     int             `gorm:"not null" json:"stock"`
	BaseModel
}

// StockReservation db 庫存模式的扣減紀錄, 同一 ReservationID 只扣一次
type StockReservation struct {
	ReservationID string    `gorm:"primaryKey;type:varchar(64)" json:"reservation_id"`
	ProductID     string    `gorm:"not null;index;type:varchar(64)" json:"product_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
