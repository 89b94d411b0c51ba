package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet 每個客戶一個, Balance 是交易紀錄加總的快取
// 只能透過 Ledger 異動
type Wallet struct {
	WalletID   string          `gorm:"primaryKey;type:varchar(64)" json:"wallet_id"`
	CustomerID string          `gorm:"not null;uniqueIndex;type:varchar(64)" json:"customer_id"`
	Balance    decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"balance"`
	BaseModel
}

// WalletTransaction 只新增不修改, 沒有軟刪除
type WalletTransaction struct {
	TransactionID string          `gorm:"primaryKey;type:varchar(64)" json:"transaction_id"`
	WalletID      string          `gorm:"not null;index;type:varchar(64)" json:"wallet_id"`
	OrderID       string          `gorm:"index;type:varchar(64)" json:"order_id,omitempty"`
	Type          TransactionType `gorm:"not null;type:varchar(16)" json:"type"`
	Amount        decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"amount"`
	BalanceAfter  decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"balance_after"`
	Description   string          `gorm:"type:varchar(255)" json:"description"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"created_at"`
}

// 金額欄位為 decimal(12,2)
const AmountScale = 2

var MaxAmount = decimal.New(1, 10).Sub(decimal.New(1, -AmountScale))

// ValidAmount 正數, 小數不超過兩位, 不超過欄位上限
// 1.500 視為 1.50
func ValidAmount(amount decimal.Decimal) bool {
	if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return false
	}
	return amount.Equal(amount.Truncate(AmountScale))
}

// SignedAmount credit為正, debit為負
func (t *WalletTransaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
