package app_err

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// 使用者可見, 不自動重試
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNotOwner           = errors.New("requester does not own the resource")
	ErrAlreadyResolved    = errors.New("order item already resolved")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderItemNotFound  = errors.New("order item not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrInvalidAmount      = errors.New("amount must be positive with at most two decimal places")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrCartItemQuantity   = errors.New("cart item quantity is not enough")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidOrderAction = errors.New("order can not perform this action in current status")

	// 基礎設施錯誤, 內部有限次數重試, 用盡後升級到維運告警
	ErrSettlementFailure           = errors.New("settlement failure")
	ErrConcurrentAggregateConflict = errors.New("concurrent aggregate conflict")
)

var userErrors = []error{
	ErrInsufficientStock,
	ErrEmptyCart,
	ErrInsufficientFunds,
	ErrNotOwner,
	ErrAlreadyResolved,
	ErrOrderNotFound,
	ErrOrderItemNotFound,
	ErrProductNotFound,
	ErrWalletNotFound,
	ErrInvalidAmount,
	ErrInvalidQuantity,
	ErrCartItemQuantity,
	ErrInvalidTransition,
	ErrInvalidOrderAction,
}

// StockError 標出是哪個商品庫存不足
type StockError struct {
	ProductID string
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

func NewStockError(productID string, requested int) error {
	return &StockError{ProductID: productID, Requested: requested}
}

// NewSettlementError 包裝結算失敗, 保留原始錯誤
func NewSettlementError(orderID string, err error) error {
	return fmt.Errorf("%w: order %s: %w", ErrSettlementFailure, orderID, err)
}

// IsUserError 判斷是否為使用者可見的終止錯誤
func IsUserError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsRetryable 判斷是否可重試
// return
// true 表示可重試, false 表示不可重試
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if IsUserError(err) {
		return false
	}
	// 呼叫端主動取消, 不再重試
	if errors.Is(err, context.Canceled) {
		return false
	}
	return !IsPermanent(err)
}

var permanentDbErrors = []error{
	gorm.ErrDuplicatedKey,
	gorm.ErrForeignKeyViolated,
	gorm.ErrCheckConstraintViolated,
	gorm.ErrInvalidData,
	gorm.ErrMissingWhereClause,
	gorm.ErrInvalidField,
	gorm.ErrInvalidValue,
	gorm.ErrModelValueRequired,
	gorm.ErrPrimaryKeyRequired,
	gorm.ErrUnsupportedDriver,
}

// IsPermanent 重試也不會成功的資料庫錯誤
// postgres: 22 資料錯誤 (溢位, 格式), 23 違反約束, 42 語法或物件不存在
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range permanentDbErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case "22", "23", "42":
			return true
		}
	}
	return false
}
