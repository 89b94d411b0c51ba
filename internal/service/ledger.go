package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/constants"
	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/util"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ILedgerService interface {
	OpenWallet(ctx context.Context, customerID string) (*model.Wallet, error)
	GetWallet(ctx context.Context, walletID string) (*model.Wallet, error)
	GetWalletByCustomer(ctx context.Context, customerID string) (*model.Wallet, error)
	ListTransactions(ctx context.Context, walletID string) ([]model.WalletTransaction, error)
	Credit(ctx context.Context, walletID string, amount decimal.Decimal, description string) (*model.WalletTransaction, error)
	Debit(ctx context.Context, walletID string, amount decimal.Decimal, description string) (*model.WalletTransaction, error)
	AddFunds(ctx context.Context, walletID string, amount decimal.Decimal, description string) (*model.WalletTransaction, error)
	Pay(ctx context.Context, walletID string, amount decimal.Decimal, description string) (*model.WalletTransaction, error)
	RecomputeBalance(ctx context.Context, walletID string) (decimal.Decimal, error)
}

// LedgerService 錢包餘額只能經由這裡異動
// 同一錢包: 先取 process 內的 keyed mutex, 再開交易並鎖 row
type LedgerService struct {
	store  db.IStore
	locks  *util.KeyedMutex
	logger *zerolog.Logger
}

func NewLedgerService(store db.IStore, logger *zerolog.Logger) *LedgerService {
	if store == nil {
		panic("ledger service dependency store is nil")
	}
	return &LedgerService{
		store:  store,
		locks:  util.NewKeyedMutex(),
		logger: logger,
	}
}

// OpenWallet 冪等, 已存在時回傳既有錢包
func (l *LedgerService) OpenWallet(ctx context.Context, customerID string) (*model.Wallet, error) {
	return l.store.Wallets().CreateWallet(ctx, &model.Wallet{
		WalletID:   util.GenerateID(),
		CustomerID: customerID,
		Balance:    decimal.Zero,
	})
}

func (l *LedgerService) GetWallet(ctx context.Context, walletID string) (*model.Wallet, error) {
	return l.store.Wallets().GetWalletByID(ctx, walletID)
}

func (l *LedgerService) GetWalletByCustomer(ctx context.Context, customerID string) (*model.Wallet, error) {
	return l.store.Wallets().GetWalletByCustomerID(ctx, customerID)
}

func (l *LedgerService) ListTransactions(ctx context.Context, walletID string) ([]model.WalletTransaction, error) {
	if _, err := l.store.Wallets().GetWalletByID(ctx, walletID); err != nil {
		return nil, err
	}
	return l.store.Wallets().ListTransactions(ctx, walletID)
}

func (l *LedgerService) Credit(ctx context.Context, walletID string, amount decimal.Decimal, description string) (*model.WalletTransaction, error) {
	return l.apply(ctx, walletID, model.TransactionTypeCredit, amount, description, "")
}

func (l *LedgerService) Debit(ctx context.Context, walletID string, amount decimal.Decimal, description string) (*model.WalletTransaction, error) {
	return l.apply(ctx, walletID, model.TransactionTypeDebit, amount, description, "")
}

func (l *LedgerService) AddFunds(ctx context.Context, walletID string, amount decimal.Decimal, description string) (*model.WalletTransaction, error) {
	if description == "" {
		description = constants.DescriptionDeposit
	}
	return l.Credit(ctx, walletID, amount, description)
}

func (l *LedgerService) Pay(ctx context.Context, walletID string, amount decimal.Decimal, description string) (*model.WalletTransaction, error) {
	if description == "" {
		description = constants.DefaultWalletDescription
	}
	return l.Debit(ctx, walletID, amount, description)
}

// RecomputeBalance 由交易紀錄重新加總, 應與快取餘額相同
func (l *LedgerService) RecomputeBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	entries, err := l.ListTransactions(ctx, walletID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	sum := decimal.Zero
	for i := range entries {
		sum = sum.Add(entries[i].SignedAmount())
	}
	return sum, nil
}

// lockWallet 呼叫端拿到鎖後才能開交易
func (l *LedgerService) lockWallet(ctx context.Context, walletID string) (func(), error) {
	return l.locks.Lock(ctx, walletID)
}

func (l *LedgerService) apply(ctx context.Context, walletID string, txType model.TransactionType, amount decimal.Decimal, description, orderID string) (*model.WalletTransaction, error) {
	if !model.ValidAmount(amount) {
		return nil, fmt.Errorf("%w: %s", app_err.ErrInvalidAmount, amount)
	}

	unlock, err := l.lockWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var entry *model.WalletTransaction
	err = l.store.ExecTx(ctx, func(q db.IStore) error {
		var txErr error
		entry, txErr = applyInTx(ctx, q, walletID, txType, amount, description, orderID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("wallet_id", walletID).
		Str("type", string(txType)).
		Str("amount", amount.String()).
		Str("balance_after", entry.BalanceAfter.String()).
		Msg("wallet transaction applied")
	return entry, nil
}

// applyInTx 需在交易內且已持有該錢包的 keyed mutex
// 檢查餘額, 寫交易紀錄, 更新快取餘額 三者同一交易
func applyInTx(ctx context.Context, q db.IStore, walletID string, txType model.TransactionType, amount decimal.Decimal, description, orderID string) (*model.WalletTransaction, error) {
	if !model.ValidAmount(amount) {
		return nil, fmt.Errorf("%w: %s", app_err.ErrInvalidAmount, amount)
	}

	wallet, err := q.Wallets().GetWalletForUpdate(ctx, walletID)
	if err != nil {
		return nil, err
	}

	balance := wallet.Balance
	switch txType {
	case model.TransactionTypeDebit:
		if balance.LessThan(amount) {
			return nil, fmt.Errorf("%w: wallet %s balance %s, requested %s", app_err.ErrInsufficientFunds, walletID, balance, amount)
		}
		balance = balance.Sub(amount)
	case model.TransactionTypeCredit:
		balance = balance.Add(amount)
		if balance.GreaterThan(model.MaxAmount) {
			return nil, fmt.Errorf("%w: wallet %s balance would exceed %s", app_err.ErrInvalidAmount, walletID, model.MaxAmount)
		}
	default:
		return nil, fmt.Errorf("unknown transaction type %q", txType)
	}

	entry := &model.WalletTransaction{
		TransactionID: util.GenerateID(),
		WalletID:      walletID,
		OrderID:       orderID,
		Type:          txType,
		Amount:        amount,
		BalanceAfter:  balance,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	}
	if err := q.Wallets().AppendTransaction(ctx, entry); err != nil {
		return nil, err
	}
	if err := q.Wallets().UpdateBalance(ctx, walletID, balance); err != nil {
		return nil, err
	}
	return entry, nil
}
