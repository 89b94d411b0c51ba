package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 錢包交易紀錄永久保存, 不提供刪除
type WalletRepo struct {
	db *DbDao
}

func NewWalletRepo(db *DbDao) *WalletRepo {
	return &WalletRepo{db: db}
}

// CreateWallet 冪等, 同一客戶已存在時回傳既有錢包
func (s *WalletRepo) CreateWallet(ctx context.Context, wallet *model.Wallet) (*model.Wallet, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}},
			DoNothing: true,
		}).
		Create(wallet).Error
	if err != nil {
		return nil, err
	}
	return s.GetWalletByCustomerID(ctx, wallet.CustomerID)
}

func (s *WalletRepo) GetWalletByID(ctx context.Context, walletID string) (*model.Wallet, error) {
	var wallet model.Wallet
	err := s.db.WithContext(ctx).Where("wallet_id = ?", walletID).First(&wallet).Error
	if err != nil {
		return nil, walletErr(err, walletID)
	}
	return &wallet, nil
}

func (s *WalletRepo) GetWalletByCustomerID(ctx context.Context, customerID string) (*model.Wallet, error) {
	var wallet model.Wallet
	err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&wallet).Error
	if err != nil {
		return nil, walletErr(err, "of customer "+customerID)
	}
	return &wallet, nil
}

// 鎖定錢包, 需在交易內呼叫
func (s *WalletRepo) GetWalletForUpdate(ctx context.Context, walletID string) (*model.Wallet, error) {
	var wallet model.Wallet
	err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("wallet_id = ?", walletID).
		First(&wallet).Error
	if err != nil {
		return nil, walletErr(err, walletID)
	}
	return &wallet, nil
}

func (s *WalletRepo) UpdateBalance(ctx context.Context, walletID string, balance decimal.Decimal) error {
	result := s.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("wallet_id = ?", walletID).
		Update("balance", balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: wallet %s", app_err.ErrWalletNotFound, walletID)
	}
	return nil
}

func (s *WalletRepo) AppendTransaction(ctx context.Context, entry *model.WalletTransaction) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

// ListTransactions 依時間排序
func (s *WalletRepo) ListTransactions(ctx context.Context, walletID string) ([]model.WalletTransaction, error) {
	var entries []model.WalletTransaction
	err := s.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at, transaction_id").
		Find(&entries).Error
	return entries, err
}

func walletErr(err error, ref string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: wallet %s", app_err.ErrWalletNotFound, ref)
	}
	return err
}
