package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IStore 集中三個repo, ExecTx 內拿到的 IStore 共用同一個交易
// 交易內只能使用 fn 參數給的 IStore, 不可再用外層的
type IStore interface {
	Products() IProductRepository
	Orders() IOrderRepository
	Wallets() IWalletRepository
	ExecTx(ctx context.Context, fn func(q IStore) error) error
}

// IProductRepository 商品目錄(唯讀)與db庫存
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID string) (*model.Product, error)
	GetProductsByIDs(ctx context.Context, productIDs []string) (map[string]*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductStock(ctx context.Context, productID string) (int, error)
	TryReserveStock(ctx context.Context, reservationID, productID string, quantity int) error
	ReleaseStock(ctx context.Context, productID string, quantity int) error
}

// IOrderRepository 訂單與明細
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetOrdersByCustomerID(ctx context.Context, customerID string) ([]model.Order, error)
	GetOrdersBySellerID(ctx context.Context, sellerID string) ([]model.Order, error)
	GetOrderItemForUpdate(ctx context.Context, orderItemID string) (*model.OrderItem, error)
	LockOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	ResolveOrderItem(ctx context.Context, orderItemID string, status model.OrderItemStatus, resolvedAt time.Time) (bool, error)
	UpdateOrderStatus(ctx context.Context, orderID string, expectedVersion int64, from, to model.OrderStatus, eta *time.Time) (bool, error)
	MarkSettled(ctx context.Context, orderID string, settledAt time.Time, captured, refund decimal.Decimal) (bool, error)
	GetUnsettledOrders(ctx context.Context, createdBefore time.Time, afterOrderID string, limit int) ([]model.Order, error)
}

// IWalletRepository 錢包與交易紀錄, 交易紀錄只新增
type IWalletRepository interface {
	CreateWallet(ctx context.Context, wallet *model.Wallet) (*model.Wallet, error)
	GetWalletByID(ctx context.Context, walletID string) (*model.Wallet, error)
	GetWalletByCustomerID(ctx context.Context, customerID string) (*model.Wallet, error)
	GetWalletForUpdate(ctx context.Context, walletID string) (*model.Wallet, error)
	UpdateBalance(ctx context.Context, walletID string, balance decimal.Decimal) error
	AppendTransaction(ctx context.Context, entry *model.WalletTransaction) error
	ListTransactions(ctx context.Context, walletID string) ([]model.WalletTransaction, error)
}

type Store struct {
	db       *DbDao
	products *ProductDBRepo
	orders   *OrderRepo
	wallets  *WalletRepo
}

func NewStore(db *DbDao) *Store {
	return &Store{
		db:       db,
		products: NewProductDBRepo(db),
		orders:   NewOrderRepo(db),
		wallets:  NewWalletRepo(db),
	}
}

func (s *Store) Products() IProductRepository { return s.products }
func (s *Store) Orders() IOrderRepository     { return s.orders }
func (s *Store) Wallets() IWalletRepository   { return s.wallets }

// ExecTx 執行一個交易, 巢狀呼叫時使用savepoint
func (s *Store) ExecTx(ctx context.Context, fn func(q IStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(NewDbDao(tx)))
	})
}

var (
	_ IStore             = (*Store)(nil)
	_ IProductRepository = (*ProductDBRepo)(nil)
	_ IOrderRepository   = (*OrderRepo)(nil)
	_ IWalletRepository  = (*WalletRepo)(nil)
)
