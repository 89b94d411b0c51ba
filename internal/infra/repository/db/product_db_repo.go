package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/*
商品目錄由外部系統維護, 這裡只讀價格與賣家
STOCK_BACKEND=db 時 stock 欄位是庫存真相來源, 以row lock序列化同商品的預留
*/
type ProductDBRepo struct {
	db *DbDao
}

func NewProductDBRepo(db *DbDao) *ProductDBRepo {
	return &ProductDBRepo{db: db}
}

func (s *ProductDBRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductDBRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", app_err.ErrProductNotFound, productID)
		}
		return nil, err
	}
	return &product, nil
}

// GetProductsByIDs 缺少任何一個商品即回傳 ErrProductNotFound
func (s *ProductDBRepo) GetProductsByIDs(ctx context.Context, productIDs []string) (map[string]*model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&products).Error
	if err != nil {
		return nil, err
	}

	res := make(map[string]*model.Product, len(products))
	for i := range products {
		res[products[i].ProductID] = &products[i]
	}
	for _, id := range productIDs {
		if _, ok := res[id]; !ok {
			return nil, fmt.Errorf("%w: product %s", app_err.ErrProductNotFound, id)
		}
	}
	return res, nil
}

func (s *ProductDBRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Order("product_id").Find(&products).Error
	return products, err
}

func (s *ProductDBRepo) GetProductStock(ctx context.Context, productID string) (int, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return product.Stock, nil
}

// TryReserveStock 原子性扣減庫存
// 同一 reservationID 重送時不再扣減, 扣減紀錄與庫存同一交易
/*
	錯誤:
		- ErrProductNotFound: 商品不存在
		- ErrInsufficientStock: 庫存不足, 不會有任何異動
*/
func (s *ProductDBRepo) TryReserveStock(ctx context.Context, reservationID, productID string, quantity int) error {
	if quantity <= 0 {
		return app_err.ErrInvalidQuantity
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var applied int64
		if err := tx.Model(&model.StockReservation{}).
			Where("reservation_id = ?", reservationID).
			Count(&applied).Error; err != nil {
			return err
		}
		if applied > 0 {
			return nil
		}

		// 先鎖定記錄
		var product model.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", productID).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %s", app_err.ErrProductNotFound, productID)
			}
			return err
		}

		if product.Stock < quantity {
			return fmt.Errorf("%w: product %s has %d, requested %d", app_err.ErrInsufficientStock, productID, product.Stock, quantity)
		}

		// 條件式更新, 沒有row lock的資料庫也不會扣成負數
		result := tx.Model(&model.Product{}).
			Where("product_id = ? AND stock >= ?", productID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: product %s", app_err.ErrInsufficientStock, productID)
		}

		return tx.Create(&model.StockReservation{
			ReservationID: reservationID,
			ProductID:     productID,
			Quantity:      quantity,
			CreatedAt:     time.Now().UTC(),
		}).Error
	})
}

func (s *ProductDBRepo) ReleaseStock(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return app_err.ErrInvalidQuantity
	}
	result := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", app_err.ErrProductNotFound, productID)
	}
	return nil
}
