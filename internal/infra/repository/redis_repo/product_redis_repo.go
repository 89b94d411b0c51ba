package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/redis/go-redis/v9"
)

// IProductRedisRepository redis 商品庫存
type IProductRedisRepository interface {
	// InitProductStock 庫存不存在時才寫入, 回傳是否有寫入
	InitProductStock(ctx context.Context, productID string, stock int) (bool, error)
	GetProductStock(ctx context.Context, productID string) (int, error)
	// TryReserveStock 原子性扣減庫存, 同一 reservationID 只扣一次
	TryReserveStock(ctx context.Context, reservationID, productID string, quantity int) error
	// ReleaseStock 歸還預留的庫存
	ReleaseStock(ctx context.Context, productID string, quantity int) error
}

/*
	redis 專注商品庫存, 單一Lua腳本內完成檢查與扣減, 同商品的預留天然序列化
	結構:
	product:{商品ID}:stock: {
		stock: 100,
	}
*/
type ProductRedisRepo struct {
	productCache *redis.Client
}

func NewProductRedisRepo(productCache *redis.Client) *ProductRedisRepo {
	return &ProductRedisRepo{productCache: productCache}
}

func generateProductStockKey(productID string) string {
	return fmt.Sprintf("product:%s:stock", productID)
}

func generateReservationKey(reservationID string) string {
	return fmt.Sprintf("reservation:%s", reservationID)
}

// 預留標記保留時間, 涵蓋單次下單的重試期間即可
const reservationTokenTTL = 10 * time.Minute

func (s *ProductRedisRepo) InitProductStock(ctx context.Context, productID string, stock int) (bool, error) {
	return s.productCache.HSetNX(ctx, generateProductStockKey(productID), "stock", stock).Result()
}

// 取得 庫存商品數量
// 錯誤:
//   - ErrProductNotFound: 商品不存在
//   - err: 其他錯誤
func (s *ProductRedisRepo) GetProductStock(ctx context.Context, productID string) (int, error) {
	stock, err := s.productCache.HGet(ctx, generateProductStockKey(productID), "stock").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, fmt.Errorf("%w: product %s", app_err.ErrProductNotFound, productID)
		}
		return 0, err
	}

	stockInt, err := strconv.Atoi(stock)
	if err != nil {
		return 0, err
	}
	return stockInt, nil
}

const stockDeductionScript = `
	local key = KEYS[1]
	local token = KEYS[2]
	local quantity = tonumber(ARGV[1])
	local field = ARGV[2]
	local ttl = tonumber(ARGV[3])

	-- 同一預留已扣過, 重送直接成功
	if redis.call('EXISTS', token) == 1 then
		return 0
	end

	local current_stock = redis.call('HGET', key, field)
	if not current_stock then
		return -1
	end

	current_stock = tonumber(current_stock)

	if current_stock < quantity then
		return -2  -- 表示庫存不足
	end

	redis.call('SET', token, quantity, 'EX', ttl)
	return redis.call('HINCRBY', key, field, -quantity)
`

const stockReleaseScript = `
	local key = KEYS[1]
	local quantity = tonumber(ARGV[1])
	local field = ARGV[2]

	if not redis.call('HGET', key, field) then
		return -1
	end

	return redis.call('HINCRBY', key, field, quantity)
`

// 原子性扣減庫存
/*
	錯誤:
		- ErrProductNotFound: 商品不存在
		- ErrInsufficientStock: 庫存不足, 不會有任何異動
		- err: 其他錯誤
*/
func (s *ProductRedisRepo) TryReserveStock(ctx context.Context, reservationID, productID string, quantity int) error {
	if quantity <= 0 {
		return app_err.ErrInvalidQuantity
	}

	resultInt, err := s.evalStock(ctx, stockDeductionScript,
		[]string{generateProductStockKey(productID), generateReservationKey(reservationID)},
		quantity, "stock", int(reservationTokenTTL/time.Second))
	if err != nil {
		return fmt.Errorf("failed to deduct stock: %w", err)
	}

	switch resultInt {
	case -1:
		return fmt.Errorf("%w: product %s", app_err.ErrProductNotFound, productID)
	case -2:
		return fmt.Errorf("%w: product %s requested %d", app_err.ErrInsufficientStock, productID, quantity)
	default:
		return nil
	}
}

func (s *ProductRedisRepo) ReleaseStock(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return app_err.ErrInvalidQuantity
	}

	resultInt, err := s.evalStock(ctx, stockReleaseScript, []string{generateProductStockKey(productID)}, quantity, "stock")
	if err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}
	if resultInt == -1 {
		return fmt.Errorf("%w: product %s", app_err.ErrProductNotFound, productID)
	}
	return nil
}

func (s *ProductRedisRepo) evalStock(ctx context.Context, script string, keys []string, args ...interface{}) (int64, error) {
	result, err := s.productCache.Eval(ctx, script, keys, args...).Result()
	if err != nil {
		return 0, err
	}

	resultInt, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected result type: %T", result)
	}
	return resultInt, nil
}

// 確保 ProductRedisRepo 實現了 IProductRedisRepository 介面
var _ IProductRedisRepository = (*ProductRedisRepo)(nil)
