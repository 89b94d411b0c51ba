package redis_repo

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/redis/go-redis/v9"
)

// ICartRepository 購物車只存在redis
type ICartRepository interface {
	Get(ctx context.Context, customerID string) (*model.Cart, error)
	Delta(ctx context.Context, customerID string, productID string, deltaQuantity int) (int, error)
	Delete(ctx context.Context, customerID string, productID string) error
	Clear(ctx context.Context, customerID string) error
}

/*
	結構:
	cart:{customerID}:items: {
		商品ID: 數量,
	}
*/
type CartRepo struct {
	cartCache *redis.Client
}

func NewCartRepo(cartCache *redis.Client) *CartRepo {
	return &CartRepo{cartCache: cartCache}
}

func generateCartItemKey(customerID string) string {
	return fmt.Sprintf("cart:%s:items", customerID)
}

// Get 不存在的購物車回傳空購物車, 明細依productID排序
func (r *CartRepo) Get(ctx context.Context, customerID string) (*model.Cart, error) {
	items, err := r.cartCache.HGetAll(ctx, generateCartItemKey(customerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	cart := &model.Cart{
		CustomerID: customerID,
		Items:      make([]model.CartItem, 0, len(items)),
	}
	for productID, quantityStr := range items {
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for product %s: %w", productID, err)
		}
		if quantity > 0 {
			cart.Items = append(cart.Items, model.CartItem{
				ProductID: productID,
				Quantity:  quantity,
			})
		}
	}
	sort.Slice(cart.Items, func(i, j int) bool {
		return cart.Items[i].ProductID < cart.Items[j].ProductID
	})

	return cart, nil
}

// Delta 更新購物車中商品數量(支援增減), 回傳更新後數量
func (r *CartRepo) Delta(ctx context.Context, customerID string, productID string, deltaQuantity int) (int, error) {
	itemsKey := generateCartItemKey(customerID)

	// 使用 Lua 腳本執行原子增減
	luaScript := `
		local key = KEYS[1]
		local product_id = ARGV[1]
		local delta = tonumber(ARGV[2])

		-- 如果是扣減操作，先檢查數量是否足夠
		if delta < 0 then
			local current = tonumber(redis.call('HGET', key, product_id) or "0")
			if current + delta < 0 then
				return -2  -- 商品數量不足
			end
			-- 如果扣減後剛好為 0，直接刪除
			if current == -delta then
				redis.call('HDEL', key, product_id)
				return 0
			end
		end

		-- 使用 HINCRBY 進行原子增減
		return redis.call('HINCRBY', key, product_id, delta)
	`

	result, err := r.cartCache.Eval(ctx, luaScript, []string{itemsKey}, productID, deltaQuantity).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to update cart item: %w", err)
	}

	v, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected result type: %T", result)
	}
	if v == -2 {
		return 0, fmt.Errorf("%w: product %s", app_err.ErrCartItemQuantity, productID)
	}
	return int(v), nil
}

// Delete 從購物車中刪除指定商品
func (r *CartRepo) Delete(ctx context.Context, customerID string, productID string) error {
	if err := r.cartCache.HDel(ctx, generateCartItemKey(customerID), productID).Err(); err != nil {
		return fmt.Errorf("failed to delete item from cart: %w", err)
	}
	return nil
}

// Clear 清空購物車
func (r *CartRepo) Clear(ctx context.Context, customerID string) error {
	if err := r.cartCache.Del(ctx, generateCartItemKey(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

var _ ICartRepository = (*CartRepo)(nil)
