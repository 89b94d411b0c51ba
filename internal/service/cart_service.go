package service

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
)

type ICartService interface {
	AddItem(ctx context.Context, customerID, productID string, quantity int) (*model.Cart, error)
	DecreaseItem(ctx context.Context, customerID, productID string, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, customerID, productID string) (*model.Cart, error)
	GetCart(ctx context.Context, customerID string) (*model.Cart, error)
	ClearCart(ctx context.Context, customerID string) error
}

// CartService 購物車階段只寫 redis, 不預留庫存
type CartService struct {
	carts       redis_repo.ICartRepository
	productRepo db.IProductRepository
}

func NewCartService(carts redis_repo.ICartRepository, productRepo db.IProductRepository) *CartService {
	return &CartService{carts: carts, productRepo: productRepo}
}

func (c *CartService) AddItem(ctx context.Context, customerID, productID string, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: product %s quantity %d", app_err.ErrInvalidQuantity, productID, quantity)
	}
	if _, err := c.productRepo.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := c.carts.Delta(ctx, customerID, productID, quantity); err != nil {
		return nil, err
	}
	return c.carts.Get(ctx, customerID)
}

// DecreaseItem 減到 0 時品項移除, 超過現有數量回傳 ErrCartItemQuantity
func (c *CartService) DecreaseItem(ctx context.Context, customerID, productID string, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: product %s quantity %d", app_err.ErrInvalidQuantity, productID, quantity)
	}
	if _, err := c.carts.Delta(ctx, customerID, productID, -quantity); err != nil {
		return nil, err
	}
	return c.carts.Get(ctx, customerID)
}

func (c *CartService) RemoveItem(ctx context.Context, customerID, productID string) (*model.Cart, error) {
	if err := c.carts.Delete(ctx, customerID, productID); err != nil {
		return nil, err
	}
	return c.carts.Get(ctx, customerID)
}

func (c *CartService) GetCart(ctx context.Context, customerID string) (*model.Cart, error) {
	return c.carts.Get(ctx, customerID)
}

func (c *CartService) ClearCart(ctx context.Context, customerID string) error {
	return c.carts.Clear(ctx, customerID)
}
