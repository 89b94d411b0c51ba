package service

import (
	"context"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db"
)

type IOrderQueryService interface {
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]model.Order, error)
	ListOrdersBySeller(ctx context.Context, sellerID string) ([]model.Order, error)
}

type OrderQueryService struct {
	orderRepo db.IOrderRepository
}

func NewOrderQueryService(orderRepo db.IOrderRepository) *OrderQueryService {
	return &OrderQueryService{orderRepo: orderRepo}
}

func (o *OrderQueryService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return o.orderRepo.GetOrderByID(ctx, orderID)
}

func (o *OrderQueryService) ListOrdersByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	return o.orderRepo.GetOrdersByCustomerID(ctx, customerID)
}

// ListOrdersBySeller 每張訂單只包含該賣家的明細
func (o *OrderQueryService) ListOrdersBySeller(ctx context.Context, sellerID string) ([]model.Order, error) {
	return o.orderRepo.GetOrdersBySellerID(ctx, sellerID)
}
