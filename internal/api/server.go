package api

import "github.com/RoyceAzure/lab/fulfillment/internal/api/handler"

type Server struct {
	CartHandler   *handler.CartHandler
	OrderHandler  *handler.OrderHandler
	SellerHandler *handler.SellerHandler
	WalletHandler *handler.WalletHandler
}

func NewServer(
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	sellerHandler *handler.SellerHandler,
	walletHandler *handler.WalletHandler,
) *Server {
	return &Server{
		CartHandler:   cartHandler,
		OrderHandler:  orderHandler,
		SellerHandler: sellerHandler,
		WalletHandler: walletHandler,
	}
}
