package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/fulfillment/internal/api"
	m "github.com/RoyceAzure/lab/fulfillment/internal/api/middleware"
	"github.com/RoyceAzure/lab/fulfillment/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, limiter ratelimit.Limiter, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(m.RateLimitMiddleware(limiter))

		r.Route("/customers/{customerID}", func(r chi.Router) {
			r.Get("/cart", server.CartHandler.GetCart)
			r.Delete("/cart", server.CartHandler.ClearCart)
			r.Post("/cart/items", server.CartHandler.AddItem)
			r.Post("/cart/items/{productID}/decrease", server.CartHandler.DecreaseItem)
			r.Delete("/cart/items/{productID}", server.CartHandler.RemoveItem)

			r.Post("/orders", server.OrderHandler.PlaceOrder)
			r.Get("/orders", server.OrderHandler.ListByCustomer)

			r.Post("/wallet", server.WalletHandler.OpenWallet)
			r.Get("/wallet", server.WalletHandler.GetByCustomer)
		})

		r.Route("/orders/{orderID}", func(r chi.Router) {
			r.Get("/", server.OrderHandler.GetOrder)
			r.Post("/cancel", server.OrderHandler.CancelOrder)
			r.Post("/deliver", server.OrderHandler.MarkDelivered)
		})

		//賣家只能處理自己的明細
		r.Route("/sellers/{sellerID}", func(r chi.Router) {
			r.Get("/orders", server.SellerHandler.ListOrders)
			r.Post("/order-items/{itemID}/approve", server.SellerHandler.ApproveItem)
			r.Post("/order-items/{itemID}/reject", server.SellerHandler.RejectItem)
		})

		r.Route("/wallets/{walletID}", func(r chi.Router) {
			r.Get("/", server.WalletHandler.GetWallet)
			r.Get("/transactions", server.WalletHandler.ListTransactions)
			r.Post("/funds", server.WalletHandler.AddFunds)
			r.Post("/payments", server.WalletHandler.Pay)
		})
	})

	// 設置完所有路由後列出路由樹
	_ = chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		logger.Debug().Str("method", method).Str("route", route).Msg("route registered")
		return nil
	})
	return r
}
