package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/api"
	"github.com/RoyceAzure/lab/fulfillment/internal/api/handler"
	"github.com/RoyceAzure/lab/fulfillment/internal/api/router"
	"github.com/RoyceAzure/lab/fulfillment/internal/appcontext"
	"github.com/RoyceAzure/lab/fulfillment/internal/config"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	// 初始化 handler
	server := api.NewServer(
		handler.NewCartHandler(app.CartService),
		handler.NewOrderHandler(app.OrderAssembler, app.OrderQueryService, app.FulfillmentService),
		handler.NewSellerHandler(app.OrderQueryService, app.FulfillmentService),
		handler.NewWalletHandler(app.LedgerService),
	)

	// 設置路由
	r := router.SetupRouter(server, app.RateLimiter, app.Logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("Application shutdown error: %v", err)
		}

		shutDownCompleted <- struct{}{}
	}()

	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutDownCompleted
	log.Printf("closed completed")
}
