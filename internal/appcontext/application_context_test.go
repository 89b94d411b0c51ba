package appcontext

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/config"
	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/eventdb"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db/dbtest"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/logger"
	"github.com/RoyceAzure/lab/fulfillment/internal/ratelimit"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 跳過 postgres 連線, 其餘 setUp 步驟照正式流程跑
func newTestApp(t *testing.T, stockBackend, rateLimitType string) *ApplicationContext {
	t.Helper()

	dao, err := dbtest.NewSqliteDao()
	require.NoError(t, err)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := &ApplicationContext{
		Cf: &config.Config{
			ModulerName:       "fulfillment-test",
			StockBackend:      stockBackend,
			ReserveTimeout:    time.Second,
			ReserveRetryLimit: 1,
			RetryLimit:        2,
			RetryDelay:        time.Millisecond,
			DeliveryDays:      5,
			ReconcileInterval: time.Hour,
			RateLimitType:     rateLimitType,
			RateLimitCapacity: 2,
			RateLimitRate:     1,
		},
		Logger:      logger.Nop(),
		DbDao:       dao,
		Store:       db.NewStore(dao),
		RedisClient: client,
		CartRepo:    redis_repo.NewCartRepo(client),
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, app.Shutdown(ctx))
	})
	return app
}

func runSetUp(t *testing.T, app *ApplicationContext) {
	t.Helper()
	for _, fn := range []func() error{
		app.setUpStockStore,
		app.setUpNotifier,
		app.setUpJournal,
		app.setUpServices,
		app.setUpReconciler,
		app.setUpRateLimiter,
	} {
		require.NoError(t, fn())
	}
}

func TestSetUpRedisStockSyncsProducts(t *testing.T) {
	app := newTestApp(t, "redis", "none")
	ctx := context.Background()
	require.NoError(t, app.Store.Products().CreateProduct(ctx, &model.Product{
		ProductID: "p1",
		SellerID:  "seller-1",
		Name:      "widget",
		Price:     decimal.NewFromInt(10),
		Stock:     7,
	}))

	runSetUp(t, app)

	_, ok := app.StockStore.(*redis_repo.ProductRedisRepo)
	require.True(t, ok)
	stock, err := redis_repo.NewProductRedisRepo(app.RedisClient).GetProductStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, stock)

	// 無 kafka / esdb 設定時使用本地實作
	assert.IsType(t, eventdb.NoopJournal{}, app.Journal)
	assert.NotNil(t, app.Notifier)
	assert.True(t, app.RateLimiter.Allow(ctx))
}

func TestSetUpServicesPlaceOrderEndToEnd(t *testing.T) {
	app := newTestApp(t, "db", "token_bucket")
	ctx := context.Background()
	require.NoError(t, app.Store.Products().CreateProduct(ctx, &model.Product{
		ProductID: "p1",
		SellerID:  "seller-1",
		Name:      "widget",
		Price:     decimal.NewFromInt(10),
		Stock:     3,
	}))
	runSetUp(t, app)

	_, err := app.CustomerHook.OnCustomerCreated(ctx, "c1")
	require.NoError(t, err)
	_, err = app.CartService.AddItem(ctx, "c1", "p1", 2)
	require.NoError(t, err)

	order, err := app.OrderAssembler.PlaceOrder(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(20)))

	stock, err := app.Store.Products().GetProductStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, stock)

	// capacity 2 的本地 bucket
	assert.True(t, app.RateLimiter.Allow(ctx))
	assert.True(t, app.RateLimiter.Allow(ctx))
	assert.False(t, app.RateLimiter.Allow(ctx))
}

func TestSetUpRejectsUnknownBackends(t *testing.T) {
	app := newTestApp(t, "memcached", "none")
	assert.Error(t, app.setUpStockStore())

	app.Cf.RateLimitType = "leaky"
	assert.Error(t, app.setUpRateLimiter())

	app.Cf.RateLimitType = string(ratelimit.NoLimitType)
	require.NoError(t, app.setUpRateLimiter())
	assert.True(t, app.RateLimiter.Allow(context.Background()))
}

func TestSetUpRedisOptions(t *testing.T) {
	mr := miniredis.RunT(t)
	app := &ApplicationContext{
		Cf: &config.Config{
			RedisAddr:     mr.Addr(),
			RedisDB:       2,
			RedisPoolSize: 3,
		},
		Logger: logger.Nop(),
	}
	require.NoError(t, app.setUpRedis())
	defer app.RedisClient.Close()

	assert.Equal(t, 3, app.RedisClient.Options().PoolSize)
	assert.Equal(t, 2, app.RedisClient.Options().DB)
	assert.NotNil(t, app.CartRepo)
}
