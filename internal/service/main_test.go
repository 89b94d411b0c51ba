package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/fulfillment/internal/domain/model/event"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db/dbtest"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/logger"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/util"
	mock_service "github.com/RoyceAzure/lab/fulfillment/internal/service/mock"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testRetry = util.RetryConfig{
	Limit:    3,
	Delay:    time.Millisecond,
	MaxDelay: 5 * time.Millisecond,
}

// notificationLog 收集 mock notifier 收到的通知
type notificationLog struct {
	mu     sync.Mutex
	events []evt_model.Notification
}

func (l *notificationLog) add(evt evt_model.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
}

func (l *notificationLog) all() []evt_model.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := make([]evt_model.Notification, len(l.events))
	copy(res, l.events)
	return res
}

func (l *notificationLog) ofType(t evt_model.EventType) []evt_model.Notification {
	var res []evt_model.Notification
	for _, evt := range l.all() {
		if evt.Type() == t {
			res = append(res, evt)
		}
	}
	return res
}

func (l *notificationLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}

// testEnv 每個測試一份全新的 sqlite 與 miniredis
type testEnv struct {
	ctx context.Context

	dao   *db.DbDao
	store *db.Store
	mr    *miniredis.Miniredis
	rdb   *redis.Client

	stock *redis_repo.ProductRedisRepo
	carts *redis_repo.CartRepo

	ctrl     *gomock.Controller
	notifier *mock_service.MockNotifier
	notified *notificationLog

	ledger      *LedgerService
	inventory   *InventoryGuard
	settlement  *SettlementCoordinator
	fulfillment *FulfillmentService
	assembler   *OrderAssembler
	cartService *CartService
	queries     *OrderQueryService
}

func newTestEnv(t *testing.T) *testEnv {
	dao, err := dbtest.NewSqliteDao()
	require.NoError(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ctrl := gomock.NewController(t)
	notified := &notificationLog{}
	notifier := mock_service.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, evt evt_model.Notification) error {
			notified.add(evt)
			return nil
		}).AnyTimes()

	log := logger.Nop()
	store := db.NewStore(dao)
	stock := redis_repo.NewProductRedisRepo(rdb)
	carts := redis_repo.NewCartRepo(rdb)
	alerter := NewLogAlerter(log)

	env := &testEnv{
		ctx:      context.Background(),
		dao:      dao,
		store:    store,
		mr:       mr,
		rdb:      rdb,
		stock:    stock,
		carts:    carts,
		ctrl:     ctrl,
		notifier: notifier,
		notified: notified,
	}
	env.ledger = NewLedgerService(store, log)
	env.inventory = NewInventoryGuard(stock, testRetry, time.Second, log)
	env.settlement = NewSettlementCoordinator(store, env.ledger, notifier, nil, alerter, testRetry, log)
	env.fulfillment = NewFulfillmentService(store, env.ledger, env.settlement, env.inventory, nil, alerter, FlatRateDelivery(5), testRetry, log)
	env.assembler = NewOrderAssembler(store, carts, env.inventory, notifier, nil, alerter, testRetry, log)
	env.cartService = NewCartService(carts, store.Products())
	env.queries = NewOrderQueryService(store.Orders())

	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
		dbtest.Close(dao)
	})
	return env
}

func (e *testEnv) createProduct(t *testing.T, productID, sellerID string, price int64, stock int) {
	require.NoError(t, e.store.Products().CreateProduct(e.ctx, &model.Product{
		ProductID: productID,
		SellerID:  sellerID,
		Name:      "product " + productID,
		Price:     decimal.NewFromInt(price),
		Stock:     stock,
	}))
	_, err := e.stock.InitProductStock(e.ctx, productID, stock)
	require.NoError(t, err)
}

func (e *testEnv) addToCart(t *testing.T, customerID, productID string, quantity int) {
	_, err := e.cartService.AddItem(e.ctx, customerID, productID, quantity)
	require.NoError(t, err)
}

func (e *testEnv) stockOf(t *testing.T, productID string) int {
	n, err := e.stock.GetProductStock(e.ctx, productID)
	require.NoError(t, err)
	return n
}

// placeTwoSellerOrder 商品A 2個 @10 (seller-1), 商品B 1個 @30 (seller-2)
func (e *testEnv) placeTwoSellerOrder(t *testing.T, customerID string) *model.Order {
	e.createProduct(t, "product-a", "seller-1", 10, 10)
	e.createProduct(t, "product-b", "seller-2", 30, 5)
	e.addToCart(t, customerID, "product-a", 2)
	e.addToCart(t, customerID, "product-b", 1)

	order, err := e.assembler.PlaceOrder(e.ctx, customerID)
	require.NoError(t, err)
	e.notified.reset()
	return order
}

func itemOf(t *testing.T, order *model.Order, productID string) model.OrderItem {
	for _, item := range order.OrderItems {
		if item.ProductID == productID {
			return item
		}
	}
	t.Fatalf("order %s has no item for product %s", order.OrderID, productID)
	return model.OrderItem{}
}

func requireDecimal(t *testing.T, expected int64, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.NewFromInt(expected).Equal(actual), "expected %d, got %s", expected, actual)
}

func nopLogger() *zerolog.Logger {
	return logger.Nop()
}
