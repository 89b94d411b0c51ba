package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RoyceAzure/lab/fulfillment/internal/api"
	"github.com/RoyceAzure/lab/fulfillment/internal/api/handler"
	"github.com/RoyceAzure/lab/fulfillment/internal/domain/model"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/logger"
	"github.com/RoyceAzure/lab/fulfillment/internal/ratelimit"
	mock_service "github.com/RoyceAzure/lab/fulfillment/internal/service/mock"
	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type denyAll struct{}

func (denyAll) Allow(ctx context.Context) bool { return false }

// 以數值比較 decimal, 不比較內部表示
type decimalMatcher struct{ want decimal.Decimal }

func decimalEq(v string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(v)}
}

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string { return "decimal equal to " + m.want.String() }

type RouterTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	carts       *mock_service.MockICartService
	assembler   *mock_service.MockIOrderAssembler
	query       *mock_service.MockIOrderQueryService
	fulfillment *mock_service.MockIFulfillmentService
	ledger      *mock_service.MockILedgerService
	server      *api.Server
	router      *chi.Mux
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.carts = mock_service.NewMockICartService(s.ctrl)
	s.assembler = mock_service.NewMockIOrderAssembler(s.ctrl)
	s.query = mock_service.NewMockIOrderQueryService(s.ctrl)
	s.fulfillment = mock_service.NewMockIFulfillmentService(s.ctrl)
	s.ledger = mock_service.NewMockILedgerService(s.ctrl)

	s.server = api.NewServer(
		handler.NewCartHandler(s.carts),
		handler.NewOrderHandler(s.assembler, s.query, s.fulfillment),
		handler.NewSellerHandler(s.query, s.fulfillment),
		handler.NewWalletHandler(s.ledger),
	)
	s.router = SetupRouter(s.server, ratelimit.NoLimit(), logger.Nop())
}

func (s *RouterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RouterTestSuite) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (s *RouterTestSuite) TestAddCartItem() {
	s.carts.EXPECT().AddItem(gomock.Any(), "c1", "p1", 2).Return(&model.Cart{
		CustomerID: "c1",
		Items:      []model.CartItem{{ProductID: "p1", Quantity: 2}},
	}, nil)

	rec, env := s.do(http.MethodPost, "/api/v1/customers/c1/cart/items", `{"product_id":"p1","quantity":2}`)

	s.Equal(http.StatusOK, rec.Code)
	var cart model.Cart
	s.Require().NoError(json.Unmarshal(env.Data, &cart))
	s.Equal(2, cart.Items[0].Quantity)
}

func (s *RouterTestSuite) TestAddCartItemValidation() {
	rec, env := s.do(http.MethodPost, "/api/v1/customers/c1/cart/items", `{"product_id":"p1","quantity":0}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(string(env.Data), "Quantity")
}

func (s *RouterTestSuite) TestMalformedBody() {
	rec, _ := s.do(http.MethodPost, "/api/v1/wallets/w1/funds", `{"amount":`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestRemoveCartItem() {
	s.carts.EXPECT().RemoveItem(gomock.Any(), "c1", "p1").Return(&model.Cart{CustomerID: "c1"}, nil)

	rec, _ := s.do(http.MethodDelete, "/api/v1/customers/c1/cart/items/p1", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestDecreaseCartItem() {
	s.carts.EXPECT().DecreaseItem(gomock.Any(), "c1", "p1", 1).Return(&model.Cart{
		CustomerID: "c1",
		Items:      []model.CartItem{{ProductID: "p1", Quantity: 1}},
	}, nil)
	s.carts.EXPECT().DecreaseItem(gomock.Any(), "c1", "p1", 9).
		Return(nil, fmt.Errorf("%w: product p1", app_err.ErrCartItemQuantity))

	rec, _ := s.do(http.MethodPost, "/api/v1/customers/c1/cart/items/p1/decrease", `{"quantity":1}`)
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/customers/c1/cart/items/p1/decrease", `{"quantity":9}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestClearCart() {
	s.carts.EXPECT().ClearCart(gomock.Any(), "c1").Return(nil)

	rec, _ := s.do(http.MethodDelete, "/api/v1/customers/c1/cart", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestPlaceOrder() {
	s.assembler.EXPECT().PlaceOrder(gomock.Any(), "c1").Return(&model.Order{
		OrderID:     "o1",
		CustomerID:  "c1",
		TotalAmount: decimal.NewFromInt(50),
		Status:      model.OrderStatusPending,
	}, nil)

	rec, env := s.do(http.MethodPost, "/api/v1/customers/c1/orders", "")

	s.Equal(http.StatusCreated, rec.Code)
	var order model.Order
	s.Require().NoError(json.Unmarshal(env.Data, &order))
	s.Equal("o1", order.OrderID)
	s.True(order.TotalAmount.Equal(decimal.NewFromInt(50)))
}

func (s *RouterTestSuite) TestPlaceOrderErrors() {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"insufficient stock names product", app_err.NewStockError("p-9", 4), http.StatusConflict, "p-9"},
		{"empty cart", app_err.ErrEmptyCart, http.StatusBadRequest, "cart is empty"},
		{"infrastructure", app_err.ErrConcurrentAggregateConflict, http.StatusServiceUnavailable, "Service Unavailable"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.assembler.EXPECT().PlaceOrder(gomock.Any(), "c1").Return(nil, tc.err)

			rec, env := s.do(http.MethodPost, "/api/v1/customers/c1/orders", "")

			s.Equal(tc.status, rec.Code)
			s.Contains(env.Message, tc.message)
		})
	}
}

func (s *RouterTestSuite) TestGetOrderNotFound() {
	s.query.EXPECT().GetOrder(gomock.Any(), "missing").Return(nil, app_err.ErrOrderNotFound)

	rec, _ := s.do(http.MethodGet, "/api/v1/orders/missing", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestCancelOrder() {
	s.fulfillment.EXPECT().CancelOrder(gomock.Any(), "o1", "c1").Return(&model.Order{
		OrderID: "o1",
		Status:  model.OrderStatusCancelled,
	}, nil)

	rec, _ := s.do(http.MethodPost, "/api/v1/orders/o1/cancel", `{"customer_id":"c1"}`)
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/orders/o1/cancel", `{}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestMarkDeliveredInvalidTransition() {
	s.fulfillment.EXPECT().MarkDelivered(gomock.Any(), "o1").Return(nil, app_err.ErrInvalidTransition)

	rec, _ := s.do(http.MethodPost, "/api/v1/orders/o1/deliver", "")
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *RouterTestSuite) TestSellerResolveItem() {
	s.fulfillment.EXPECT().ApproveItem(gomock.Any(), "item-1", "seller-1").Return(&model.OrderItem{
		OrderItemID: "item-1",
		Status:      model.OrderItemStatusApproved,
	}, nil)
	s.fulfillment.EXPECT().RejectItem(gomock.Any(), "item-2", "seller-2").Return(nil, app_err.ErrNotOwner)
	s.fulfillment.EXPECT().ApproveItem(gomock.Any(), "item-1", "seller-1").Return(nil, app_err.ErrAlreadyResolved)

	rec, _ := s.do(http.MethodPost, "/api/v1/sellers/seller-1/order-items/item-1/approve", "")
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/sellers/seller-2/order-items/item-2/reject", "")
	s.Equal(http.StatusForbidden, rec.Code)

	rec, env := s.do(http.MethodPost, "/api/v1/sellers/seller-1/order-items/item-1/approve", "")
	s.Equal(http.StatusConflict, rec.Code)
	s.Contains(env.Message, "already resolved")
}

func (s *RouterTestSuite) TestListSellerOrders() {
	s.query.EXPECT().ListOrdersBySeller(gomock.Any(), "seller-1").Return([]model.Order{{OrderID: "o1"}}, nil)

	rec, env := s.do(http.MethodGet, "/api/v1/sellers/seller-1/orders", "")

	s.Equal(http.StatusOK, rec.Code)
	var orders []model.Order
	s.Require().NoError(json.Unmarshal(env.Data, &orders))
	s.Len(orders, 1)
}

func (s *RouterTestSuite) TestWalletFlow() {
	s.ledger.EXPECT().OpenWallet(gomock.Any(), "c1").Return(&model.Wallet{WalletID: "w1", CustomerID: "c1"}, nil)
	s.ledger.EXPECT().AddFunds(gomock.Any(), "w1", decimalEq("25.5"), "salary").Return(&model.WalletTransaction{
		WalletID:     "w1",
		Type:         model.TransactionTypeCredit,
		Amount:       decimal.RequireFromString("25.5"),
		BalanceAfter: decimal.RequireFromString("25.5"),
	}, nil)
	s.ledger.EXPECT().Pay(gomock.Any(), "w1", decimalEq("100"), "gift").Return(nil, app_err.ErrInsufficientFunds)

	rec, _ := s.do(http.MethodPost, "/api/v1/customers/c1/wallet", "")
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/wallets/w1/funds", `{"amount":"25.5","description":"salary"}`)
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/wallets/w1/payments", `{"amount":"100","description":"gift"}`)
	s.Equal(http.StatusConflict, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/wallets/w1/funds", `{"amount":"-1"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestAddFundsSubCentRejected() {
	s.ledger.EXPECT().AddFunds(gomock.Any(), "w1", decimalEq("0.001"), "").
		Return(nil, fmt.Errorf("%w: 0.001", app_err.ErrInvalidAmount))

	rec, _ := s.do(http.MethodPost, "/api/v1/wallets/w1/funds", `{"amount":"0.001"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestWalletNotFound() {
	s.ledger.EXPECT().GetWallet(gomock.Any(), "nope").Return(nil, app_err.ErrWalletNotFound)
	s.ledger.EXPECT().ListTransactions(gomock.Any(), "nope").Return(nil, app_err.ErrWalletNotFound)

	rec, _ := s.do(http.MethodGet, "/api/v1/wallets/nope", "")
	s.Equal(http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/v1/wallets/nope/transactions", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestRateLimited() {
	r := SetupRouter(s.server, denyAll{}, logger.Nop())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/customers/c1/cart", nil))
	s.Equal(http.StatusTooManyRequests, rec.Code)

	// 健康檢查不受限流
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	s.Equal(http.StatusOK, rec.Code)
}
