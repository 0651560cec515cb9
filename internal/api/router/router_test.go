package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/shopcart/internal/api"
	"github.com/RoyceAzure/lab/shopcart/internal/api/handler"
	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/metrics"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RouterTestSuite struct {
	suite.Suite
	store   db.UnifiedDB
	handler http.Handler
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	conn, err := db.GetSqliteConn(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	s.Require().NoError(err)
	s.store = db.NewUnifiedDB(conn)
	s.Require().NoError(s.store.InitMigrate())

	productService := service.NewProductService(s.store, s.store)
	orderService := service.NewOrderService(s.store, s.store, s.store, s.store, nil)
	userService := service.NewUserService(s.store, orderService)
	cartService := service.NewCartService(productService, orderService, s.store)

	server := api.NewServer(
		handler.NewProductHandler(productService),
		handler.NewUserHandler(userService),
		handler.NewOrderHandler(orderService),
		handler.NewCartItemHandler(cartService),
	)
	logger := zerolog.Nop()
	s.handler = SetupRouter(server, &logger, metrics.NewServerMetrics("test"), nil)
}

func (s *RouterTestSuite) TearDownTest() {
	s.store.Close()
}

func (s *RouterTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (s *RouterTestSuite) createUser(name string) model.User {
	rec := s.do(http.MethodPost, "/user", map[string]any{"name": name})
	s.Require().Equal(http.StatusOK, rec.Code)
	return decode[model.User](s.T(), rec)
}

func (s *RouterTestSuite) createProduct(typ string, price int64) model.Product {
	rec := s.do(http.MethodPost, "/product", map[string]any{"type": typ, "unitPrice": price})
	s.Require().Equal(http.StatusOK, rec.Code)
	return decode[model.Product](s.T(), rec)
}

func (s *RouterTestSuite) TestCheckoutFlow() {
	alice := s.createUser("Alice")
	s.Require().NotEmpty(alice.ID)

	rec := s.do(http.MethodGet, "/order/"+alice.ID, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	o1 := decode[model.Order](s.T(), rec)
	s.Require().False(o1.IsPaid)
	s.Require().Equal(alice.ID, o1.UserID)

	widget := s.createProduct("widget", 10)

	rec = s.do(http.MethodPost, "/cartItem/"+alice.ID, map[string]any{"productId": widget.ID, "quantity": 3})
	s.Require().Equal(http.StatusOK, rec.Code)
	rec = s.do(http.MethodPost, "/cartItem/"+alice.ID, map[string]any{"productId": widget.ID, "quantity": 2})
	s.Require().Equal(http.StatusOK, rec.Code)
	item := decode[model.CartItem](s.T(), rec)
	s.Require().Equal(int64(5), item.Quantity)
	s.Require().Equal(o1.ID, item.OrderID)

	rec = s.do(http.MethodGet, "/cartItem/"+alice.ID, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	summary := decode[model.CartSummary](s.T(), rec)
	s.Require().Len(summary.Items, 1)
	s.Require().Equal(int64(50), summary.TotalPrice)
	s.Require().Equal(int64(5), summary.Items[0].Quantity)
	s.Require().NotNil(summary.Items[0].Product)
	s.Require().Equal(widget.ID, summary.Items[0].Product.ID)
	s.Require().Equal("widget", summary.Items[0].Product.Type)
	s.Require().Equal(int64(10), summary.Items[0].Product.UnitPrice)

	rec = s.do(http.MethodPut, "/order", map[string]any{"orderId": o1.ID, "isPaid": true})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().True(decode[model.Order](s.T(), rec).IsPaid)

	rec = s.do(http.MethodGet, "/order/"+alice.ID+"/history", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	history := decode[[]model.Order](s.T(), rec)
	s.Require().Len(history, 1)
	s.Require().Equal(o1.ID, history[0].ID)

	rec = s.do(http.MethodGet, "/order/"+alice.ID, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	o2 := decode[model.Order](s.T(), rec)
	s.Require().NotEqual(o1.ID, o2.ID)
	s.Require().False(o2.IsPaid)

	// 已付款訂單不能再轉換
	rec = s.do(http.MethodPut, "/order", map[string]any{"orderId": o1.ID, "isPaid": false})
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestProductCRUD() {
	p := s.createProduct("book", 120)

	rec := s.do(http.MethodGet, "/product/"+p.ID, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Equal(int64(120), decode[model.Product](s.T(), rec).UnitPrice)

	rec = s.do(http.MethodPut, "/product", map[string]any{"id": p.ID, "type": "ebook", "unitPrice": 80})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Equal("ebook", decode[model.Product](s.T(), rec).Type)

	rec = s.do(http.MethodGet, "/product", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Len(decode[[]model.Product](s.T(), rec), 1)

	rec = s.do(http.MethodDelete, "/product/"+p.ID, nil)
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/product/"+p.ID, nil)
	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Require().JSONEq(`{"error":"not found"}`, rec.Body.String())

	// 刪除不存在的也回 204
	rec = s.do(http.MethodDelete, "/product/"+p.ID, nil)
	s.Require().Equal(http.StatusNoContent, rec.Code)
}

func (s *RouterTestSuite) TestUserDeleteCascade() {
	bob := s.createUser("Bob")
	pen := s.createProduct("pen", 3)
	rec := s.do(http.MethodPost, "/cartItem/"+bob.ID, map[string]any{"productId": pen.ID, "quantity": 4})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/user/"+bob.ID, nil)
	s.Require().Equal(http.StatusNoContent, rec.Code)

	s.Require().Equal(http.StatusNotFound, s.do(http.MethodGet, "/user/"+bob.ID, nil).Code)
	s.Require().Empty(decode[[]model.Order](s.T(), s.do(http.MethodGet, "/order", nil)))
	s.Require().Empty(decode[[]model.CartItem](s.T(), s.do(http.MethodGet, "/cartItem", nil)))
}

func (s *RouterTestSuite) TestCartItemRemove() {
	carol := s.createUser("Carol")
	cup := s.createProduct("cup", 7)

	rec := s.do(http.MethodPost, "/cartItem/"+carol.ID, map[string]any{"productId": cup.ID, "quantity": 1})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/cartItem/"+carol.ID, map[string]any{"productId": cup.ID, "quantity": 0})
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodPost, "/cartItem/"+carol.ID, map[string]any{"productId": cup.ID, "quantity": 2})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/cartItem/"+carol.ID, map[string]any{"productId": cup.ID})
	s.Require().Equal(http.StatusNoContent, rec.Code)

	summary := decode[model.CartSummary](s.T(), s.do(http.MethodGet, "/cartItem/"+carol.ID, nil))
	s.Require().Empty(summary.Items)
	s.Require().Equal(int64(0), summary.TotalPrice)
}

func (s *RouterTestSuite) TestNotFound() {
	missing := uuid.NewString()
	s.Require().Equal(http.StatusNotFound, s.do(http.MethodGet, "/user/"+missing, nil).Code)
	s.Require().Equal(http.StatusNotFound, s.do(http.MethodGet, "/order/"+missing, nil).Code)
	s.Require().Equal(http.StatusNotFound,
		s.do(http.MethodPut, "/user", map[string]any{"id": missing, "name": "x"}).Code)
	s.Require().Equal(http.StatusNotFound,
		s.do(http.MethodPost, "/order", map[string]any{"userId": missing}).Code)

	// 使用者存在但商品不存在
	dave := s.createUser("Dave")
	s.Require().Equal(http.StatusNotFound,
		s.do(http.MethodPost, "/cartItem/"+dave.ID, map[string]any{"productId": missing, "quantity": 1}).Code)

	// quantity 0 但商品或使用者不存在
	s.Require().Equal(http.StatusNotFound,
		s.do(http.MethodPost, "/cartItem/"+dave.ID, map[string]any{"productId": missing, "quantity": 0}).Code)
	cup := s.createProduct("cup", 7)
	s.Require().Equal(http.StatusNotFound,
		s.do(http.MethodPost, "/cartItem/"+missing, map[string]any{"productId": cup.ID, "quantity": 0}).Code)

	// 已有 active order 不能再建立
	s.Require().Equal(http.StatusNotFound,
		s.do(http.MethodPost, "/order", map[string]any{"id": dave.ID}).Code)

	// paid history 對不存在的使用者回空陣列
	rec := s.do(http.MethodGet, "/order/"+missing+"/history", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Empty(decode[[]model.Order](s.T(), rec))
}

func (s *RouterTestSuite) TestCartOfUnknownUserIsEmpty() {
	rec := s.do(http.MethodGet, "/cartItem/"+uuid.NewString(), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"items":[],"totalPrice":0}`, rec.Body.String())
}

func (s *RouterTestSuite) TestCartLineJSON() {
	eve := s.createUser("Eve")
	lamp := s.createProduct("lamp", 40)
	rec := s.do(http.MethodPost, "/cartItem/"+eve.ID, map[string]any{"productId": lamp.ID, "quantity": 2})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/cartItem/"+eve.ID, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var raw struct {
		Items []map[string]any `json:"items"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &raw))
	s.Require().Len(raw.Items, 1)
	s.Require().Equal(lamp.ID, raw.Items[0]["productId"])
	product, ok := raw.Items[0]["product"].(map[string]any)
	s.Require().True(ok)
	s.Require().Equal("lamp", product["type"])
	s.Require().Equal(float64(40), product["unitPrice"])
}

func (s *RouterTestSuite) TestBadRequest() {
	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/product", "{not json"},
		{http.MethodPost, "/user", nil},
		{http.MethodPut, "/product", map[string]any{"type": "no id"}},
		{http.MethodPut, "/order", map[string]any{"orderId": "o"}},
		{http.MethodPost, "/order", map[string]any{}},
		{http.MethodDelete, "/cartItem/u", map[string]any{}},
	}
	for _, c := range cases {
		rec := s.do(c.method, c.path, c.body)
		s.Require().Equal(http.StatusBadRequest, rec.Code, "%s %s", c.method, c.path)
		s.Require().JSONEq(`{"error":"bad request"}`, rec.Body.String())
	}
}

func (s *RouterTestSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/health", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	s.do(http.MethodGet, "/product", nil)
	rec = s.do(http.MethodGet, "/metrics", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), "shopcart_test_http_requests_total")
}

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context) bool { return false }
func (denyLimiter) Stop()                         {}

func TestRouterRateLimited(t *testing.T) {
	conn, err := db.GetSqliteConn(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	store := db.NewUnifiedDB(conn)
	require.NoError(t, store.InitMigrate())
	defer store.Close()

	productService := service.NewProductService(store, store)
	orderService := service.NewOrderService(store, store, store, store, nil)
	server := api.NewServer(
		handler.NewProductHandler(productService),
		handler.NewUserHandler(service.NewUserService(store, orderService)),
		handler.NewOrderHandler(orderService),
		handler.NewCartItemHandler(service.NewCartService(productService, orderService, store)),
	)
	r := SetupRouter(server, nil, nil, denyLimiter{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
