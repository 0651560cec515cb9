package service

import (
	"fmt"
	"testing"

	"github.com/RoyceAzure/lab/shopcart/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	store          db.UnifiedDB
	productService *ProductService
	orderService   *OrderService
	userService    *UserService
	cartService    *CartService
}

// 每個測試一個 in-memory sqlite
func newServiceFixture(t *testing.T, eventProducer producer.IOrderEventProducer) *serviceFixture {
	t.Helper()
	conn, err := db.GetSqliteConn(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)

	store := db.NewUnifiedDB(conn)
	require.NoError(t, store.InitMigrate())
	t.Cleanup(func() {
		store.Close()
	})

	productService := NewProductService(store, store)
	orderService := NewOrderService(store, store, store, store, eventProducer)
	return &serviceFixture{
		store:          store,
		productService: productService,
		orderService:   orderService,
		userService:    NewUserService(store, orderService),
		cartService:    NewCartService(productService, orderService, store),
	}
}
