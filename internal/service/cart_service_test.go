package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/producer"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type CartServiceTestSuite struct {
	suite.Suite
	fx      *serviceFixture
	user    *model.User
	product *model.Product
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.fx = newServiceFixture(suite.T(), producer.NoopOrderEventProducer{})
	ctx := context.Background()

	var err error
	suite.user, err = suite.fx.userService.Create(ctx, "alice")
	require.NoError(suite.T(), err)
	suite.product, err = suite.fx.productService.Create(ctx, "book", 10)
	require.NoError(suite.T(), err)
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func (suite *CartServiceTestSuite) activeOrder() *model.Order {
	order, err := suite.fx.orderService.RetrieveActiveByUser(context.Background(), suite.user.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), order)
	return order
}

func (suite *CartServiceTestSuite) itemsOfProduct() []model.CartItem {
	items, err := suite.fx.store.GetCartItemsByOrderAndProduct(context.Background(), suite.activeOrder().ID, suite.product.ID)
	require.NoError(suite.T(), err)
	return items
}

func (suite *CartServiceTestSuite) TestUpsert_InsertThenAccumulate() {
	ctx := context.Background()

	item, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 3)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), int64(3), item.Quantity)
	require.Equal(suite.T(), suite.activeOrder().ID, item.OrderID)

	again, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 2)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), item.ID, again.ID)
	require.Equal(suite.T(), int64(5), again.Quantity)
	require.Len(suite.T(), suite.itemsOfProduct(), 1)
}

func (suite *CartServiceTestSuite) TestUpsert_ZeroQuantityDeletes() {
	ctx := context.Background()
	_, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 3)
	require.NoError(suite.T(), err)

	for i := 0; i < 2; i++ {
		item, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 0)
		require.NoError(suite.T(), err)
		require.Nil(suite.T(), item)
		require.Empty(suite.T(), suite.itemsOfProduct())
	}
}

// 併發留下的重複項目, 下一次 upsert 會合併成一筆
func (suite *CartServiceTestSuite) TestUpsert_MergesDuplicates() {
	ctx := context.Background()
	orderID := suite.activeOrder().ID
	for _, q := range []int64{2, 3} {
		require.NoError(suite.T(), suite.fx.store.CreateCartItem(ctx, &model.CartItem{OrderID: orderID, ProductID: suite.product.ID, Quantity: q}))
	}
	require.Len(suite.T(), suite.itemsOfProduct(), 2)

	item, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 5)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), int64(10), item.Quantity)

	items := suite.itemsOfProduct()
	require.Len(suite.T(), items, 1)
	require.Equal(suite.T(), int64(10), items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestUpsert_MissingProductOrUser() {
	ctx := context.Background()

	item, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, "missing", suite.user.ID, 1)
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), item)

	item, err = suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, "missing", 1)
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), item)

	all, err := suite.fx.cartService.ListAll(ctx)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), all)
}

func (suite *CartServiceTestSuite) TestDeleteProductOfActiveOrder() {
	ctx := context.Background()
	pen, err := suite.fx.productService.Create(ctx, "pen", 2)
	require.NoError(suite.T(), err)

	_, err = suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 1)
	require.NoError(suite.T(), err)
	_, err = suite.fx.cartService.UpsertProductToActiveOrder(ctx, pen.ID, suite.user.ID, 1)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.fx.cartService.DeleteProductOfActiveOrder(ctx, suite.product.ID, suite.user.ID))
	require.NoError(suite.T(), suite.fx.cartService.DeleteProductOfActiveOrder(ctx, "missing", suite.user.ID))
	require.NoError(suite.T(), suite.fx.cartService.DeleteProductOfActiveOrder(ctx, pen.ID, "missing"))

	items, err := suite.fx.cartService.RetrieveItemsOfActiveOrder(ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), items, 1)
	require.Equal(suite.T(), pen.ID, items[0].ProductID)

	missing, err := suite.fx.cartService.RetrieveItemsOfActiveOrder(ctx, "missing")
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), missing)
}

func (suite *CartServiceTestSuite) TestDeleteByOrderAndProduct() {
	ctx := context.Background()
	_, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 1)
	require.NoError(suite.T(), err)
	order := suite.activeOrder()

	require.NoError(suite.T(), suite.fx.cartService.DeleteByOrder(ctx, order.ID))
	items, err := suite.fx.cartService.RetrieveItemsOfOrder(ctx, order.ID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), items)

	_, err = suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 1)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.fx.cartService.DeleteByProduct(ctx, suite.product.ID))
	require.Empty(suite.T(), suite.itemsOfProduct())
}

func (suite *CartServiceTestSuite) TestCalculateCart() {
	ctx := context.Background()
	pen, err := suite.fx.productService.Create(ctx, "pen", 3)
	require.NoError(suite.T(), err)

	_, err = suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 2)
	require.NoError(suite.T(), err)
	_, err = suite.fx.cartService.UpsertProductToActiveOrder(ctx, pen.ID, suite.user.ID, 4)
	require.NoError(suite.T(), err)

	summary, err := suite.fx.cartService.CalculateCart(ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), summary.Items, 2)
	require.Equal(suite.T(), int64(2*10+4*3), summary.TotalPrice)
	for _, line := range summary.Items {
		require.NotNil(suite.T(), line.Product)
		require.Equal(suite.T(), line.ProductID, line.Product.ID)
		if line.ProductID == pen.ID {
			require.Equal(suite.T(), int64(3), line.Product.UnitPrice)
		} else {
			require.Equal(suite.T(), "book", line.Product.Type)
		}
	}

	missing, err := suite.fx.cartService.CalculateCart(ctx, "missing")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), missing)
	require.Empty(suite.T(), missing.Items)
	require.Equal(suite.T(), int64(0), missing.TotalPrice)
}

// 商品被刪除的明細保留, 但不計價
func (suite *CartServiceTestSuite) TestCalculateCart_MissingProductLine() {
	ctx := context.Background()
	order := suite.activeOrder()
	require.NoError(suite.T(), suite.fx.store.CreateCartItem(ctx, &model.CartItem{OrderID: order.ID, ProductID: "gone", Quantity: 5}))
	_, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 1)
	require.NoError(suite.T(), err)

	summary, err := suite.fx.cartService.CalculateCart(ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), summary.Items, 2)
	for _, line := range summary.Items {
		if line.ProductID == "gone" {
			require.Nil(suite.T(), line.Product)
		} else {
			require.NotNil(suite.T(), line.Product)
		}
	}
	require.Equal(suite.T(), int64(10), summary.TotalPrice)
}

func (suite *CartServiceTestSuite) TestRemoveProductOfActiveOrder() {
	ctx := context.Background()
	_, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 2)
	require.NoError(suite.T(), err)

	removed, err := suite.fx.cartService.RemoveProductOfActiveOrder(ctx, "missing", suite.user.ID)
	require.NoError(suite.T(), err)
	require.False(suite.T(), removed)

	removed, err = suite.fx.cartService.RemoveProductOfActiveOrder(ctx, suite.product.ID, "missing")
	require.NoError(suite.T(), err)
	require.False(suite.T(), removed)
	require.Len(suite.T(), suite.itemsOfProduct(), 1)

	removed, err = suite.fx.cartService.RemoveProductOfActiveOrder(ctx, suite.product.ID, suite.user.ID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), removed)
	require.Empty(suite.T(), suite.itemsOfProduct())

	// 沒有項目也算成功
	removed, err = suite.fx.cartService.RemoveProductOfActiveOrder(ctx, suite.product.ID, suite.user.ID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), removed)
}

// alice: 加入 3 本 + 2 本, 總價 50, 付款後成為歷史訂單, 再查詢得到新的 active order
func (suite *CartServiceTestSuite) TestCheckoutFlow() {
	ctx := context.Background()
	o1 := suite.activeOrder()

	_, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 3)
	require.NoError(suite.T(), err)
	_, err = suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 2)
	require.NoError(suite.T(), err)

	summary, err := suite.fx.cartService.CalculateCart(ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), summary.Items, 1)
	require.Equal(suite.T(), int64(5), summary.Items[0].Quantity)
	require.Equal(suite.T(), int64(50), summary.TotalPrice)

	paid, err := suite.fx.orderService.PayOrder(ctx, o1.ID, true)
	require.NoError(suite.T(), err)
	require.True(suite.T(), paid.IsPaid)

	history, err := suite.fx.orderService.RetrievePaidByUser(ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), history, 1)
	require.Equal(suite.T(), o1.ID, history[0].ID)

	o2 := suite.activeOrder()
	require.NotEqual(suite.T(), o1.ID, o2.ID)
	require.False(suite.T(), o2.IsPaid)

	items, err := suite.fx.cartService.RetrieveItemsOfActiveOrder(ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), items)
}

// 併發 upsert 可能遺失累加或產生重複項目, 下一次 upsert 之後只會剩一筆
func (suite *CartServiceTestSuite) TestConcurrentUpsertSelfHeals() {
	ctx := context.Background()
	suite.activeOrder()

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 1)
			return err
		})
	}
	require.NoError(suite.T(), g.Wait())

	item, err := suite.fx.cartService.UpsertProductToActiveOrder(ctx, suite.product.ID, suite.user.ID, 1)
	require.NoError(suite.T(), err)
	require.GreaterOrEqual(suite.T(), item.Quantity, int64(2))
	require.Len(suite.T(), suite.itemsOfProduct(), 1)
}
