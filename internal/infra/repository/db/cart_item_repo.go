package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
)

const (
	columnOrderID   = "order_id"
	columnProductID = "product_id"
)

type CartItemRepo struct {
	items *GormCollection[model.CartItem]
}

func NewCartItemRepo(db *DbDao) *CartItemRepo {
	return &CartItemRepo{items: NewGormCollection[model.CartItem](db)}
}

func (c *CartItemRepo) CreateCartItem(ctx context.Context, item *model.CartItem) error {
	return c.items.Insert(ctx, item)
}

func (c *CartItemRepo) UpdateCartItem(ctx context.Context, item *model.CartItem) error {
	return c.items.Save(ctx, item)
}

func (c *CartItemRepo) GetAllCartItems(ctx context.Context) ([]model.CartItem, error) {
	return c.items.FindAll(ctx)
}

// Read - 同一訂單同一商品的項目, 正常情況 0 或 1 筆
func (c *CartItemRepo) GetCartItemsByOrderAndProduct(ctx context.Context, orderID, productID string) ([]model.CartItem, error) {
	return c.items.FindBy(ctx, map[string]any{columnOrderID: orderID, columnProductID: productID})
}

func (c *CartItemRepo) GetCartItemsByOrderID(ctx context.Context, orderID string) ([]model.CartItem, error) {
	return c.items.FindBy(ctx, map[string]any{columnOrderID: orderID})
}

func (c *CartItemRepo) DeleteCartItem(ctx context.Context, id string) error {
	_, err := c.items.DeleteByID(ctx, id)
	return err
}

func (c *CartItemRepo) DeleteCartItemsByOrderAndProduct(ctx context.Context, orderID, productID string) (int64, error) {
	return c.items.DeleteBy(ctx, map[string]any{columnOrderID: orderID, columnProductID: productID})
}

func (c *CartItemRepo) DeleteCartItemsByOrderID(ctx context.Context, orderID string) (int64, error) {
	return c.items.DeleteBy(ctx, map[string]any{columnOrderID: orderID})
}

func (c *CartItemRepo) DeleteCartItemsByProductID(ctx context.Context, productID string) (int64, error) {
	return c.items.DeleteBy(ctx, map[string]any{columnProductID: productID})
}
