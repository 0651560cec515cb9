package service

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
)

type ICartService interface {
	UpsertProductToActiveOrder(ctx context.Context, productID, userID string, quantity int64) (*model.CartItem, error)
	RetrieveItemsOfActiveOrder(ctx context.Context, userID string) ([]model.CartItem, error)
	RetrieveItemsOfOrder(ctx context.Context, orderID string) ([]model.CartItem, error)
	RemoveProductOfActiveOrder(ctx context.Context, productID, userID string) (bool, error)
	DeleteProductOfActiveOrder(ctx context.Context, productID, userID string) error
	DeleteByOrder(ctx context.Context, orderID string) error
	DeleteByProduct(ctx context.Context, productID string) error
	CalculateCart(ctx context.Context, userID string) (*model.CartSummary, error)
	ListAll(ctx context.Context) ([]model.CartItem, error)
}

type CartService struct {
	productService IProductService
	orderService   IOrderService
	cartItemRepo   db.ICartItemRepository
}

func NewCartService(productService IProductService, orderService IOrderService, cartItemRepo db.ICartItemRepository) *CartService {
	mustNotNil("productService", productService)
	mustNotNil("orderService", orderService)
	mustNotNil("cartItemRepo", cartItemRepo)
	return &CartService{
		productService: productService,
		orderService:   orderService,
		cartItemRepo:   cartItemRepo,
	}
}

// resolve 取得商品與使用者的 active order, 任一不存在回傳 nil
// active order 不存在時會被建立
func (c *CartService) resolve(ctx context.Context, productID, userID string) (*model.Product, *model.Order, error) {
	product, err := c.productService.Retrieve(ctx, productID)
	if err != nil || product == nil {
		return nil, nil, err
	}
	order, err := c.orderService.RetrieveActiveByUser(ctx, userID)
	if err != nil || order == nil {
		return nil, nil, err
	}
	return product, order, nil
}

/*
UpsertProductToActiveOrder 把商品加到使用者的 active order
  - quantity 為 0: 刪除該商品的項目, 回傳 nil
  - 沒有項目: 新增一筆
  - 一筆: 數量累加
  - 多筆(併發造成): 全部數量加總後刪除, 重新寫入單一筆
*/
func (c *CartService) UpsertProductToActiveOrder(ctx context.Context, productID, userID string, quantity int64) (*model.CartItem, error) {
	if quantity == 0 {
		_, err := c.RemoveProductOfActiveOrder(ctx, productID, userID)
		return nil, err
	}

	product, order, err := c.resolve(ctx, productID, userID)
	if err != nil || product == nil {
		return nil, err
	}

	items, err := c.cartItemRepo.GetCartItemsByOrderAndProduct(ctx, order.ID, product.ID)
	if err != nil {
		return nil, fmt.Errorf("get cart items of order %s product %s: %w", order.ID, product.ID, err)
	}

	switch len(items) {
	case 0:
		return c.insertItem(ctx, order.ID, product.ID, quantity)
	case 1:
		item := items[0]
		item.Quantity += quantity
		if err := c.cartItemRepo.UpdateCartItem(ctx, &item); err != nil {
			return nil, fmt.Errorf("update cart item %s: %w", item.ID, err)
		}
		return &item, nil
	default:
		total := quantity
		for _, item := range items {
			total += item.Quantity
		}
		for _, item := range items {
			if err := c.cartItemRepo.DeleteCartItem(ctx, item.ID); err != nil {
				return nil, fmt.Errorf("delete duplicated cart item %s: %w", item.ID, err)
			}
		}
		return c.insertItem(ctx, order.ID, product.ID, total)
	}
}

func (c *CartService) insertItem(ctx context.Context, orderID, productID string, quantity int64) (*model.CartItem, error) {
	item := &model.CartItem{OrderID: orderID, ProductID: productID, Quantity: quantity}
	if err := c.cartItemRepo.CreateCartItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create cart item: %w", err)
	}
	return item, nil
}

// RetrieveItemsOfActiveOrder 使用者不存在回傳空列表
func (c *CartService) RetrieveItemsOfActiveOrder(ctx context.Context, userID string) ([]model.CartItem, error) {
	order, err := c.orderService.RetrieveActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return []model.CartItem{}, nil
	}
	return c.RetrieveItemsOfOrder(ctx, order.ID)
}

func (c *CartService) RetrieveItemsOfOrder(ctx context.Context, orderID string) ([]model.CartItem, error) {
	items, err := c.cartItemRepo.GetCartItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get cart items of order %s: %w", orderID, err)
	}
	return items, nil
}

// RemoveProductOfActiveOrder 刪除 active order 中該商品的項目
// 商品或使用者不存在時回傳 false
func (c *CartService) RemoveProductOfActiveOrder(ctx context.Context, productID, userID string) (bool, error) {
	product, order, err := c.resolve(ctx, productID, userID)
	if err != nil || product == nil {
		return false, err
	}
	if _, err := c.cartItemRepo.DeleteCartItemsByOrderAndProduct(ctx, order.ID, product.ID); err != nil {
		return false, fmt.Errorf("delete cart items of order %s product %s: %w", order.ID, product.ID, err)
	}
	return true, nil
}

// DeleteProductOfActiveOrder 商品或使用者不存在時不做任何事
func (c *CartService) DeleteProductOfActiveOrder(ctx context.Context, productID, userID string) error {
	_, err := c.RemoveProductOfActiveOrder(ctx, productID, userID)
	return err
}

func (c *CartService) DeleteByOrder(ctx context.Context, orderID string) error {
	if _, err := c.cartItemRepo.DeleteCartItemsByOrderID(ctx, orderID); err != nil {
		return fmt.Errorf("delete cart items of order %s: %w", orderID, err)
	}
	return nil
}

func (c *CartService) DeleteByProduct(ctx context.Context, productID string) error {
	if _, err := c.cartItemRepo.DeleteCartItemsByProductID(ctx, productID); err != nil {
		return fmt.Errorf("delete cart items of product %s: %w", productID, err)
	}
	return nil
}

// CalculateCart active order 的明細與總金額, 使用者不存在回傳空購物車
func (c *CartService) CalculateCart(ctx context.Context, userID string) (*model.CartSummary, error) {
	items, err := c.RetrieveItemsOfActiveOrder(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, total, err := buildCartLines(ctx, c.productService.Retrieve, items...)
	if err != nil {
		return nil, err
	}
	return &model.CartSummary{Items: lines, TotalPrice: total}, nil
}

func (c *CartService) ListAll(ctx context.Context) ([]model.CartItem, error) {
	items, err := c.cartItemRepo.GetAllCartItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

var _ ICartService = (*CartService)(nil)
