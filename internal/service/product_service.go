package service

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
)

type IProductService interface {
	Create(ctx context.Context, productType string, unitPrice int64) (*model.Product, error)
	Retrieve(ctx context.Context, productID string) (*model.Product, error)
	Update(ctx context.Context, productID string, productType string, unitPrice int64) (*model.Product, error)
	Delete(ctx context.Context, productID string) error
	ListAll(ctx context.Context) ([]model.Product, error)
}

type ProductService struct {
	productRepo  db.IProductRepository
	cartItemRepo db.ICartItemRepository
}

func NewProductService(productRepo db.IProductRepository, cartItemRepo db.ICartItemRepository) *ProductService {
	mustNotNil("productRepo", productRepo)
	mustNotNil("cartItemRepo", cartItemRepo)
	return &ProductService{productRepo: productRepo, cartItemRepo: cartItemRepo}
}

func (p *ProductService) Create(ctx context.Context, productType string, unitPrice int64) (*model.Product, error) {
	product := &model.Product{Type: productType, UnitPrice: unitPrice}
	if err := p.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Retrieve 商品不存在回傳 nil
func (p *ProductService) Retrieve(ctx context.Context, productID string) (*model.Product, error) {
	product, err := p.productRepo.GetProductByID(ctx, productID)
	product, err = absentIfNotFound(product, err)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	return product, nil
}

// Update 覆寫 type 與 unitPrice, 商品不存在回傳 nil
func (p *ProductService) Update(ctx context.Context, productID string, productType string, unitPrice int64) (*model.Product, error) {
	product, err := p.Retrieve(ctx, productID)
	if err != nil || product == nil {
		return nil, err
	}

	product.Type = productType
	product.UnitPrice = unitPrice
	if err := p.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("update product %s: %w", productID, err)
	}
	return product, nil
}

// Delete 先刪除所有訂單中引用此商品的購物車項目, 再刪除商品
// 商品不存在時不做任何事
func (p *ProductService) Delete(ctx context.Context, productID string) error {
	product, err := p.Retrieve(ctx, productID)
	if err != nil || product == nil {
		return err
	}

	if _, err := p.cartItemRepo.DeleteCartItemsByProductID(ctx, productID); err != nil {
		return fmt.Errorf("delete cart items of product %s: %w", productID, err)
	}
	if err := p.productRepo.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("delete product %s: %w", productID, err)
	}
	return nil
}

func (p *ProductService) ListAll(ctx context.Context) ([]model.Product, error) {
	products, err := p.productRepo.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

var _ IProductService = (*ProductService)(nil)
