package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
)

type ProductDBRepo struct {
	products *GormCollection[model.Product]
}

func NewProductDBRepo(db *DbDao) *ProductDBRepo {
	return &ProductDBRepo{products: NewGormCollection[model.Product](db)}
}

func (s *ProductDBRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.products.Insert(ctx, product)
}

func (s *ProductDBRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	return s.products.FindByID(ctx, productID)
}

func (s *ProductDBRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.products.FindAll(ctx)
}

// Update - 更新商品
func (s *ProductDBRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.products.Save(ctx, product)
}

// Delete - 硬刪除商品
func (s *ProductDBRepo) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.products.DeleteByID(ctx, id)
	return err
}
