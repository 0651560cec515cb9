package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

// IProductRedisRepository 定義 Redis 商品快取操作的介面
type IProductRedisRepository interface {
	// SetProduct 寫入商品快取
	SetProduct(ctx context.Context, product *model.Product) error

	// GetProduct 取得商品快取
	GetProduct(ctx context.Context, productID string) (*model.Product, error)

	// DeleteProduct 刪除商品快取
	DeleteProduct(ctx context.Context, productID string) error
}

var (
	ErrProductCacheMiss = errors.New("product cache miss")
)

/*
	結構:
	product:{商品ID} -> 商品 json, 帶 TTL
*/
type ProductRedisRepo struct {
	productCache *redis.Client
	ttl          time.Duration
}

func NewProductRedisRepo(productCache *redis.Client, ttl time.Duration) *ProductRedisRepo {
	return &ProductRedisRepo{productCache: productCache, ttl: ttl}
}

func generateProductKey(productID string) string {
	return fmt.Sprintf("product:%s", productID)
}

func (s *ProductRedisRepo) SetProduct(ctx context.Context, product *model.Product) error {
	value, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.productCache.Set(ctx, generateProductKey(product.ID), value, s.ttl).Err()
}

// 取得商品快取
// 錯誤:
//   - ErrProductCacheMiss: 快取不存在
func (s *ProductRedisRepo) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	value, err := s.productCache.Get(ctx, generateProductKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrProductCacheMiss
		}
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(value, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRedisRepo) DeleteProduct(ctx context.Context, productID string) error {
	return s.productCache.Del(ctx, generateProductKey(productID)).Err()
}

var _ IProductRedisRepository = (*ProductRedisRepo)(nil)
