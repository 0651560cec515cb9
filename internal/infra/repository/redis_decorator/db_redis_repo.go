package redis_decorator

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog/log"
)

const retryDelay = 500 * time.Millisecond

/*
商品讀取走 cache aside
寫入一律先寫db, 再同步redis
redis 失敗只記log, db 仍是唯一真相來源
*/
type CacheAsideProductRepo struct {
	db.IProductRepository
	redis redis_repo.IProductRedisRepository
}

func NewCacheAsideProductRepo(db db.IProductRepository, redis redis_repo.IProductRedisRepository) db.IProductRepository {
	return &CacheAsideProductRepo{IProductRepository: db, redis: redis}
}

func (p *CacheAsideProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	product, err := p.redis.GetProduct(ctx, productID)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, redis_repo.ErrProductCacheMiss) {
		log.Warn().Err(err).Str("product_id", productID).Msg("read product cache failed")
	}

	product, err = p.IProductRepository.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := p.redis.SetProduct(ctx, product); err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("fill product cache failed")
	}
	return product, nil
}

func (p *CacheAsideProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	err := p.IProductRepository.UpdateProduct(ctx, product)
	if err != nil {
		return err
	}

	if err := p.redis.SetProduct(ctx, product); err != nil {
		log.Error().Err(err).Msgf("failed to refresh product cache %s", product.ID)
		p.evictLater(product.ID)
	}
	return nil
}

func (p *CacheAsideProductRepo) DeleteProduct(ctx context.Context, id string) error {
	err := p.IProductRepository.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := p.redis.DeleteProduct(ctx, id); err != nil {
		log.Error().Err(err).Msgf("failed to delete product cache %s", id)
		p.evictLater(id)
	}
	return nil
}

// 快取同步失敗時, 稍後再刪一次, 讓下次讀取回到db
func (p *CacheAsideProductRepo) evictLater(productID string) {
	go func() {
		time.Sleep(retryDelay)
		if err := p.redis.DeleteProduct(context.Background(), productID); err != nil {
			log.Error().Err(err).Msgf("retry evict product cache %s failed", productID)
		}
	}()
}
