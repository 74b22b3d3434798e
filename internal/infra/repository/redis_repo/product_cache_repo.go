package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ProductCacheError error

var ErrCacheMiss ProductCacheError = errors.New("product not in cache")

const productCacheTTL = 10 * time.Minute

// IProductCacheRepository redis 商品讀取快取
// 只服務catalog瀏覽, 下單計價一律讀db
type IProductCacheRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

type ProductCacheRepo struct {
	productCache *redis.Client
}

func NewProductCacheRepo(productCache *redis.Client) *ProductCacheRepo {
	return &ProductCacheRepo{productCache: productCache}
}

func generateProductKey(productID uuid.UUID) string {
	return fmt.Sprintf("product:%s", productID)
}

// GetProduct 快取未命中回傳ErrCacheMiss, 由caller決定fallback
func (r *ProductCacheRepo) GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	raw, err := r.productCache.Get(ctx, generateProductKey(productID)).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product model.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		return nil, fmt.Errorf("invalid cached product %s: %w", productID, err)
	}
	return &product, nil
}

func (r *ProductCacheRepo) SetProduct(ctx context.Context, product *model.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	err = r.productCache.Set(ctx, generateProductKey(product.ID), raw, productCacheTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache product: %w", err)
	}
	return nil
}

// DeleteProduct 商品寫入後呼叫, 使快取失效
func (r *ProductCacheRepo) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	err := r.productCache.Del(ctx, generateProductKey(productID)).Err()
	if err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

var _ IProductCacheRepository = (*ProductCacheRepo)(nil)
