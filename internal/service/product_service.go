package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type IProductService interface {
	// CreateProduct 創建商品, 僅限管理員
	//
	// 錯誤:
	//   - er.InvalidArgumentCode 460: 名稱為空或價格為負
	//   - er.InternalErrorCode 500: 資料庫操作錯誤
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	// GetProduct 先讀快取, 未命中回源db並回填
	//
	// 錯誤:
	//   - er.NotFoundCode 404: 商品不存在
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	// DeleteProduct 刪除商品並使快取失效, 僅限管理員
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type ProductService struct {
	dbDao     db.UnifiedDB
	cacheRepo redis_repo.IProductCacheRepository
}

func NewProductService(dbDao db.UnifiedDB, cacheRepo redis_repo.IProductCacheRepository) *ProductService {
	return &ProductService{dbDao: dbDao, cacheRepo: cacheRepo}
}

func (p *ProductService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.Name == "" {
		return nil, er.New(er.InvalidArgumentCode, "product name is empty")
	}
	if product.Price.IsNegative() {
		return nil, er.New(er.InvalidArgumentCode, "product price cannot be negative")
	}

	product.ID = uuid.New()
	product.CreatedAt = time.Now().UTC()
	if err := p.dbDao.CreateProduct(ctx, product); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return product, nil
}

func (p *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if p.cacheRepo != nil {
		if cached, err := p.cacheRepo.GetProduct(ctx, id); err == nil {
			return cached, nil
		}
	}

	product, err := p.dbDao.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, ErrProductNotFound.Error())
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	if p.cacheRepo != nil {
		//回填快取, 失敗不影響讀取結果
		_ = p.cacheRepo.SetProduct(ctx, product)
	}
	return product, nil
}

func (p *ProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := p.dbDao.GetAllProducts(ctx)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	if p.cacheRepo != nil {
		//併發回填快取, 各商品互不相依
		g, gctx := errgroup.WithContext(ctx)
		for i := range products {
			product := products[i]
			g.Go(func() error {
				return p.cacheRepo.SetProduct(gctx, &product)
			})
		}
		//快取回填失敗不影響回應
		_ = g.Wait()
	}

	return products, nil
}

func (p *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := p.dbDao.DeleteProduct(ctx, id); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}

	if p.cacheRepo != nil {
		if err := p.cacheRepo.DeleteProduct(ctx, id); err != nil {
			// 快取失效失敗會殘留舊價格, 必須回報
			return er.New(er.InternalErrorCode, err.Error())
		}
	}
	return nil
}

var _ IProductService = (*ProductService)(nil)
