package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
)

type ProductRepo struct {
	dbDao *DbDao
}

func NewProductRepo(dbDao *DbDao) *ProductRepo {
	return &ProductRepo{dbDao: dbDao}
}

// Create - 創建商品
func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.dbDao.WithContext(ctx).Create(product).Error
}

// Read - 根據ID查詢商品
func (s *ProductRepo) GetProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := s.dbDao.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Read - 查詢所有商品
func (s *ProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.dbDao.WithContext(ctx).Find(&products).Error
	return products, err
}

// Read - 批次查詢商品
func (s *ProductRepo) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := s.dbDao.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// Update - 更新商品
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.dbDao.WithContext(ctx).Save(product).Error
}

// Delete - 軟刪除商品
func (s *ProductRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.dbDao.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}).Error
}
