package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo struct {
	dbDao *DbDao
}

func NewOrderRepo(dbDao *DbDao) *OrderRepo {
	return &OrderRepo{dbDao: dbDao}
}

// Create - 創建訂單(含items快照)
// 必須與清空購物車在同一個交易內執行
func (s *OrderRepo) CreateOrderTx(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := s.dbDao.WithContext(ctx).Preload("Items.Product").Preload("Address").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 根據用戶ID查詢訂單
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := s.dbDao.WithContext(ctx).Preload("Items.Product").Preload("Address").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// Read - 鎖定並讀取訂單(FOR UPDATE)
// 狀態轉換的讀取與寫入必須在同一個交易內, 避免並發轉換讀到stale狀態
func (s *OrderRepo) GetOrderByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatusTx(tx *gorm.DB, id uuid.UUID, status model.OrderStatus) error {
	return tx.Model(&model.Order{}).Where("id = ?", id).
		Update("status", status).Error
}
