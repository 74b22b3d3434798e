package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo struct {
	dbDao *DbDao
}

func NewCartRepo(dbDao *DbDao) *CartRepo {
	return &CartRepo{dbDao: dbDao}
}

// Read - 根據用戶ID查詢購物車(含商品資訊)
// 純讀取, 不會建立購物車
func (s *CartRepo) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	var cart model.Cart
	err := s.dbDao.WithContext(ctx).Preload("Items.Product").
		Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Read - 在交易內以SELECT FOR UPDATE鎖定購物車row後載入items
// 同一user的購物車操作與下單藉由這個row lock serialize
func (s *CartRepo) GetCartByUserIDForUpdateTx(tx *gorm.DB, userID uuid.UUID) (*model.Cart, error) {
	var cart model.Cart
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return nil, err
	}

	err = tx.Preload("Product").Where("cart_id = ?", cart.ID).Find(&cart.Items).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Create - 創建購物車
func (s *CartRepo) CreateCartTx(tx *gorm.DB, cart *model.Cart) error {
	return tx.Create(cart).Error
}

// Create - 新增購物車項目
func (s *CartRepo) CreateItemTx(tx *gorm.DB, item *model.CartItem) error {
	return tx.Create(item).Error
}

// Update - 更新購物車項目數量
func (s *CartRepo) UpdateItemQuantityTx(tx *gorm.DB, itemID uuid.UUID, quantity int) error {
	return tx.Model(&model.CartItem{}).Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// Delete - 移除購物車項目
func (s *CartRepo) DeleteItemTx(tx *gorm.DB, cartID, itemID uuid.UUID) error {
	return tx.Unscoped().Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&model.CartItem{}).Error
}

// Delete - 清空購物車項目, 保留購物車本身
func (s *CartRepo) ClearCartItemsTx(tx *gorm.DB, cartID uuid.UUID) error {
	return tx.Unscoped().Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
