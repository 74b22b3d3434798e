package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressRepo struct {
	dbDao *DbDao
}

func NewAddressRepo(dbDao *DbDao) *AddressRepo {
	return &AddressRepo{dbDao: dbDao}
}

// Read - 根據ID查詢地址
func (s *AddressRepo) GetAddressByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	var address model.Address
	err := s.dbDao.WithContext(ctx).First(&address, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Read - 查詢用戶所有地址
func (s *AddressRepo) ListAddressesByUserID(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	var addresses []model.Address
	err := s.dbDao.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at").Find(&addresses).Error
	return addresses, err
}

// Create - 創建地址
func (s *AddressRepo) CreateAddressTx(tx *gorm.DB, address *model.Address) error {
	return tx.Create(address).Error
}

// Update - 清除用戶所有地址的預設旗標
// 設定新預設地址前呼叫, 與insert包在同一個交易內, 確保同一user最多一筆預設地址
func (s *AddressRepo) ClearDefaultTx(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&model.Address{}).Where("user_id = ? AND is_default = true", userID).
		Update("is_default", false).Error
}

// Read - 在交易內根據ID查詢地址
// 下訂單時地址讀取與訂單寫入必須在同一筆交易內
func (s *AddressRepo) GetAddressByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Address, error) {
	var address model.Address
	if err := tx.First(&address, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}
