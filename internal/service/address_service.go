package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

type IAddressService interface {
	// AddAddress 創建地址
	// isDefault=true時, 先清掉該user其他地址的預設旗標再insert,
	// 兩步包在同一個交易內並鎖定user row, 確保同一user最多一筆預設地址
	//
	// 錯誤:
	//   - er.InvalidArgumentCode 460: 必填欄位為空
	//   - er.InternalErrorCode 500: 資料庫操作錯誤
	AddAddress(ctx context.Context, address *model.Address) (*model.Address, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
}

type AddressService struct {
	dbDao db.UnifiedDB
}

func NewAddressService(dbDao db.UnifiedDB) *AddressService {
	return &AddressService{dbDao: dbDao}
}

func (a *AddressService) AddAddress(ctx context.Context, address *model.Address) (*model.Address, error) {
	if address.Street == "" || address.City == "" || address.ZipCode == "" || address.Country == "" {
		return nil, er.New(er.InvalidArgumentCode, "street, city, zipCode and country are required")
	}

	address.ID = uuid.New()
	address.CreatedAt = time.Now().UTC()

	err := a.dbDao.ExecTx(ctx, func(tx *gorm.DB) error {
		if address.IsDefault {
			// 以user row lock serialize同一user的預設地址切換
			if _, err := a.dbDao.GetUserByIDForUpdateTx(tx, address.UserID); err != nil {
				return err
			}
			if err := a.dbDao.ClearDefaultTx(tx, address.UserID); err != nil {
				return err
			}
		}
		return a.dbDao.CreateAddressTx(tx, address)
	})
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	return address, nil
}

func (a *AddressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	addresses, err := a.dbDao.ListAddressesByUserID(ctx, userID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if addresses == nil {
		addresses = []model.Address{}
	}
	return addresses, nil
}

var _ IAddressService = (*AddressService)(nil)
