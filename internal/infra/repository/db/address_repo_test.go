package db

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type AddressRepoTestSuite struct {
	suite.Suite
	db       *gorm.DB
	dbDao    *DbDao
	addrRepo *AddressRepo
	userRepo *UserRepo
	testUser *model.User
}

// SetupSuite 在測試套件開始前執行
func (suite *AddressRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("lab_shopcenter", "localhost", "5432", "royce", "password")
	require.NoError(suite.T(), err)
	dbDao := NewDbDao(db)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = db
	suite.dbDao = dbDao
	suite.addrRepo = NewAddressRepo(dbDao)
	suite.userRepo = NewUserRepo(dbDao)
}

// SetupTest 在每個測試前執行
func (suite *AddressRepoTestSuite) SetupTest() {
	// 清空資料表
	suite.db.Exec("DELETE FROM addresses")
	suite.db.Exec("DELETE FROM users")

	suite.testUser = &model.User{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		Name:         "Test User",
		PasswordHash: "hash",
		IsActive:     true,
		BaseModel:    model.BaseModel{CreatedAt: time.Now().UTC()},
	}
	_, err := suite.userRepo.CreateUser(context.Background(), suite.testUser)
	require.NoError(suite.T(), err)
}

// TearDownSuite 在測試套件結束後執行
func (suite *AddressRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *AddressRepoTestSuite) createTestAddress(isDefault bool) *model.Address {
	address := &model.Address{
		ID:        uuid.New(),
		UserID:    suite.testUser.ID,
		Street:    "123 Test St",
		City:      "Taipei",
		ZipCode:   "100",
		Country:   "Taiwan",
		IsDefault: isDefault,
		BaseModel: model.BaseModel{CreatedAt: time.Now().UTC()},
	}
	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		return suite.addrRepo.CreateAddressTx(tx, address)
	})
	require.NoError(suite.T(), err)
	return address
}

func (suite *AddressRepoTestSuite) TestCreateAddressTx() {
	address := suite.createTestAddress(true)

	found, err := suite.addrRepo.GetAddressByID(context.Background(), address.ID)

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), address.ID, found.ID)
	require.Equal(suite.T(), suite.testUser.ID, found.UserID)
	require.True(suite.T(), found.IsDefault)
}

func (suite *AddressRepoTestSuite) TestGetAddressByID_NotFound() {
	found, err := suite.addrRepo.GetAddressByID(context.Background(), uuid.New())

	require.Error(suite.T(), err)
	require.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
	require.Nil(suite.T(), found)
}

func (suite *AddressRepoTestSuite) TestListAddressesByUserID() {
	suite.createTestAddress(false)
	suite.createTestAddress(true)

	addresses, err := suite.addrRepo.ListAddressesByUserID(context.Background(), suite.testUser.ID)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), addresses, 2)
}

func (suite *AddressRepoTestSuite) TestClearDefaultTx() {
	suite.createTestAddress(true)
	suite.createTestAddress(true)

	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		return suite.addrRepo.ClearDefaultTx(tx, suite.testUser.ID)
	})
	require.NoError(suite.T(), err)

	addresses, err := suite.addrRepo.ListAddressesByUserID(context.Background(), suite.testUser.ID)
	require.NoError(suite.T(), err)
	for _, address := range addresses {
		require.False(suite.T(), address.IsDefault)
	}
}

func (suite *AddressRepoTestSuite) TestGetAddressByIDTx() {
	address := suite.createTestAddress(false)

	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		found, err := suite.addrRepo.GetAddressByIDTx(tx, address.ID)
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), address.ID, found.ID)
		return nil
	})
	require.NoError(suite.T(), err)
}

func TestAddressRepoTestSuite(t *testing.T) {
	suite.Run(t, new(AddressRepoTestSuite))
}
