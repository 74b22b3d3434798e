package db

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderRepoTestSuite struct {
	suite.Suite
	db          *gorm.DB
	dbDao       *DbDao
	orderRepo   *OrderRepo
	userRepo    *UserRepo
	prodRepo    *ProductRepo
	addrRepo    *AddressRepo
	testUser    *model.User
	testProd    *model.Product
	testAddress *model.Address
}

// SetupSuite 在測試套件開始前執行
func (suite *OrderRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("lab_shopcenter", "localhost", "5432", "royce", "password")
	require.NoError(suite.T(), err)
	dbDao := NewDbDao(db)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = db
	suite.dbDao = dbDao
	suite.orderRepo = NewOrderRepo(dbDao)
	suite.userRepo = NewUserRepo(dbDao)
	suite.prodRepo = NewProductRepo(dbDao)
	suite.addrRepo = NewAddressRepo(dbDao)
}

// SetupTest 在每個測試前執行
func (suite *OrderRepoTestSuite) SetupTest() {
	// 清空資料表
	suite.db.Exec("DELETE FROM order_items")
	suite.db.Exec("DELETE FROM orders")
	suite.db.Exec("DELETE FROM addresses")
	suite.db.Exec("DELETE FROM products")
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

	suite.testProd = &model.Product{
		ID:          uuid.New(),
		Name:        "Coffee",
		Description: "test product",
		Price:       decimal.RequireFromString("10.50"),
		Category:    "test",
		Stock:       100,
		BaseModel:   model.BaseModel{CreatedAt: time.Now().UTC()},
	}
	require.NoError(suite.T(), suite.prodRepo.CreateProduct(context.Background(), suite.testProd))

	suite.testAddress = &model.Address{
		ID:        uuid.New(),
		UserID:    suite.testUser.ID,
		Street:    "123 Test St",
		City:      "Taipei",
		ZipCode:   "100",
		Country:   "Taiwan",
		BaseModel: model.BaseModel{CreatedAt: time.Now().UTC()},
	}
	err = suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		return suite.addrRepo.CreateAddressTx(tx, suite.testAddress)
	})
	require.NoError(suite.T(), err)
}

// TearDownSuite 在測試套件結束後執行
func (suite *OrderRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *OrderRepoTestSuite) createTestOrder(createdAt time.Time) *model.Order {
	order := &model.Order{
		ID:     uuid.New(),
		UserID: suite.testUser.ID,
		Items: []model.OrderItem{
			{
				ProductID: suite.testProd.ID,
				Quantity:  2,
				UnitPrice: suite.testProd.Price,
				BaseModel: model.BaseModel{CreatedAt: createdAt},
			},
		},
		TotalAmount:      decimal.RequireFromString("21.00"),
		DeliveryType:     model.DeliveryTypeStandard,
		AddressID:        suite.testAddress.ID,
		Status:           model.OrderStatusPending,
		VerificationCode: "test-code",
		BaseModel:        model.BaseModel{CreatedAt: createdAt},
	}
	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		return suite.orderRepo.CreateOrderTx(tx, order)
	})
	require.NoError(suite.T(), err)
	return order
}

func (suite *OrderRepoTestSuite) TestCreateOrderTx() {
	order := suite.createTestOrder(time.Now().UTC())

	found, err := suite.orderRepo.GetOrderByID(context.Background(), order.ID)

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), order.ID, found.ID)
	require.Len(suite.T(), found.Items, 1)
	require.True(suite.T(), decimal.RequireFromString("21.00").Equal(found.TotalAmount))
	require.Equal(suite.T(), model.OrderStatusPending, found.Status)
	require.Equal(suite.T(), "test-code", found.VerificationCode)
	// Preload要帶出商品與地址
	require.Equal(suite.T(), "Coffee", found.Items[0].Product.Name)
	require.Equal(suite.T(), "Taipei", found.Address.City)
}

func (suite *OrderRepoTestSuite) TestGetOrderByID_NotFound() {
	found, err := suite.orderRepo.GetOrderByID(context.Background(), uuid.New())

	require.Error(suite.T(), err)
	require.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
	require.Nil(suite.T(), found)
}

func (suite *OrderRepoTestSuite) TestGetOrdersByUserID() {
	older := suite.createTestOrder(time.Now().UTC().Add(-time.Hour))
	newer := suite.createTestOrder(time.Now().UTC())

	orders, err := suite.orderRepo.GetOrdersByUserID(context.Background(), suite.testUser.ID)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), orders, 2)
	// 新到舊排序
	require.Equal(suite.T(), newer.ID, orders[0].ID)
	require.Equal(suite.T(), older.ID, orders[1].ID)
}

func (suite *OrderRepoTestSuite) TestGetOrdersByUserID_Empty() {
	orders, err := suite.orderRepo.GetOrdersByUserID(context.Background(), uuid.New())

	require.NoError(suite.T(), err)
	require.Empty(suite.T(), orders)
}

func (suite *OrderRepoTestSuite) TestUpdateOrderStatusTx() {
	order := suite.createTestOrder(time.Now().UTC())

	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		locked, err := suite.orderRepo.GetOrderByIDForUpdateTx(tx, order.ID)
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), model.OrderStatusPending, locked.Status)
		return suite.orderRepo.UpdateOrderStatusTx(tx, order.ID, model.OrderStatusProcessing)
	})
	require.NoError(suite.T(), err)

	found, err := suite.orderRepo.GetOrderByID(context.Background(), order.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusProcessing, found.Status)
}

func (suite *OrderRepoTestSuite) TestGetOrderByIDForUpdateTx_NotFound() {
	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		_, err := suite.orderRepo.GetOrderByIDForUpdateTx(tx, uuid.New())
		return err
	})
	require.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}
