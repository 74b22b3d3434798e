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

type CartRepoTestSuite struct {
	suite.Suite
	db        *gorm.DB
	dbDao     *DbDao
	cartRepo  *CartRepo
	userRepo  *UserRepo
	prodRepo  *ProductRepo
	testUser  *model.User
	testProds []*model.Product
}

// SetupSuite 在測試套件開始前執行
func (suite *CartRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("lab_shopcenter", "localhost", "5432", "royce", "password")
	require.NoError(suite.T(), err)
	dbDao := NewDbDao(db)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = db
	suite.dbDao = dbDao
	suite.cartRepo = NewCartRepo(dbDao)
	suite.userRepo = NewUserRepo(dbDao)
	suite.prodRepo = NewProductRepo(dbDao)
}

// SetupTest 在每個測試前執行
func (suite *CartRepoTestSuite) SetupTest() {
	// 清空資料表
	suite.db.Exec("DELETE FROM cart_items")
	suite.db.Exec("DELETE FROM carts")
	suite.db.Exec("DELETE FROM products")
	suite.db.Exec("DELETE FROM users")

	suite.testUser = suite.createTestUser("buyer@example.com")
	suite.testProds = []*model.Product{
		suite.createTestProduct("Coffee", "10.50"),
		suite.createTestProduct("Mug", "4.00"),
	}
}

// TearDownSuite 在測試套件結束後執行
func (suite *CartRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *CartRepoTestSuite) createTestUser(email string) *model.User {
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hash",
		IsActive:     true,
		BaseModel:    model.BaseModel{CreatedAt: time.Now().UTC()},
	}
	_, err := suite.userRepo.CreateUser(context.Background(), user)
	require.NoError(suite.T(), err)
	return user
}

func (suite *CartRepoTestSuite) createTestProduct(name, price string) *model.Product {
	product := &model.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "test product",
		Price:       decimal.RequireFromString(price),
		Category:    "test",
		Stock:       100,
		BaseModel:   model.BaseModel{CreatedAt: time.Now().UTC()},
	}
	err := suite.prodRepo.CreateProduct(context.Background(), product)
	require.NoError(suite.T(), err)
	return product
}

func (suite *CartRepoTestSuite) createTestCart() *model.Cart {
	cart := &model.Cart{
		ID:        uuid.New(),
		UserID:    suite.testUser.ID,
		BaseModel: model.BaseModel{CreatedAt: time.Now().UTC()},
	}
	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		return suite.cartRepo.CreateCartTx(tx, cart)
	})
	require.NoError(suite.T(), err)
	return cart
}

func (suite *CartRepoTestSuite) addTestItem(cartID, productID uuid.UUID, quantity int) *model.CartItem {
	item := &model.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		BaseModel: model.BaseModel{CreatedAt: time.Now().UTC()},
	}
	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		return suite.cartRepo.CreateItemTx(tx, item)
	})
	require.NoError(suite.T(), err)
	return item
}

func (suite *CartRepoTestSuite) TestGetCartByUserID() {
	cart := suite.createTestCart()
	suite.addTestItem(cart.ID, suite.testProds[0].ID, 2)

	found, err := suite.cartRepo.GetCartByUserID(context.Background(), suite.testUser.ID)

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), cart.ID, found.ID)
	require.Len(suite.T(), found.Items, 1)
	// Preload要帶出商品資訊
	require.Equal(suite.T(), "Coffee", found.Items[0].Product.Name)
	require.True(suite.T(), decimal.RequireFromString("10.50").Equal(found.Items[0].Product.Price))
}

func (suite *CartRepoTestSuite) TestGetCartByUserID_NotFound() {
	found, err := suite.cartRepo.GetCartByUserID(context.Background(), uuid.New())

	require.Error(suite.T(), err)
	require.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
	require.Nil(suite.T(), found)
}

func (suite *CartRepoTestSuite) TestGetCartByUserIDForUpdateTx() {
	cart := suite.createTestCart()
	suite.addTestItem(cart.ID, suite.testProds[0].ID, 2)
	suite.addTestItem(cart.ID, suite.testProds[1].ID, 1)

	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		found, err := suite.cartRepo.GetCartByUserIDForUpdateTx(tx, suite.testUser.ID)
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), cart.ID, found.ID)
		require.Len(suite.T(), found.Items, 2)
		require.NotEmpty(suite.T(), found.Items[0].Product.Name)
		return nil
	})
	require.NoError(suite.T(), err)
}

func (suite *CartRepoTestSuite) TestUpdateItemQuantityTx() {
	cart := suite.createTestCart()
	item := suite.addTestItem(cart.ID, suite.testProds[0].ID, 2)

	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		return suite.cartRepo.UpdateItemQuantityTx(tx, item.ID, 5)
	})
	require.NoError(suite.T(), err)

	found, err := suite.cartRepo.GetCartByUserID(context.Background(), suite.testUser.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 5, found.Items[0].Quantity)
}

func (suite *CartRepoTestSuite) TestDeleteItemTx() {
	cart := suite.createTestCart()
	item := suite.addTestItem(cart.ID, suite.testProds[0].ID, 2)

	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		return suite.cartRepo.DeleteItemTx(tx, cart.ID, item.ID)
	})
	require.NoError(suite.T(), err)

	found, err := suite.cartRepo.GetCartByUserID(context.Background(), suite.testUser.ID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), found.Items)
}

func (suite *CartRepoTestSuite) TestDeleteItemTx_NotExist() {
	cart := suite.createTestCart()

	// 刪除不存在的項目不報錯
	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		return suite.cartRepo.DeleteItemTx(tx, cart.ID, uuid.New())
	})
	require.NoError(suite.T(), err)
}

func (suite *CartRepoTestSuite) TestClearCartItemsTx() {
	cart := suite.createTestCart()
	suite.addTestItem(cart.ID, suite.testProds[0].ID, 2)
	suite.addTestItem(cart.ID, suite.testProds[1].ID, 1)

	err := suite.dbDao.ExecTx(context.Background(), func(tx *gorm.DB) error {
		return suite.cartRepo.ClearCartItemsTx(tx, cart.ID)
	})
	require.NoError(suite.T(), err)

	// 清空items但保留購物車本身
	found, err := suite.cartRepo.GetCartByUserID(context.Background(), suite.testUser.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), cart.ID, found.ID)
	require.Empty(suite.T(), found.Items)
}

func TestCartRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepoTestSuite))
}
