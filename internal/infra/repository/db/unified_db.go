package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	// 基礎操作
	GetDB() *gorm.DB
	InitMigrate() error
	// ExecTx 單一交易邊界, 下單流程的unit of work
	ExecTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	IUserRepository
	ISessionRepository
	IProductRepository
	ICartRepository
	IAddressRepository
	IOrderRepository
}

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}

// ISessionRepository UserSession 相關操作介面
type ISessionRepository interface {
	CreateSession(ctx context.Context, session *model.UserSession) (*model.UserSession, error)
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*model.UserSession, error)
	RevokeSession(ctx context.Context, sessionID uuid.UUID) error
	UpdateSessionToken(ctx context.Context, sessionID uuid.UUID, refreshToken string, expiresAt time.Time) error
	DeleteExpiredSessions(ctx context.Context) error
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ICartRepository Cart 相關操作介面
type ICartRepository interface {
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	GetCartByUserIDForUpdateTx(tx *gorm.DB, userID uuid.UUID) (*model.Cart, error)
	CreateCartTx(tx *gorm.DB, cart *model.Cart) error
	CreateItemTx(tx *gorm.DB, item *model.CartItem) error
	UpdateItemQuantityTx(tx *gorm.DB, itemID uuid.UUID, quantity int) error
	DeleteItemTx(tx *gorm.DB, cartID, itemID uuid.UUID) error
	ClearCartItemsTx(tx *gorm.DB, cartID uuid.UUID) error
}

// IAddressRepository Address 相關操作介面
type IAddressRepository interface {
	GetAddressByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	GetAddressByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Address, error)
	ListAddressesByUserID(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	CreateAddressTx(tx *gorm.DB, address *model.Address) error
	ClearDefaultTx(tx *gorm.DB, userID uuid.UUID) error
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrderTx(tx *gorm.DB, order *model.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	GetOrderByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	UpdateOrderStatusTx(tx *gorm.DB, id uuid.UUID, status model.OrderStatus) error
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*UserRepo
	*SessionRepo
	*ProductRepo
	*CartRepo
	*AddressRepo
	*OrderRepo
}

// NewUnifiedDB 創建新的統一資料庫實例
func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:          db,
		dbDao:       dbDao,
		UserRepo:    NewUserRepo(dbDao),
		SessionRepo: NewSessionRepo(dbDao),
		ProductRepo: NewProductRepo(dbDao),
		CartRepo:    NewCartRepo(dbDao),
		AddressRepo: NewAddressRepo(dbDao),
		OrderRepo:   NewOrderRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

// GetDB 獲取資料庫連接
func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

// ExecTx 執行一個交易
func (u *UnifiedDBImpl) ExecTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return u.dbDao.ExecTx(ctx, fn)
}

var (
	_ UnifiedDB          = (*UnifiedDBImpl)(nil)
	_ IUserRepository    = (*UnifiedDBImpl)(nil)
	_ ISessionRepository = (*UnifiedDBImpl)(nil)
	_ IProductRepository = (*UnifiedDBImpl)(nil)
	_ ICartRepository    = (*UnifiedDBImpl)(nil)
	_ IAddressRepository = (*UnifiedDBImpl)(nil)
	_ IOrderRepository   = (*UnifiedDBImpl)(nil)
)
