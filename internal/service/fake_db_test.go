package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeDB 以記憶體map模擬UnifiedDB, 只實作service層會用到的方法,
// 其餘方法由內嵌介面提供(呼叫到會panic, 代表測試涵蓋了預期外的路徑)
type fakeDB struct {
	db.UnifiedDB
	users     map[uuid.UUID]*model.User
	products  map[uuid.UUID]*model.Product
	carts     map[uuid.UUID]*model.Cart //key為userID
	addresses map[uuid.UUID]*model.Address
	orders    map[uuid.UUID]*model.Order
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:     make(map[uuid.UUID]*model.User),
		products:  make(map[uuid.UUID]*model.Product),
		carts:     make(map[uuid.UUID]*model.Cart),
		addresses: make(map[uuid.UUID]*model.Address),
		orders:    make(map[uuid.UUID]*model.Order),
	}
}

// ExecTx fake不具備rollback能力, 只驗證service層的流程控制
func (f *fakeDB) ExecTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (f *fakeDB) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeDB) GetUserByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDB) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeDB) GetProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (f *fakeDB) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cart, nil
}

func (f *fakeDB) GetCartByUserIDForUpdateTx(tx *gorm.DB, userID uuid.UUID) (*model.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cart, nil
}

func (f *fakeDB) CreateCartTx(tx *gorm.DB, cart *model.Cart) error {
	f.carts[cart.UserID] = cart
	return nil
}

func (f *fakeDB) CreateItemTx(tx *gorm.DB, item *model.CartItem) error {
	for _, cart := range f.carts {
		if cart.ID == item.CartID {
			if product, ok := f.products[item.ProductID]; ok {
				item.Product = *product
			}
			cart.Items = append(cart.Items, *item)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeDB) UpdateItemQuantityTx(tx *gorm.DB, itemID uuid.UUID, quantity int) error {
	for _, cart := range f.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items[i].Quantity = quantity
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeDB) DeleteItemTx(tx *gorm.DB, cartID, itemID uuid.UUID) error {
	for _, cart := range f.carts {
		if cart.ID != cartID {
			continue
		}
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeDB) ClearCartItemsTx(tx *gorm.DB, cartID uuid.UUID) error {
	for _, cart := range f.carts {
		if cart.ID == cartID {
			cart.Items = nil
		}
	}
	return nil
}

func (f *fakeDB) GetAddressByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	address, ok := f.addresses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return address, nil
}

func (f *fakeDB) GetAddressByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Address, error) {
	address, ok := f.addresses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return address, nil
}

func (f *fakeDB) ListAddressesByUserID(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	var addresses []model.Address
	for _, address := range f.addresses {
		if address.UserID == userID {
			addresses = append(addresses, *address)
		}
	}
	return addresses, nil
}

func (f *fakeDB) CreateAddressTx(tx *gorm.DB, address *model.Address) error {
	f.addresses[address.ID] = address
	return nil
}

func (f *fakeDB) ClearDefaultTx(tx *gorm.DB, userID uuid.UUID) error {
	for _, address := range f.addresses {
		if address.UserID == userID {
			address.IsDefault = false
		}
	}
	return nil
}

func (f *fakeDB) CreateOrderTx(tx *gorm.DB, order *model.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeDB) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// 模擬preload
	if address, ok := f.addresses[order.AddressID]; ok {
		order.Address = *address
	}
	return order, nil
}

func (f *fakeDB) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (f *fakeDB) GetOrderByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (f *fakeDB) UpdateOrderStatusTx(tx *gorm.DB, id uuid.UUID, status model.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

var errArtifactGen = errors.New("artifact generate failed")

// fakeArtifactGen 可控制失敗的驗證碼產生器
type fakeArtifactGen struct {
	fail bool
}

func (g *fakeArtifactGen) Generate(ctx context.Context, userID uuid.UUID, at time.Time) (string, error) {
	if g.fail {
		return "", errArtifactGen
	}
	return "fake-verification-code", nil
}
