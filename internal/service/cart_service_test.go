package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupCartTest(t *testing.T) (*fakeDB, *CartService, uuid.UUID, *model.Product) {
	fake := newFakeDB()
	service := NewCartService(fake)

	userID := uuid.New()
	fake.users[userID] = &model.User{ID: userID, Email: "buyer@example.com"}

	product := &model.Product{ID: uuid.New(), Name: "Coffee", Price: decimal.RequireFromString("10.50")}
	fake.products[product.ID] = product

	return fake, service, userID, product
}

func TestAddItemCreatesCart(t *testing.T) {
	_, service, userID, product := setupCartTest(t)

	cart, err := service.AddItem(context.Background(), userID, product.ID, 2)

	require.NoError(t, err)
	require.Equal(t, userID, cart.UserID)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
	require.Equal(t, product.ID, cart.Items[0].ProductID)
}

func TestAddItemMergesQuantity(t *testing.T) {
	_, service, userID, product := setupCartTest(t)

	_, err := service.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	cart, err := service.AddItem(context.Background(), userID, product.ID, 3)
	require.NoError(t, err)

	// 同商品不新增項目, 只累加數量
	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItemInvalidQuantity(t *testing.T) {
	_, service, userID, product := setupCartTest(t)

	_, err := service.AddItem(context.Background(), userID, product.ID, 0)
	requireAnaCode(t, err, int(er.InvalidArgumentCode))

	_, err = service.AddItem(context.Background(), userID, product.ID, -1)
	requireAnaCode(t, err, int(er.InvalidArgumentCode))
}

func TestAddItemProductNotFound(t *testing.T) {
	_, service, userID, _ := setupCartTest(t)

	_, err := service.AddItem(context.Background(), userID, uuid.New(), 1)
	requireAnaCode(t, err, int(er.NotFoundCode))
}

func TestRemoveItem(t *testing.T) {
	_, service, userID, product := setupCartTest(t)

	cart, err := service.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	cart, err = service.RemoveItem(context.Background(), userID, cart.Items[0].ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestRemoveItemIdempotent(t *testing.T) {
	_, service, userID, product := setupCartTest(t)

	_, err := service.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	// 移除不存在的項目為no-op
	cart, err := service.RemoveItem(context.Background(), userID, uuid.New())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestRemoveItemNoCart(t *testing.T) {
	_, service, userID, _ := setupCartTest(t)

	_, err := service.RemoveItem(context.Background(), userID, uuid.New())
	requireAnaCode(t, err, int(er.NotFoundCode))
}

func TestIncreaseItem(t *testing.T) {
	_, service, userID, product := setupCartTest(t)

	cart, err := service.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	cart, err = service.IncreaseItem(context.Background(), userID, cart.Items[0].ID)
	require.NoError(t, err)
	require.Equal(t, 3, cart.Items[0].Quantity)
}

func TestIncreaseItemNotFound(t *testing.T) {
	_, service, userID, product := setupCartTest(t)

	_, err := service.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	_, err = service.IncreaseItem(context.Background(), userID, uuid.New())
	requireAnaCode(t, err, int(er.NotFoundCode))
}

func TestGetCartEmptyWhenMissing(t *testing.T) {
	_, service, userID, _ := setupCartTest(t)

	cart, err := service.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, cart.Items)
	require.Empty(t, cart.Items)
}
