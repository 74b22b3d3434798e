package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupAddressTest(t *testing.T) (*fakeDB, *AddressService, uuid.UUID) {
	fake := newFakeDB()
	service := NewAddressService(fake)

	userID := uuid.New()
	fake.users[userID] = &model.User{ID: userID, Email: "buyer@example.com"}

	return fake, service, userID
}

func newTestAddress(userID uuid.UUID, isDefault bool) *model.Address {
	return &model.Address{
		UserID:    userID,
		Street:    "123 Test St",
		City:      "Taipei",
		ZipCode:   "100",
		Country:   "Taiwan",
		IsDefault: isDefault,
	}
}

func TestAddAddress(t *testing.T) {
	_, service, userID := setupAddressTest(t)

	address, err := service.AddAddress(context.Background(), newTestAddress(userID, false))

	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, address.ID)
	require.False(t, address.IsDefault)
}

func TestAddAddressValidation(t *testing.T) {
	_, service, userID := setupAddressTest(t)

	address := newTestAddress(userID, false)
	address.City = ""

	_, err := service.AddAddress(context.Background(), address)
	requireAnaCode(t, err, int(er.InvalidArgumentCode))
}

func TestAddAddressDefaultSwap(t *testing.T) {
	fake, service, userID := setupAddressTest(t)

	first, err := service.AddAddress(context.Background(), newTestAddress(userID, true))
	require.NoError(t, err)
	require.True(t, first.IsDefault)

	second, err := service.AddAddress(context.Background(), newTestAddress(userID, true))
	require.NoError(t, err)
	require.True(t, second.IsDefault)

	// 同一個user最多只有一筆預設地址
	require.False(t, fake.addresses[first.ID].IsDefault)

	defaults := 0
	for _, address := range fake.addresses {
		if address.UserID == userID && address.IsDefault {
			defaults++
		}
	}
	require.Equal(t, 1, defaults)
}

func TestAddAddressDefaultSwapOtherUserUntouched(t *testing.T) {
	fake, service, userID := setupAddressTest(t)

	otherUserID := uuid.New()
	fake.users[otherUserID] = &model.User{ID: otherUserID, Email: "other@example.com"}

	otherDefault, err := service.AddAddress(context.Background(), newTestAddress(otherUserID, true))
	require.NoError(t, err)

	_, err = service.AddAddress(context.Background(), newTestAddress(userID, true))
	require.NoError(t, err)

	// 別的user的預設地址不受影響
	require.True(t, fake.addresses[otherDefault.ID].IsDefault)
}

func TestListAddressesEmpty(t *testing.T) {
	_, service, userID := setupAddressTest(t)

	addresses, err := service.ListAddresses(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, addresses)
	require.Empty(t, addresses)
}
