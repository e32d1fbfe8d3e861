package memory

import (
	"context"
	"sync"
	"testing"

	"wasul/internal/domain/entity"
	"wasul/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressRepository_CreateAndFind(t *testing.T) {
	store := NewAddressRepository()
	ctx := context.Background()

	address := &entity.Address{
		Code:      "OM-MUS-1234A",
		Phone:     "96891234567",
		Latitude:  23.5880,
		Longitude: 58.3829,
		City:      "Muscat",
		Area:      "Al Khuwair",
	}
	require.NoError(t, store.Create(ctx, address))
	assert.NotZero(t, address.ID)
	assert.False(t, address.CreatedAt.IsZero())

	byPhone, err := store.FindByPhone(ctx, "96891234567")
	require.NoError(t, err)
	assert.Equal(t, "OM-MUS-1234A", byPhone.Code)

	byCode, err := store.FindByCode(ctx, "OM-MUS-1234A")
	require.NoError(t, err)
	assert.Equal(t, byPhone.Phone, byCode.Phone)
	assert.Equal(t, byPhone.Latitude, byCode.Latitude)
	assert.Equal(t, byPhone.Longitude, byCode.Longitude)
}

func TestAddressRepository_CreateConflicts(t *testing.T) {
	store := NewAddressRepository()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.Address{Code: "OM-MUS-1234A", Phone: "96891111111", City: "Muscat"}))

	err := store.Create(ctx, &entity.Address{Code: "OM-MUS-1234A", Phone: "96892222222", City: "Muscat"})
	assert.ErrorIs(t, err, repository.ErrCodeAlreadyExists)

	err = store.Create(ctx, &entity.Address{Code: "OM-MUS-5678B", Phone: "96891111111", City: "Muscat"})
	assert.ErrorIs(t, err, repository.ErrPhoneAlreadyRegistered)
}

func TestAddressRepository_FindUnknown(t *testing.T) {
	store := NewAddressRepository()
	ctx := context.Background()

	_, err := store.FindByPhone(ctx, "96890000000")
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)

	_, err = store.FindByCode(ctx, "OM-MUS-0000Z")
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestAddressRepository_RecordDeliveryOutcome(t *testing.T) {
	store := NewAddressRepository()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.Address{Code: "OM-MUS-1234A", Phone: "96891234567", City: "Muscat"}))

	for i := 1; i <= 2; i++ {
		updated, err := store.RecordDeliveryOutcome(ctx, "OM-MUS-1234A", true, 3)
		require.NoError(t, err)
		assert.Equal(t, i, updated.SuccessfulDeliveries)
		assert.False(t, updated.Verified)
	}

	updated, err := store.RecordDeliveryOutcome(ctx, "OM-MUS-1234A", true, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.SuccessfulDeliveries)
	assert.True(t, updated.Verified)

	// A later failure never reverts the verified flag or the success count.
	updated, err = store.RecordDeliveryOutcome(ctx, "OM-MUS-1234A", false, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.SuccessfulDeliveries)
	assert.Equal(t, 1, updated.FailedDeliveries)
	assert.True(t, updated.Verified)

	_, err = store.RecordDeliveryOutcome(ctx, "OM-MUS-9999Z", true, 3)
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestAddressRepository_ConcurrentOutcomes(t *testing.T) {
	store := NewAddressRepository()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.Address{Code: "OM-MUS-1234A", Phone: "96891234567", City: "Muscat"}))

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			_, err := store.RecordDeliveryOutcome(ctx, "OM-MUS-1234A", true, 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := store.FindByCode(ctx, "OM-MUS-1234A")
	require.NoError(t, err)
	assert.Equal(t, workers, final.SuccessfulDeliveries)
	assert.True(t, final.Verified)
}

func TestAddressRepository_ReadsDoNotShareState(t *testing.T) {
	store := NewAddressRepository()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.Address{Code: "OM-MUS-1234A", Phone: "96891234567", City: "Muscat"}))

	read, err := store.FindByCode(ctx, "OM-MUS-1234A")
	require.NoError(t, err)
	read.SuccessfulDeliveries = 99

	again, err := store.FindByCode(ctx, "OM-MUS-1234A")
	require.NoError(t, err)
	assert.Zero(t, again.SuccessfulDeliveries)
}
