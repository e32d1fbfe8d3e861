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

func TestPartnerKeyRepository_CreateAndFind(t *testing.T) {
	store := NewPartnerKeyRepository()
	ctx := context.Background()

	key := &entity.PartnerKey{Key: "omaddr_aaaa", PartnerName: "Talabat", Active: true}
	require.NoError(t, store.Create(ctx, key))
	assert.NotZero(t, key.ID)

	found, err := store.FindByKey(ctx, "omaddr_aaaa")
	require.NoError(t, err)
	assert.Equal(t, "Talabat", found.PartnerName)

	_, err = store.FindByKey(ctx, "omaddr_missing")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestPartnerKeyRepository_SamePartnerTwoKeys(t *testing.T) {
	store := NewPartnerKeyRepository()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.PartnerKey{Key: "omaddr_aaaa", PartnerName: "Talabat", Active: true}))
	require.NoError(t, store.Create(ctx, &entity.PartnerKey{Key: "omaddr_bbbb", PartnerName: "Talabat", Active: true}))

	require.NoError(t, store.IncrementUsage(ctx, "omaddr_aaaa"))
	require.NoError(t, store.IncrementUsage(ctx, "omaddr_aaaa"))
	require.NoError(t, store.IncrementUsage(ctx, "omaddr_bbbb"))

	first, err := store.FindByKey(ctx, "omaddr_aaaa")
	require.NoError(t, err)
	second, err := store.FindByKey(ctx, "omaddr_bbbb")
	require.NoError(t, err)

	assert.EqualValues(t, 2, first.UsageCount)
	assert.EqualValues(t, 1, second.UsageCount)

	total, err := store.TotalUsage(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestPartnerKeyRepository_ConcurrentIncrements(t *testing.T) {
	store := NewPartnerKeyRepository()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.PartnerKey{Key: "omaddr_aaaa", PartnerName: "Talabat", Active: true}))

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			assert.NoError(t, store.IncrementUsage(ctx, "omaddr_aaaa"))
		}()
	}
	wg.Wait()

	found, err := store.FindByKey(ctx, "omaddr_aaaa")
	require.NoError(t, err)
	assert.EqualValues(t, workers, found.UsageCount)
}

func TestPartnerKeyRepository_CountActive(t *testing.T) {
	store := NewPartnerKeyRepository()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.PartnerKey{Key: "omaddr_aaaa", PartnerName: "Talabat", Active: true}))
	require.NoError(t, store.Create(ctx, &entity.PartnerKey{Key: "omaddr_bbbb", PartnerName: "Akeed", Active: false}))

	count, err := store.CountActive(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
