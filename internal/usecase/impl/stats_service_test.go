package impl

import (
	"context"
	"testing"

	"wasul/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Collect_Empty(t *testing.T) {
	fx := createTestServices(t)

	stats, err := fx.stats.Collect(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalAddresses)
	assert.Zero(t, stats.VerifiedAddresses)
	assert.Zero(t, stats.SuccessfulDeliveries)
	assert.Zero(t, stats.ActivePartners)
	assert.Zero(t, stats.TotalLookups)
	assert.Zero(t, stats.RevenueEstimateUSD)
}

func TestStatsService_Collect(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	first := fx.registerTestAddress(t)
	_, err := fx.registry.Register(ctx, &usecase.RegisterAddressInput{
		Phone: "96899999999", Latitude: 17.0151, Longitude: 54.0924, City: "Salalah", Area: "Al Saada",
	})
	require.NoError(t, err)

	key := fx.issueTestKey(t, "Talabat")

	// Three successes verify the first address; each report and lookup
	// is billable.
	for range 3 {
		_, err := fx.verifier.Report(ctx, key.Key, &usecase.DeliveryReportInput{
			AddressCode: first.Code,
			Success:     true,
		})
		require.NoError(t, err)
	}
	_, err = fx.resolver.Lookup(ctx, key.Key, first.Phone, "")
	require.NoError(t, err)

	stats, err := fx.stats.Collect(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalAddresses)
	assert.EqualValues(t, 1, stats.VerifiedAddresses)
	assert.EqualValues(t, 3, stats.SuccessfulDeliveries)
	assert.EqualValues(t, 1, stats.ActivePartners)
	assert.EqualValues(t, 4, stats.TotalLookups)
	assert.InDelta(t, 0.60, stats.RevenueEstimateUSD, 1e-9)
}
