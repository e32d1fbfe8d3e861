package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	domainerrors "wasul/internal/domain/errors"
	"wasul/internal/errors"
	"wasul/internal/infra/codegen"
	"wasul/internal/infra/persistence/memory"
	"wasul/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverService_Lookup_ByPhone(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	registered := fx.registerTestAddress(t)
	key := fx.issueTestKey(t, "Talabat")

	view, err := fx.resolver.Lookup(ctx, key.Key, "96891234567", "")
	require.NoError(t, err)

	assert.Equal(t, registered.Code, view.AddressCode)
	assert.Equal(t, "96891234567", view.Phone)
	assert.InDelta(t, 23.5880, view.Latitude, 1e-9)
	assert.InDelta(t, 58.3829, view.Longitude, 1e-9)
	assert.Equal(t, "Muscat", view.City)
	assert.Equal(t, "Al Khuwair", view.Area)
	assert.Equal(t, "https://www.google.com/maps?q=23.588,58.3829", view.GoogleMapsLink)
	assert.False(t, view.Verified)
	assert.Zero(t, view.SuccessfulDeliveries)
}

func TestResolverService_Lookup_ByCode(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	registered := fx.registerTestAddress(t)
	key := fx.issueTestKey(t, "Talabat")

	// Codes resolve case-insensitively.
	view, err := fx.resolver.Lookup(ctx, key.Key, "", strings.ToLower(registered.Code))
	require.NoError(t, err)
	assert.Equal(t, registered.Code, view.AddressCode)
}

func TestResolverService_Lookup_PhoneWinsOverCode(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	first := fx.registerTestAddress(t)
	second, err := fx.registry.Register(ctx, &usecase.RegisterAddressInput{
		Phone: "96899999999", Latitude: 17.0151, Longitude: 54.0924, City: "Salalah", Area: "Al Saada",
	})
	require.NoError(t, err)

	key := fx.issueTestKey(t, "Talabat")

	view, err := fx.resolver.Lookup(ctx, key.Key, first.Phone, second.Code)
	require.NoError(t, err)
	assert.Equal(t, first.Code, view.AddressCode)
}

func TestResolverService_Lookup_Unauthorized(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	fx.registerTestAddress(t)

	for _, key := range []string{"", "omaddr_00000000000000000000000000000000"} {
		_, err := fx.resolver.Lookup(ctx, key, "96891234567", "")
		assert.ErrorIs(t, err, domainerrors.ErrUnauthorizedAPIKey)
	}
}

func TestResolverService_Lookup_KeyMissing(t *testing.T) {
	fx := createTestServices(t)

	key := fx.issueTestKey(t, "Talabat")

	_, err := fx.resolver.Lookup(context.Background(), key.Key, "", "")
	assert.ErrorIs(t, err, domainerrors.ErrLookupKeyMissing)
}

func TestResolverService_Lookup_NotFound(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	key := fx.issueTestKey(t, "Talabat")

	_, err := fx.resolver.Lookup(ctx, key.Key, "96890000000", "")
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)

	_, err = fx.resolver.Lookup(ctx, key.Key, "", "OM-MUS-0000Z")
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)

	// Misses are not billable.
	stored, err := fx.keyRepo.FindByKey(ctx, key.Key)
	require.NoError(t, err)
	assert.Zero(t, stored.UsageCount)
}

func TestResolverService_Lookup_CountsUsage(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	registered := fx.registerTestAddress(t)
	key := fx.issueTestKey(t, "Talabat")

	for range 3 {
		_, err := fx.resolver.Lookup(ctx, key.Key, "", registered.Code)
		require.NoError(t, err)
	}

	stored, err := fx.keyRepo.FindByKey(ctx, key.Key)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stored.UsageCount)
}

func TestResolverService_Lookup_AccountingFailureIsSoft(t *testing.T) {
	keyRepo := &failingUsageKeyRepo{
		PartnerKeyRepository: memory.NewPartnerKeyRepository(),
		incrementErr:         errors.New("connection reset"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	partner := NewPartnerService(keyRepo, codegen.NewAPIKeyGenerator(), logger, nil)

	addressRepo := memory.NewAddressRepository()
	resolver := NewResolverService(addressRepo, partner, nil)
	ctx := context.Background()

	key, err := partner.IssueKey(ctx, "Talabat")
	require.NoError(t, err)

	registry := NewRegistryService(addressRepo, &sequenceCodeGenerator{codes: []string{"OM-MUS-1234A"}}, 1, nil)
	_, err = registry.Register(ctx, &usecase.RegisterAddressInput{
		Phone: "96891234567", Latitude: 23.5, Longitude: 58.3, City: "Muscat", Area: "Ruwi",
	})
	require.NoError(t, err)

	view, err := resolver.Lookup(ctx, key.Key, "96891234567", "")
	require.NoError(t, err, "lookup must succeed even when accounting fails")
	assert.Equal(t, "OM-MUS-1234A", view.AddressCode)
}
