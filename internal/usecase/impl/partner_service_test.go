package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"wasul/internal/domain/entity"
	domainerrors "wasul/internal/domain/errors"
	"wasul/internal/errors"
	"wasul/internal/infra/codegen"
	"wasul/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerService_IssueKey(t *testing.T) {
	fx := createTestServices(t)

	key, err := fx.partner.IssueKey(context.Background(), "Talabat Oman")
	require.NoError(t, err)

	assert.Regexp(t, `^omaddr_[0-9a-f]{32}$`, key.Key)
	assert.Equal(t, "Talabat Oman", key.PartnerName)
	assert.True(t, key.Active)
	assert.Zero(t, key.UsageCount)
}

func TestPartnerService_IssueKey_NameRequired(t *testing.T) {
	fx := createTestServices(t)

	for _, name := range []string{"", "   "} {
		_, err := fx.partner.IssueKey(context.Background(), name)
		assert.ErrorIs(t, err, domainerrors.ErrPartnerNameRequired)
	}
}

func TestPartnerService_IssueKey_SameNameIndependentKeys(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	first := fx.issueTestKey(t, "Talabat")
	second := fx.issueTestKey(t, "Talabat")
	require.NotEqual(t, first.Key, second.Key)

	fx.partner.RecordUsage(ctx, first.Key)
	fx.partner.RecordUsage(ctx, first.Key)
	fx.partner.RecordUsage(ctx, second.Key)

	firstStored, err := fx.keyRepo.FindByKey(ctx, first.Key)
	require.NoError(t, err)
	secondStored, err := fx.keyRepo.FindByKey(ctx, second.Key)
	require.NoError(t, err)

	assert.EqualValues(t, 2, firstStored.UsageCount)
	assert.EqualValues(t, 1, secondStored.UsageCount)
}

func TestPartnerService_ValidateKey(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	issued := fx.issueTestKey(t, "Akeed")

	validated, err := fx.partner.ValidateKey(ctx, issued.Key)
	require.NoError(t, err)
	assert.Equal(t, "Akeed", validated.PartnerName)
}

func TestPartnerService_ValidateKey_Rejections(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	// Deactivated keys are stored but no longer accepted.
	require.NoError(t, fx.keyRepo.Create(ctx, &entity.PartnerKey{
		Key:         "omaddr_deadbeefdeadbeefdeadbeefdeadbeef",
		PartnerName: "Former Partner",
		Active:      false,
	}))

	for _, key := range []string{
		"",
		"   ",
		"not-even-a-key",
		"omaddr_00000000000000000000000000000000",
		"omaddr_deadbeefdeadbeefdeadbeefdeadbeef",
	} {
		_, err := fx.partner.ValidateKey(ctx, key)
		assert.ErrorIs(t, err, domainerrors.ErrUnauthorizedAPIKey, "key %q", key)
	}
}

func TestPartnerService_RecordUsage_SoftFailure(t *testing.T) {
	keyRepo := &failingUsageKeyRepo{
		PartnerKeyRepository: memory.NewPartnerKeyRepository(),
		incrementErr:         errors.New("connection reset"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	partner := NewPartnerService(keyRepo, codegen.NewAPIKeyGenerator(), logger, nil)
	ctx := context.Background()

	key, err := partner.IssueKey(ctx, "Talabat")
	require.NoError(t, err)

	// Accounting failure is logged and swallowed.
	partner.RecordUsage(ctx, key.Key)

	stored, err := keyRepo.FindByKey(ctx, key.Key)
	require.NoError(t, err)
	assert.Zero(t, stored.UsageCount)
}
