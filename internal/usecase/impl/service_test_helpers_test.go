package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"wasul/config"
	"wasul/internal/domain/entity"
	"wasul/internal/domain/repository"
	"wasul/internal/infra/codegen"
	"wasul/internal/infra/persistence/memory"
	"wasul/internal/usecase"

	"github.com/stretchr/testify/require"
)

// serviceFixtures wires the full use case stack on the in-memory stores.
type serviceFixtures struct {
	addressRepo *memory.AddressRepository
	keyRepo     *memory.PartnerKeyRepository
	eventRepo   *memory.DeliveryEventRepository

	partner  usecase.PartnerUsecase
	registry usecase.RegistryUsecase
	resolver usecase.ResolverUsecase
	verifier usecase.VerificationUsecase
	stats    usecase.StatsUsecase
}

func createTestServices(t *testing.T) serviceFixtures {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	addressRepo := memory.NewAddressRepository()
	keyRepo := memory.NewPartnerKeyRepository()
	eventRepo := memory.NewDeliveryEventRepository()

	partner := NewPartnerService(keyRepo, codegen.NewAPIKeyGenerator(), logger, nil)

	return serviceFixtures{
		addressRepo: addressRepo,
		keyRepo:     keyRepo,
		eventRepo:   eventRepo,
		partner:     partner,
		registry: NewRegistryService(
			addressRepo,
			codegen.NewAddressCodeGenerator(cfg),
			cfg.AddressCode.MaxAttempts,
			nil,
		),
		resolver: NewResolverService(addressRepo, partner, nil),
		verifier: NewVerificationService(
			addressRepo,
			eventRepo,
			partner,
			cfg.Verification.SuccessThreshold,
			logger,
			nil,
		),
		stats: NewStatsService(addressRepo, keyRepo, eventRepo, cfg.Billing.PricePerLookupUSD),
	}
}

// registerTestAddress registers the canonical Muscat fixture address.
func (fx serviceFixtures) registerTestAddress(t *testing.T) *entity.Address {
	t.Helper()

	address, err := fx.registry.Register(context.Background(), &usecase.RegisterAddressInput{
		Phone:     "96891234567",
		Latitude:  23.5880,
		Longitude: 58.3829,
		City:      "Muscat",
		Area:      "Al Khuwair",
	})
	require.NoError(t, err)

	return address
}

// issueTestKey issues an active key for the named partner.
func (fx serviceFixtures) issueTestKey(t *testing.T, partnerName string) *entity.PartnerKey {
	t.Helper()

	key, err := fx.partner.IssueKey(context.Background(), partnerName)
	require.NoError(t, err)

	return key
}

// sequenceCodeGenerator replays a fixed list of codes, cycling on the
// last entry. Lets tests force code collisions deterministically.
type sequenceCodeGenerator struct {
	codes []string
	next  int
}

func (g *sequenceCodeGenerator) Generate(string) string {
	code := g.codes[g.next]
	if g.next < len(g.codes)-1 {
		g.next++
	}

	return code
}

// failingUsageKeyRepo makes usage accounting fail while everything else
// behaves, for exercising the soft-accounting contract.
type failingUsageKeyRepo struct {
	repository.PartnerKeyRepository
	incrementErr error
}

func (r *failingUsageKeyRepo) IncrementUsage(context.Context, string) error {
	return r.incrementErr
}
