package main

import (
	"context"
	"log/slog"
	"os"

	"wasul/config"
	"wasul/internal/delivery"
	"wasul/internal/delivery/http"
	"wasul/internal/delivery/http/middleware"
	"wasul/internal/delivery/http/router/handler"
	"wasul/internal/domain/repository"
	"wasul/internal/domain/service"
	"wasul/internal/infra/codegen"
	logs "wasul/internal/infra/log"
	"wasul/internal/infra/metrics"
	"wasul/internal/infra/persistence/memory"
	"wasul/internal/infra/persistence/model"
	"wasul/internal/infra/persistence/postgres"
	"wasul/internal/infra/qrcode"
	"wasul/internal/usecase"
	"wasul/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			migrate,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		metrics.New,
	)
}

// The repository providers fall back to the in-memory stores when no
// postgres is configured.
func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newAddressRepository,
			newPartnerKeyRepository,
			newDeliveryEventRepository,
		),
	)
}

func newAddressRepository(db *gorm.DB) repository.AddressRepository {
	if db == nil {
		return memory.NewAddressRepository()
	}

	return postgres.NewAddressRepository(db)
}

func newPartnerKeyRepository(db *gorm.DB) repository.PartnerKeyRepository {
	if db == nil {
		return memory.NewPartnerKeyRepository()
	}

	return postgres.NewPartnerKeyRepository(db)
}

func newDeliveryEventRepository(db *gorm.DB) repository.DeliveryEventRepository {
	if db == nil {
		return memory.NewDeliveryEventRepository()
	}

	return postgres.NewDeliveryEventRepository(db)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			codegen.NewAddressCodeGenerator,
			codegen.NewAPIKeyGenerator,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			newPartnerService,
			newRegistryService,
			newResolverService,
			newVerificationService,
			newStatsService,
		),
	)
}

func newPartnerService(
	keyRepo repository.PartnerKeyRepository,
	keyGen service.APIKeyGenerator,
	logger *slog.Logger,
	m *metrics.Metrics,
) usecase.PartnerUsecase {
	return impl.NewPartnerService(keyRepo, keyGen, logger, m)
}

func newRegistryService(
	addressRepo repository.AddressRepository,
	codeGen service.AddressCodeGenerator,
	cfg *config.Config,
	m *metrics.Metrics,
) usecase.RegistryUsecase {
	return impl.NewRegistryService(addressRepo, codeGen, cfg.AddressCode.MaxAttempts, m)
}

func newResolverService(
	addressRepo repository.AddressRepository,
	partnerUC usecase.PartnerUsecase,
	m *metrics.Metrics,
) usecase.ResolverUsecase {
	return impl.NewResolverService(addressRepo, partnerUC, m)
}

func newVerificationService(
	addressRepo repository.AddressRepository,
	eventRepo repository.DeliveryEventRepository,
	partnerUC usecase.PartnerUsecase,
	cfg *config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) usecase.VerificationUsecase {
	return impl.NewVerificationService(addressRepo, eventRepo, partnerUC,
		cfg.Verification.SuccessThreshold, logger, m)
}

func newStatsService(
	addressRepo repository.AddressRepository,
	keyRepo repository.PartnerKeyRepository,
	eventRepo repository.DeliveryEventRepository,
	cfg *config.Config,
) usecase.StatsUsecase {
	return impl.NewStatsService(addressRepo, keyRepo, eventRepo, cfg.Billing.PricePerLookupUSD)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAPIKeyMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAddressHandler,
			handler.NewPartnerHandler,
			handler.NewStatsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// migrate keeps the schema in sync on startup. No-op on the in-memory
// fallback.
func migrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	return errors.Wrap(db.AutoMigrate(
		&model.AddressModel{},
		&model.PartnerKeyModel{},
		&model.DeliveryEventModel{},
	), "auto migrate failed")
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
