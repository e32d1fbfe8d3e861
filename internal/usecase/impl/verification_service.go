package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"wasul/internal/domain/entity"
	domainerrors "wasul/internal/domain/errors"
	"wasul/internal/domain/repository"
	"wasul/internal/errors"
	"wasul/internal/infra/metrics"
	"wasul/internal/usecase"
)

type verificationService struct {
	addressRepo      repository.AddressRepository
	eventRepo        repository.DeliveryEventRepository
	partnerUC        usecase.PartnerUsecase
	successThreshold int
	logger           *slog.Logger
	metrics          *metrics.Metrics
}

// NewVerificationService creates a new delivery verification service instance
func NewVerificationService(
	addressRepo repository.AddressRepository,
	eventRepo repository.DeliveryEventRepository,
	partnerUC usecase.PartnerUsecase,
	successThreshold int,
	logger *slog.Logger,
	m *metrics.Metrics,
) usecase.VerificationUsecase {
	return &verificationService{
		addressRepo:      addressRepo,
		eventRepo:        eventRepo,
		partnerUC:        partnerUC,
		successThreshold: successThreshold,
		logger:           logger,
		metrics:          m,
	}
}

// Report records a delivery outcome against an address. The counter
// update is the authoritative mutation; the audit event and the usage
// accounting are best-effort and never fail the report.
func (s *verificationService) Report(ctx context.Context, apiKey string, input *usecase.DeliveryReportInput) (*entity.Address, error) {
	key, err := s.partnerUC.ValidateKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(input.AddressCode))
	if code == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("address_code must not be empty")
	}

	address, err := s.addressRepo.RecordDeliveryOutcome(ctx, code, input.Success, s.successThreshold)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrAddressNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "record delivery outcome")
	}

	event := &entity.DeliveryEvent{
		AddressCode: address.Code,
		PartnerName: key.PartnerName,
		Success:     input.Success,
		Feedback:    strings.TrimSpace(input.Feedback),
		DeliveredAt: time.Now(),
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "delivery audit append failed",
			slog.String("address_code", address.Code),
			slog.String("error", err.Error()))
	}

	s.partnerUC.RecordUsage(ctx, key.Key)

	if s.metrics != nil {
		outcome := "failure"
		if input.Success {
			outcome = "success"
		}
		s.metrics.VerificationsTotal.WithLabelValues(outcome).Inc()
	}

	return address, nil
}
