package impl

import (
	"context"
	"log/slog"
	"strings"

	"wasul/internal/domain/entity"
	domainerrors "wasul/internal/domain/errors"
	"wasul/internal/domain/repository"
	"wasul/internal/domain/service"
	"wasul/internal/errors"
	"wasul/internal/infra/metrics"
	"wasul/internal/usecase"
)

// keyIssueAttempts bounds retries on the astronomically unlikely token
// collision.
const keyIssueAttempts = 3

type partnerService struct {
	keyRepo repository.PartnerKeyRepository
	keyGen  service.APIKeyGenerator
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewPartnerService creates a new partner key management service instance
func NewPartnerService(
	keyRepo repository.PartnerKeyRepository,
	keyGen service.APIKeyGenerator,
	logger *slog.Logger,
	m *metrics.Metrics,
) usecase.PartnerUsecase {
	return &partnerService{
		keyRepo: keyRepo,
		keyGen:  keyGen,
		logger:  logger,
		metrics: m,
	}
}

// IssueKey mints a new API key for the named partner. The same partner
// name may hold several keys; each key keeps its own usage counter.
func (s *partnerService) IssueKey(ctx context.Context, partnerName string) (*entity.PartnerKey, error) {
	name := strings.TrimSpace(partnerName)
	if name == "" {
		return nil, domainerrors.ErrPartnerNameRequired
	}

	for attempt := 0; attempt < keyIssueAttempts; attempt++ {
		token, err := s.keyGen.NewKey()
		if err != nil {
			return nil, domainerrors.ErrInternalError.WrapMessage("generate api key")
		}

		key := &entity.PartnerKey{
			Key:         token,
			PartnerName: name,
			Active:      true,
		}

		err = s.keyRepo.Create(ctx, key)
		switch {
		case err == nil:
			if s.metrics != nil {
				s.metrics.KeysIssuedTotal.Inc()
			}

			return key, nil
		case errors.Is(err, repository.ErrKeyAlreadyExists):
			continue
		default:
			return nil, domainerrors.NewDatabaseExecuteError(err, "create partner key")
		}
	}

	return nil, domainerrors.ErrInternalError.WithDetails("could not allocate a unique api key")
}

// ValidateKey resolves an API key and rejects missing, unknown or
// deactivated keys. Callers learn nothing beyond "invalid or inactive".
func (s *partnerService) ValidateKey(ctx context.Context, key string) (*entity.PartnerKey, error) {
	token := strings.TrimSpace(key)
	if token == "" {
		return nil, domainerrors.ErrUnauthorizedAPIKey
	}

	record, err := s.keyRepo.FindByKey(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, domainerrors.ErrUnauthorizedAPIKey
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "find partner key")
	}

	if !record.Active {
		return nil, domainerrors.ErrUnauthorizedAPIKey
	}

	return record, nil
}

// RecordUsage bumps the usage counter of the key. Accounting must never
// fail the partner-facing request, so errors are only logged.
func (s *partnerService) RecordUsage(ctx context.Context, key string) {
	if err := s.keyRepo.IncrementUsage(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "usage accounting failed",
			slog.String("error", err.Error()))
	}
}
