package impl

import (
	"context"
	"strings"

	"wasul/internal/domain/entity"
	domainerrors "wasul/internal/domain/errors"
	"wasul/internal/domain/repository"
	"wasul/internal/errors"
	"wasul/internal/infra/metrics"
	"wasul/internal/usecase"
)

type resolverService struct {
	addressRepo repository.AddressRepository
	partnerUC   usecase.PartnerUsecase
	metrics     *metrics.Metrics
}

// NewResolverService creates a new address lookup service instance
func NewResolverService(
	addressRepo repository.AddressRepository,
	partnerUC usecase.PartnerUsecase,
	m *metrics.Metrics,
) usecase.ResolverUsecase {
	return &resolverService{
		addressRepo: addressRepo,
		partnerUC:   partnerUC,
		metrics:     m,
	}
}

// Lookup resolves an address by phone or address code on behalf of the
// partner identified by apiKey. Phone wins when both keys are given.
func (s *resolverService) Lookup(ctx context.Context, apiKey, phone, code string) (*usecase.AddressView, error) {
	key, err := s.partnerUC.ValidateKey(ctx, apiKey)
	if err != nil {
		s.countLookup("unauthorized")

		return nil, err
	}

	phone = strings.TrimSpace(phone)
	code = strings.ToUpper(strings.TrimSpace(code))
	if phone == "" && code == "" {
		return nil, domainerrors.ErrLookupKeyMissing
	}

	address, err := s.resolve(ctx, phone, code)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			s.countLookup("miss")

			return nil, domainerrors.ErrAddressNotFound
		}
		s.countLookup("error")

		return nil, domainerrors.NewDatabaseExecuteError(err, "resolve address")
	}

	// Every resolved lookup is billable, so account before returning.
	s.partnerUC.RecordUsage(ctx, key.Key)
	s.countLookup("hit")

	return &usecase.AddressView{
		AddressCode:          address.Code,
		Phone:                address.Phone,
		Latitude:             address.Latitude,
		Longitude:            address.Longitude,
		POBox:                address.POBox,
		Area:                 address.Area,
		City:                 address.City,
		DeliveryNotes:        address.DeliveryNotes,
		GoogleMapsLink:       address.GoogleMapsLink(),
		Verified:             address.Verified,
		SuccessfulDeliveries: address.SuccessfulDeliveries,
	}, nil
}

func (s *resolverService) resolve(ctx context.Context, phone, code string) (*entity.Address, error) {
	if phone != "" {
		normalized, err := NormalizePhone(phone)
		if err != nil {
			// Fall through to the code when the phone is malformed and a
			// code was also supplied.
			if code == "" {
				return nil, err
			}
		} else {
			address, err := s.addressRepo.FindByPhone(ctx, normalized)
			if err == nil {
				return address, nil
			}
			if !errors.Is(err, repository.ErrAddressNotFound) || code == "" {
				return nil, err
			}
		}
	}

	return s.addressRepo.FindByCode(ctx, code)
}

func (s *resolverService) countLookup(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.LookupsTotal.WithLabelValues(result).Inc()
}
