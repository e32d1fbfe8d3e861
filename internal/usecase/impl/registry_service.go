// Package impl provides the implementations of the use case interfaces.
package impl

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"wasul/internal/domain/entity"
	domainerrors "wasul/internal/domain/errors"
	"wasul/internal/domain/repository"
	"wasul/internal/domain/service"
	"wasul/internal/errors"
	"wasul/internal/infra/metrics"
	"wasul/internal/usecase"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

type registryService struct {
	addressRepo repository.AddressRepository
	codeGen     service.AddressCodeGenerator
	maxAttempts int
	metrics     *metrics.Metrics
}

// NewRegistryService creates a new address registration service instance
func NewRegistryService(
	addressRepo repository.AddressRepository,
	codeGen service.AddressCodeGenerator,
	maxAttempts int,
	m *metrics.Metrics,
) usecase.RegistryUsecase {
	return &registryService{
		addressRepo: addressRepo,
		codeGen:     codeGen,
		maxAttempts: maxAttempts,
		metrics:     m,
	}
}

// Register validates the input, mints a unique address code and persists
// the new address record.
func (s *registryService) Register(ctx context.Context, input *usecase.RegisterAddressInput) (*entity.Address, error) {
	phone, err := NormalizePhone(input.Phone)
	if err != nil {
		s.countRegistration("rejected")

		return nil, err
	}

	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		s.countRegistration("rejected")

		return nil, domainerrors.ErrInvalidCoordinates
	}

	city := strings.TrimSpace(input.City)
	area := strings.TrimSpace(input.Area)
	if city == "" || area == "" {
		s.countRegistration("rejected")

		return nil, domainerrors.ErrValidationFailed.WithDetails("city and area must not be empty")
	}

	// A friendly conflict for the common case. The unique index on phone
	// still catches the race between this check and the insert.
	if existing, err := s.addressRepo.FindByPhone(ctx, phone); err == nil {
		s.countRegistration("rejected")

		return nil, domainerrors.ErrPhoneAlreadyRegistered.WithDetails(
			fmt.Sprintf("already registered with code %s", existing.Code))
	} else if !errors.Is(err, repository.ErrAddressNotFound) {
		s.countRegistration("error")

		return nil, domainerrors.NewDatabaseExecuteError(err, "find address by phone")
	}

	address := &entity.Address{
		Phone:         phone,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		City:          city,
		Area:          area,
		POBox:         strings.TrimSpace(input.POBox),
		DeliveryNotes: strings.TrimSpace(input.DeliveryNotes),
	}

	// Redraw the random suffix on code collision. The suffix space per
	// city is 260k, so more than a couple of rounds means the city is
	// effectively full.
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		address.Code = s.codeGen.Generate(city)

		err := s.addressRepo.Create(ctx, address)
		switch {
		case err == nil:
			s.countRegistration("created")

			return address, nil
		case errors.Is(err, repository.ErrCodeAlreadyExists):
			continue
		case errors.Is(err, repository.ErrPhoneAlreadyRegistered):
			s.countRegistration("rejected")

			return nil, domainerrors.ErrPhoneAlreadyRegistered
		default:
			s.countRegistration("error")

			return nil, domainerrors.NewDatabaseExecuteError(err, "create address")
		}
	}

	s.countRegistration("error")

	return nil, domainerrors.ErrCodeSpaceExhausted
}

func (s *registryService) countRegistration(status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RegistrationsTotal.WithLabelValues(status).Inc()
}

// NormalizePhone strips formatting characters and validates the digit
// count. "+968 9123-4567" and "96891234567" normalize to the same key.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	digits.Grow(len(raw))

	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	normalized := digits.String()
	if len(normalized) < minPhoneDigits || len(normalized) > maxPhoneDigits {
		return "", domainerrors.ErrInvalidPhone
	}

	return normalized, nil
}
