package impl

import (
	"context"

	domainerrors "wasul/internal/domain/errors"
	"wasul/internal/domain/repository"
	"wasul/internal/usecase"
)

type statsService struct {
	addressRepo       repository.AddressRepository
	keyRepo           repository.PartnerKeyRepository
	eventRepo         repository.DeliveryEventRepository
	pricePerLookupUSD float64
}

// NewStatsService creates a new service statistics instance
func NewStatsService(
	addressRepo repository.AddressRepository,
	keyRepo repository.PartnerKeyRepository,
	eventRepo repository.DeliveryEventRepository,
	pricePerLookupUSD float64,
) usecase.StatsUsecase {
	return &statsService{
		addressRepo:       addressRepo,
		keyRepo:           keyRepo,
		eventRepo:         eventRepo,
		pricePerLookupUSD: pricePerLookupUSD,
	}
}

// Collect gathers the current aggregate counters. The revenue estimate
// is billed usage times the per-lookup price.
func (s *statsService) Collect(ctx context.Context) (*usecase.Stats, error) {
	totalAddresses, err := s.addressRepo.CountAddresses(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "count addresses")
	}

	verifiedAddresses, err := s.addressRepo.CountVerified(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "count verified addresses")
	}

	successfulDeliveries, err := s.eventRepo.CountSuccessful(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "count successful deliveries")
	}

	activePartners, err := s.keyRepo.CountActive(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "count active partners")
	}

	totalLookups, err := s.keyRepo.TotalUsage(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "sum key usage")
	}

	return &usecase.Stats{
		TotalAddresses:       totalAddresses,
		VerifiedAddresses:    verifiedAddresses,
		SuccessfulDeliveries: successfulDeliveries,
		ActivePartners:       activePartners,
		TotalLookups:         totalLookups,
		RevenueEstimateUSD:   float64(totalLookups) * s.pricePerLookupUSD,
	}, nil
}
