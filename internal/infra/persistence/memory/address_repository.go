// Package memory contains mutex-guarded in-memory implementations of the
// persistence interfaces. They back the service when no postgres is
// configured and keep the use case tests free of infrastructure.
package memory

import (
	"context"
	"sync"
	"time"

	"wasul/internal/domain/entity"
	"wasul/internal/domain/repository"

	"github.com/google/uuid"
)

// AddressRepository is the in-memory implementation of
// repository.AddressRepository. A single RWMutex guards both indexes so
// the check-and-insert of registration is one critical section.
type AddressRepository struct {
	mu      sync.RWMutex
	byCode  map[string]*entity.Address
	byPhone map[string]*entity.Address
}

// NewAddressRepository creates an empty in-memory address store.
func NewAddressRepository() *AddressRepository {
	return &AddressRepository{
		byCode:  make(map[string]*entity.Address),
		byPhone: make(map[string]*entity.Address),
	}
}

// Create persists a new address record.
func (s *AddressRepository) Create(_ context.Context, address *entity.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byPhone[address.Phone]; exists {
		return repository.ErrPhoneAlreadyRegistered
	}
	if _, exists := s.byCode[address.Code]; exists {
		return repository.ErrCodeAlreadyExists
	}

	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	now := time.Now()
	if address.CreatedAt.IsZero() {
		address.CreatedAt = now
	}
	address.UpdatedAt = now

	stored := cloneAddress(address)
	s.byCode[stored.Code] = stored
	s.byPhone[stored.Phone] = stored

	return nil
}

// FindByPhone retrieves an address by its normalized phone number.
func (s *AddressRepository) FindByPhone(_ context.Context, phone string) (*entity.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if address, exists := s.byPhone[phone]; exists {
		return cloneAddress(address), nil
	}

	return nil, repository.ErrAddressNotFound
}

// FindByCode retrieves an address by its address code.
func (s *AddressRepository) FindByCode(_ context.Context, code string) (*entity.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if address, exists := s.byCode[code]; exists {
		return cloneAddress(address), nil
	}

	return nil, repository.ErrAddressNotFound
}

// RecordDeliveryOutcome increments the outcome counter under the write
// lock, so concurrent reports for the same code never lose updates.
func (s *AddressRepository) RecordDeliveryOutcome(_ context.Context, code string, success bool, successThreshold int) (*entity.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, exists := s.byCode[code]
	if !exists {
		return nil, repository.ErrAddressNotFound
	}

	if success {
		address.SuccessfulDeliveries++
		if address.SuccessfulDeliveries >= successThreshold {
			address.Verified = true
		}
	} else {
		address.FailedDeliveries++
	}
	address.UpdatedAt = time.Now()

	return cloneAddress(address), nil
}

// CountAddresses returns the total number of registered addresses.
func (s *AddressRepository) CountAddresses(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.byCode)), nil
}

// CountVerified returns the number of verified addresses.
func (s *AddressRepository) CountVerified(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, address := range s.byCode {
		if address.Verified {
			count++
		}
	}

	return count, nil
}

// cloneAddress copies the record so callers never share mutable state
// with the store.
func cloneAddress(address *entity.Address) *entity.Address {
	cloned := *address

	return &cloned
}
