// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"wasul/internal/domain/entity"
	"wasul/internal/errors"
)

// Domain-specific errors for address persistence.
var (
	// ErrAddressNotFound is returned when no record matches the phone or code.
	ErrAddressNotFound = errors.New("address not found")
	// ErrCodeAlreadyExists is returned when a freshly drawn code collides
	// with an existing record. The registration use case redraws on it.
	ErrCodeAlreadyExists = errors.New("address code already exists")
	// ErrPhoneAlreadyRegistered is returned when the phone already maps to
	// an active record.
	ErrPhoneAlreadyRegistered = errors.New("phone already registered")
)

// AddressRepository defines the interface for address-related database
// operations. The code and phone columns are unique; Create surfaces
// constraint violations as the sentinel errors above so the caller can
// tell a code collision (retryable) from a duplicate phone (rejected).
type AddressRepository interface {
	// Create persists a new address record. The mutation is durable before
	// Create returns.
	Create(ctx context.Context, address *entity.Address) error

	// FindByPhone retrieves an address by its normalized phone number.
	FindByPhone(ctx context.Context, phone string) (*entity.Address, error)

	// FindByCode retrieves an address by its address code.
	FindByCode(ctx context.Context, code string) (*entity.Address, error)

	// RecordDeliveryOutcome atomically increments the success or failure
	// counter of the addressed record and flips Verified once the success
	// counter reaches successThreshold. Verified never reverts. Returns
	// the updated record, or ErrAddressNotFound for an unknown code.
	RecordDeliveryOutcome(ctx context.Context, code string, success bool, successThreshold int) (*entity.Address, error)

	// CountAddresses returns the total number of registered addresses.
	CountAddresses(ctx context.Context) (int64, error)

	// CountVerified returns the number of verified addresses.
	CountVerified(ctx context.Context) (int64, error)
}
