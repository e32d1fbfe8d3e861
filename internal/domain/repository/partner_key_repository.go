package repository

import (
	"context"

	"wasul/internal/domain/entity"
	"wasul/internal/errors"
)

// Domain-specific errors for partner key persistence.
var (
	// ErrKeyNotFound is returned when no partner key matches the token.
	// Callers translate it to a generic unauthorized error so absent and
	// malformed keys are indistinguishable to partners.
	ErrKeyNotFound = errors.New("partner key not found")
	// ErrKeyAlreadyExists is returned on a token collision at issuance.
	ErrKeyAlreadyExists = errors.New("partner key already exists")
)

// PartnerKeyRepository defines the interface for API key persistence.
// Usage increments are atomic per key.
type PartnerKeyRepository interface {
	// Create persists a newly issued partner key.
	Create(ctx context.Context, key *entity.PartnerKey) error

	// FindByKey retrieves a partner key by its token.
	FindByKey(ctx context.Context, key string) (*entity.PartnerKey, error)

	// IncrementUsage atomically increments the usage counter of the key.
	IncrementUsage(ctx context.Context, key string) error

	// CountActive returns the number of active partner keys.
	CountActive(ctx context.Context) (int64, error)

	// TotalUsage returns the sum of usage counters across all keys.
	TotalUsage(ctx context.Context) (int64, error)
}
