package usecase

import (
	"context"

	"wasul/internal/domain/entity"
)

// PartnerUsecase defines the interface for partner key management use cases
type PartnerUsecase interface {
	// IssueKey mints a new API key for the named partner
	IssueKey(ctx context.Context, partnerName string) (*entity.PartnerKey, error)

	// ValidateKey resolves an API key and rejects missing, unknown or
	// deactivated keys
	ValidateKey(ctx context.Context, key string) (*entity.PartnerKey, error)

	// RecordUsage bumps the usage counter of the key. Accounting is
	// best-effort: failures are logged, never surfaced to the caller.
	RecordUsage(ctx context.Context, key string)
}
