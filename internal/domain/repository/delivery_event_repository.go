package repository

import (
	"context"

	"wasul/internal/domain/entity"
)

// DeliveryEventRepository defines the interface for the append-only
// delivery outcome audit trail.
type DeliveryEventRepository interface {
	// Append persists a reported delivery outcome.
	Append(ctx context.Context, event *entity.DeliveryEvent) error

	// CountSuccessful returns the number of successful delivery reports.
	CountSuccessful(ctx context.Context) (int64, error)
}
