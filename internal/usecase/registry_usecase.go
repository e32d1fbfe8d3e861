// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"wasul/internal/domain/entity"
)

// RegisterAddressInput represents the input for registering an address
type RegisterAddressInput struct {
	Phone         string  `json:"phone"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	City          string  `json:"city"`
	Area          string  `json:"area"`
	POBox         string  `json:"po_box"`
	DeliveryNotes string  `json:"delivery_notes"`
}

// RegistryUsecase defines the interface for address registration use cases
type RegistryUsecase interface {
	// Register validates the input, mints a unique address code and
	// persists the new address record
	Register(ctx context.Context, input *RegisterAddressInput) (*entity.Address, error)
}
