package usecase

import (
	"context"

	"wasul/internal/domain/entity"
)

// DeliveryReportInput represents a partner's report of a delivery attempt
type DeliveryReportInput struct {
	AddressCode string `json:"address_code"`
	Success     bool   `json:"success"`
	Feedback    string `json:"feedback"`
}

// VerificationUsecase defines the interface for delivery outcome reporting
type VerificationUsecase interface {
	// Report records a delivery outcome against an address and returns
	// the address with its updated counters and verified flag
	Report(ctx context.Context, apiKey string, input *DeliveryReportInput) (*entity.Address, error)
}
