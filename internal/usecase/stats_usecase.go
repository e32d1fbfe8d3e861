package usecase

import (
	"context"
)

// Stats is the aggregate service snapshot exposed on the stats endpoint
type Stats struct {
	TotalAddresses       int64   `json:"total_addresses"`
	VerifiedAddresses    int64   `json:"verified_addresses"`
	SuccessfulDeliveries int64   `json:"successful_deliveries"`
	ActivePartners       int64   `json:"active_partners"`
	TotalLookups         int64   `json:"total_lookups"`
	RevenueEstimateUSD   float64 `json:"revenue_estimate_usd"`
}

// StatsUsecase defines the interface for service statistics
type StatsUsecase interface {
	// Collect gathers the current aggregate counters
	Collect(ctx context.Context) (*Stats, error)
}
