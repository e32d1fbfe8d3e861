package usecase

import (
	"context"
)

// AddressView is the partner-facing projection of a stored address
type AddressView struct {
	AddressCode          string  `json:"address_code"`
	Phone                string  `json:"phone"`
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	POBox                string  `json:"po_box"`
	Area                 string  `json:"area"`
	City                 string  `json:"city"`
	DeliveryNotes        string  `json:"delivery_notes"`
	GoogleMapsLink       string  `json:"google_maps_link"`
	Verified             bool    `json:"verified"`
	SuccessfulDeliveries int     `json:"successful_deliveries"`
}

// ResolverUsecase defines the interface for partner address lookups
type ResolverUsecase interface {
	// Lookup resolves an address by phone or address code on behalf of
	// the partner identified by apiKey. Phone wins when both are given.
	Lookup(ctx context.Context, apiKey, phone, code string) (*AddressView, error)
}
