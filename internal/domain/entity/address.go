// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Address is the core entity for a registered home location. Homes in the
// covered regions often have no formal street address, so the address code
// is the stable identifier residents hand to delivery partners.
type Address struct {
	ID                   uuid.UUID // The Global Unique Identifier for the record.
	Code                 string    // Human-readable address code, e.g. "OM-MUS-4729A". Immutable once assigned.
	Phone                string    // Normalized phone number (digits only). Primary registration key.
	Latitude             float64   // The geographic latitude, in [-90, 90].
	Longitude            float64   // The geographic longitude, in [-180, 180].
	City                 string    // City name, e.g. "Muscat".
	Area                 string    // Area/neighborhood name, e.g. "Al Khuwair".
	POBox                string    // Optional P.O. Box number.
	DeliveryNotes        string    // Optional free-text delivery instructions.
	SuccessfulDeliveries int       // Count of confirmed successful deliveries. Never decreases.
	FailedDeliveries     int       // Count of reported failed deliveries. Never decreases.
	Verified             bool      // One-way false->true once enough deliveries succeed.
	CreatedAt            time.Time // Timestamp of registration. Immutable.
	UpdatedAt            time.Time // Timestamp of the last modification.
}

// GoogleMapsLink derives the navigable link for the address coordinates.
func (a *Address) GoogleMapsLink() string {
	return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", a.Latitude, a.Longitude)
}
