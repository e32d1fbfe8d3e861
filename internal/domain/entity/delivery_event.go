package entity

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryEvent is one reported delivery outcome for an address. Events are
// append-only and form the audit trail behind the per-address counters.
type DeliveryEvent struct {
	ID          uuid.UUID // The Global Unique Identifier for the record.
	AddressCode string    // The address code the delivery targeted.
	PartnerName string    // The partner that reported the outcome.
	Success     bool      // Whether the delivery succeeded.
	Feedback    string    // Optional free-text feedback from the courier.
	DeliveredAt time.Time // Timestamp of the report.
}
