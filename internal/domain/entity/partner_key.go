package entity

import (
	"time"

	"github.com/google/uuid"
)

// PartnerKey is an API key issued to a delivery partner. The key string is
// the opaque secret the partner presents on every billable call; usage is
// metered per key so two keys for the same partner bill independently.
type PartnerKey struct {
	ID          uuid.UUID // The Global Unique Identifier for the record.
	Key         string    // Opaque secret token, e.g. "omaddr_<32 hex chars>". Unique.
	PartnerName string    // Name of the delivery partner or merchant.
	UsageCount  int64     // Billable calls made with this key. Never decreases.
	Active      bool      // Inactive keys fail validation without revealing why.
	CreatedAt   time.Time // Timestamp of issuance.
}
