package model

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryEventModel is the GORM-specific struct for the 'deliveries' table.
type DeliveryEventModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AddressCode string    `gorm:"type:varchar(20);not null;index:idx_deliveries_address_code"`
	PartnerName string    `gorm:"type:varchar(255);not null"`
	Success     bool      `gorm:"not null"`
	Feedback    string    `gorm:"type:text"`
	DeliveredAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (DeliveryEventModel) TableName() string {
	return "deliveries"
}
