package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel is the GORM-specific struct for the 'addresses' table.
type AddressModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Code                 string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_addresses_code"`
	Phone                string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_addresses_phone"`
	Latitude             float64   `gorm:"type:decimal(10,8);not null"`
	Longitude            float64   `gorm:"type:decimal(11,8);not null"`
	City                 string    `gorm:"type:varchar(100);not null"`
	Area                 string    `gorm:"type:varchar(100);not null"`
	POBox                string    `gorm:"type:varchar(20)"`
	DeliveryNotes        string    `gorm:"type:text"`
	SuccessfulDeliveries int       `gorm:"not null;default:0"`
	FailedDeliveries     int       `gorm:"not null;default:0"`
	Verified             bool      `gorm:"not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
