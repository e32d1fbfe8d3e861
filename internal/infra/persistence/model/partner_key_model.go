package model

import (
	"time"

	"github.com/google/uuid"
)

// PartnerKeyModel is the GORM-specific struct for the 'api_keys' table.
type PartnerKeyModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Key         string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_api_keys_key"`
	PartnerName string    `gorm:"type:varchar(255);not null"`
	UsageCount  int64     `gorm:"not null;default:0"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (PartnerKeyModel) TableName() string {
	return "api_keys"
}
