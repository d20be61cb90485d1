package models

import (
	"time"

	"focolare/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables.
//
// There is no gorm.DeletedAt here on purpose: expense deletion is hard by
// contract, and wallets/categories use is_active for soft deactivation.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
