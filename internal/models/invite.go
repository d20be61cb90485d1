package models

import "time"

// HouseholdInvite lets an existing member bring a new identity into the
// household. Registering with a valid code links the new profile to the
// invite's household instead of provisioning a fresh one.
type HouseholdInvite struct {
	Base
	HouseholdID string    `gorm:"type:uuid;not null;index" json:"household_id"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`
	CreatedBy   string    `gorm:"type:uuid;not null" json:"created_by"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
}
