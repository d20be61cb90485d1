package models

// AuditLog records ledger mutations and provisioning events for traceability.
type AuditLog struct {
	Base
	ProfileID    string `gorm:"type:uuid;not null;index" json:"profile_id"`
	HouseholdID  string `gorm:"type:uuid;index" json:"household_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"type:uuid" json:"resource_id"`
	Changes      string `json:"changes,omitempty"`
}
