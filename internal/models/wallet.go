package models

// Wallet is a named money source an expense is drawn from (account, card, cash).
// Deactivated wallets are kept for history; deletion is only permitted when no
// expense references them.
type Wallet struct {
	Base
	HouseholdID string `gorm:"type:uuid;not null;index" json:"household_id"`
	Name        string `gorm:"not null" json:"name"`
	Currency    string `gorm:"size:3;not null" json:"currency"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}
