package models

import "time"

// Expense is a single ledger entry. Wallet and category must belong to the
// same household as the expense itself; the schema enforces this with
// composite foreign keys and the service layer re-checks it so the invariant
// also holds on test databases.
type Expense struct {
	Base
	HouseholdID string `gorm:"type:uuid;not null;index" json:"household_id"`
	WalletID    string `gorm:"type:uuid;not null" json:"wallet_id"`
	CategoryID  string `gorm:"type:uuid;not null" json:"category_id"`
	AmountCents int64  `gorm:"type:bigint;not null" json:"amount_cents"`
	Currency    string `gorm:"size:3;not null" json:"currency"`
	// Date is a calendar date stored at UTC midnight; period queries compare
	// dates inclusively on both ends.
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Description string    `json:"description"`
	CreatedBy   string    `gorm:"type:uuid;not null;index" json:"created_by"`

	// Relationships
	Wallet   *Wallet   `gorm:"foreignKey:WalletID" json:"wallet,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
