package models

// Household is the isolation boundary: every wallet, category and expense
// belongs to exactly one household, and profiles only ever see rows of their
// own household. Created once by bootstrap, immutable except rename.
type Household struct {
	Base
	Name string `gorm:"not null" json:"name"`

	// Relationships
	Profiles   []Profile  `gorm:"foreignKey:HouseholdID" json:"profiles,omitempty"`
	Wallets    []Wallet   `gorm:"foreignKey:HouseholdID" json:"wallets,omitempty"`
	Categories []Category `gorm:"foreignKey:HouseholdID" json:"categories,omitempty"`
	Expenses   []Expense  `gorm:"foreignKey:HouseholdID" json:"expenses,omitempty"`
}
