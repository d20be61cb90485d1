package models

// Profile is a household member's account record, linked 1:1 to an
// authenticated identity. HouseholdID is null until bootstrap completes and
// transitions exactly once from null to a concrete household.
type Profile struct {
	Base
	HouseholdID      *string `gorm:"type:uuid;index" json:"household_id"`
	FullName         string  `json:"full_name"`
	Email            string  `gorm:"uniqueIndex;not null" json:"email"`
	Password         string  `gorm:"not null" json:"-"`
	RefreshTokenHash string  `gorm:"size:64" json:"-"`

	// Relationships
	Household *Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
}
