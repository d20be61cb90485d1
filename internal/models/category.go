package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// Category classifies expenses and carries a display color. IsDefault marks
// seed-provisioned rows for UI ordering; it has no behavioral meaning beyond
// that.
type Category struct {
	Base
	HouseholdID string       `gorm:"type:uuid;not null;index" json:"household_id"`
	Name        string       `gorm:"not null" json:"name"`
	Type        CategoryType `gorm:"not null" json:"type"`
	Color       string       `json:"color"`
	IsDefault   bool         `gorm:"default:false" json:"is_default"`
	IsActive    bool         `gorm:"default:true" json:"is_active"`
}
