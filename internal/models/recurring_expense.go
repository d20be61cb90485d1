package models

import "time"

// RecurrenceRule is the supported set of repetition frequencies.
type RecurrenceRule string

const (
	RecurrenceDaily   RecurrenceRule = "daily"
	RecurrenceWeekly  RecurrenceRule = "weekly"
	RecurrenceMonthly RecurrenceRule = "monthly"
	RecurrenceYearly  RecurrenceRule = "yearly"
)

// RecurringExpense is a template that materializes into regular expenses when
// its next occurrence comes due. Materialization happens on demand, there is
// no background scheduler.
type RecurringExpense struct {
	Base
	HouseholdID    string         `gorm:"type:uuid;not null;index" json:"household_id"`
	WalletID       string         `gorm:"type:uuid;not null" json:"wallet_id"`
	CategoryID     string         `gorm:"type:uuid;not null" json:"category_id"`
	AmountCents    int64          `gorm:"type:bigint;not null" json:"amount_cents"`
	Currency       string         `gorm:"size:3;not null" json:"currency"`
	Description    string         `json:"description"`
	Rule           RecurrenceRule `gorm:"not null" json:"rule"`
	NextOccurrence time.Time      `gorm:"type:date;not null" json:"next_occurrence"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedBy      string         `gorm:"type:uuid;not null" json:"created_by"`
}
