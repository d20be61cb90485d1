package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"focolare/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProfile creates an unlinked profile with a hashed password and
// unique email.
func CreateTestProfile(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()
	email := fmt.Sprintf("member%d@test.com", nextID())
	return CreateTestProfileWithEmail(t, db, email)
}

// CreateTestProfileWithEmail creates an unlinked profile with the given email.
func CreateTestProfileWithEmail(t *testing.T, db *gorm.DB, email string) *models.Profile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	profile := &models.Profile{
		Email:    email,
		Password: string(hash),
		FullName: fmt.Sprintf("Member %d", nextID()),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestHousehold creates a household and links the given profile to it.
func CreateTestHousehold(t *testing.T, db *gorm.DB, profile *models.Profile) *models.Household {
	t.Helper()

	household := &models.Household{Name: fmt.Sprintf("Household %d", nextID())}
	if err := db.Create(household).Error; err != nil {
		t.Fatalf("failed to create test household: %v", err)
	}

	if profile != nil {
		if err := db.Model(profile).Update("household_id", household.ID).Error; err != nil {
			t.Fatalf("failed to link test profile: %v", err)
		}
		profile.HouseholdID = &household.ID
	}
	return household
}

// LinkProfile attaches an existing profile to an existing household.
func LinkProfile(t *testing.T, db *gorm.DB, profile *models.Profile, householdID string) {
	t.Helper()

	if err := db.Model(profile).Update("household_id", householdID).Error; err != nil {
		t.Fatalf("failed to link test profile: %v", err)
	}
	profile.HouseholdID = &householdID
}

// CreateTestWallet creates an active EUR wallet in the household.
func CreateTestWallet(t *testing.T, db *gorm.DB, householdID string) *models.Wallet {
	t.Helper()

	wallet := &models.Wallet{
		HouseholdID: householdID,
		Name:        fmt.Sprintf("Wallet %d", nextID()),
		Currency:    "EUR",
		IsActive:    true,
	}
	if err := db.Create(wallet).Error; err != nil {
		t.Fatalf("failed to create test wallet: %v", err)
	}
	return wallet
}

// CreateTestCategory creates an active expense category in the household.
func CreateTestCategory(t *testing.T, db *gorm.DB, householdID string) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, householdID, fmt.Sprintf("Category %d", nextID()))
}

// CreateTestCategoryWithName creates an active expense category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, householdID, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		HouseholdID: householdID,
		Name:        name,
		Type:        models.CategoryTypeExpense,
		Color:       "#0ea5e9",
		IsActive:    true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense on the given date with the given amount.
func CreateTestExpense(t *testing.T, db *gorm.DB, householdID, walletID, categoryID, createdBy string, amountCents int64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		HouseholdID: householdID,
		WalletID:    walletID,
		CategoryID:  categoryID,
		AmountCents: amountCents,
		Currency:    "EUR",
		Date:        models.DateOnly(date),
		Description: fmt.Sprintf("Expense %d", nextID()),
		CreatedBy:   createdBy,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// Date builds a UTC calendar date for test fixtures.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
