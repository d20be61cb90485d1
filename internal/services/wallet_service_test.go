package services

import (
	"testing"

	"focolare/internal/testutil"
	"gorm.io/gorm"
)

func setupWalletFixture(t *testing.T) (*gorm.DB, WalletServicer, Scope) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	profile := testutil.CreateTestProfile(t, db)
	household := testutil.CreateTestHousehold(t, db, profile)
	return db, NewWalletService(db), Scope{ProfileID: profile.ID, HouseholdID: household.ID}
}

func TestCreateWallet(t *testing.T) {
	t.Run("valid_wallet", func(t *testing.T) {
		_, svc, scope := setupWalletFixture(t)

		wallet, err := svc.CreateWallet(scope, "Carta prepagata", "EUR")
		testutil.AssertNoError(t, err)
		if wallet.Name != "Carta prepagata" || !wallet.IsActive {
			t.Errorf("unexpected wallet %+v", wallet)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		_, svc, scope := setupWalletFixture(t)

		_, err := svc.CreateWallet(scope, "Contanti", "EUR")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateWallet(scope, "Contanti", "EUR")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("no_household", func(t *testing.T) {
		_, svc, _ := setupWalletFixture(t)

		_, err := svc.CreateWallet(Scope{ProfileID: "someone"}, "Contanti", "EUR")
		testutil.AssertAppError(t, err, "NO_HOUSEHOLD")
	})
}

func TestGetWalletByID(t *testing.T) {
	t.Run("cross_household_is_not_found", func(t *testing.T) {
		db, svc, scope := setupWalletFixture(t)

		otherProfile := testutil.CreateTestProfile(t, db)
		otherHousehold := testutil.CreateTestHousehold(t, db, otherProfile)
		foreign := testutil.CreateTestWallet(t, db, otherHousehold.ID)

		_, err := svc.GetWalletByID(scope, foreign.ID)
		testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")
	})
}

func TestDeleteWallet(t *testing.T) {
	t.Run("deletes_unused_wallet", func(t *testing.T) {
		db, svc, scope := setupWalletFixture(t)
		wallet := testutil.CreateTestWallet(t, db, scope.HouseholdID)

		testutil.AssertNoError(t, svc.DeleteWallet(scope, wallet.ID))
		_, err := svc.GetWalletByID(scope, wallet.ID)
		testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")
	})

	t.Run("refuses_wallet_with_expenses", func(t *testing.T) {
		db, svc, scope := setupWalletFixture(t)
		wallet := testutil.CreateTestWallet(t, db, scope.HouseholdID)
		category := testutil.CreateTestCategory(t, db, scope.HouseholdID)
		testutil.CreateTestExpense(t, db, scope.HouseholdID, wallet.ID, category.ID, scope.ProfileID, 1000, testutil.Date(2026, 3, 10))

		err := svc.DeleteWallet(scope, wallet.ID)
		testutil.AssertAppError(t, err, "WALLET_IN_USE")
	})
}

func TestUpdateWallet(t *testing.T) {
	t.Run("deactivates_wallet", func(t *testing.T) {
		db, svc, scope := setupWalletFixture(t)
		wallet := testutil.CreateTestWallet(t, db, scope.HouseholdID)

		inactive := false
		updated, err := svc.UpdateWallet(scope, wallet.ID, "", &inactive)
		testutil.AssertNoError(t, err)
		if updated.IsActive {
			t.Error("expected wallet to be inactive")
		}

		// Deactivated wallets disappear from the active listing.
		active, err := svc.GetWallets(scope, true)
		testutil.AssertNoError(t, err)
		for _, w := range active {
			if w.ID == wallet.ID {
				t.Error("expected deactivated wallet to be excluded from active listing")
			}
		}
	})
}
