package services

import (
	"testing"
	"time"

	"focolare/internal/testutil"
	"gorm.io/gorm"
)

func setupSummaryFixture(t *testing.T) (*gorm.DB, SummaryServicer, householdFixture) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	profile := testutil.CreateTestProfile(t, db)
	household := testutil.CreateTestHousehold(t, db, profile)
	wallet := testutil.CreateTestWallet(t, db, household.ID)
	category := testutil.CreateTestCategory(t, db, household.ID)

	fx := householdFixture{
		scope:      Scope{ProfileID: profile.ID, HouseholdID: household.ID},
		walletID:   wallet.ID,
		categoryID: category.ID,
	}
	return db, NewSummaryService(db), fx
}

func TestCategorySummary(t *testing.T) {
	t.Run("sums_within_closed_interval", func(t *testing.T) {
		db, svc, fx := setupSummaryFixture(t)

		// Two March expenses count, the February one does not.
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 1000, testutil.Date(2026, 3, 10))
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 2000, testutil.Date(2026, 3, 20))
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 500, testutil.Date(2026, 2, 28))

		summary, err := svc.CategorySummary(fx.scope, testutil.Date(2026, 3, 1), testutil.Date(2026, 3, 31), SummaryFilter{})
		testutil.AssertNoError(t, err)

		if len(summary.Categories) != 1 {
			t.Fatalf("expected 1 category row, got %d", len(summary.Categories))
		}
		if summary.Categories[0].TotalCents != 3000 {
			t.Errorf("expected total 3000 cents, got %d", summary.Categories[0].TotalCents)
		}
		if summary.GrandTotalCents != 3000 {
			t.Errorf("expected grand total 3000 cents, got %d", summary.GrandTotalCents)
		}
	})

	t.Run("interval_endpoints_are_inclusive", func(t *testing.T) {
		db, svc, fx := setupSummaryFixture(t)

		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 100, testutil.Date(2026, 3, 1))
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 200, testutil.Date(2026, 3, 31))
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 400, testutil.Date(2026, 4, 1))

		summary, err := svc.CategorySummary(fx.scope, testutil.Date(2026, 3, 1), testutil.Date(2026, 3, 31), SummaryFilter{})
		testutil.AssertNoError(t, err)
		if summary.GrandTotalCents != 300 {
			t.Errorf("expected grand total 300 cents, got %d", summary.GrandTotalCents)
		}
	})

	t.Run("single_day_interval", func(t *testing.T) {
		db, svc, fx := setupSummaryFixture(t)

		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 700, testutil.Date(2026, 3, 15))

		day := testutil.Date(2026, 3, 15)
		summary, err := svc.CategorySummary(fx.scope, day, day, SummaryFilter{})
		testutil.AssertNoError(t, err)
		if summary.GrandTotalCents != 700 {
			t.Errorf("expected grand total 700 cents, got %d", summary.GrandTotalCents)
		}
	})

	t.Run("descending_totals_with_name_tiebreak", func(t *testing.T) {
		db, svc, fx := setupSummaryFixture(t)

		big := testutil.CreateTestCategoryWithName(t, db, fx.scope.HouseholdID, "Trasporti")
		tieA := testutil.CreateTestCategoryWithName(t, db, fx.scope.HouseholdID, "Casa")
		tieB := testutil.CreateTestCategoryWithName(t, db, fx.scope.HouseholdID, "Salute")

		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, big.ID, fx.scope.ProfileID, 5000, testutil.Date(2026, 3, 10))
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, tieB.ID, fx.scope.ProfileID, 1000, testutil.Date(2026, 3, 11))
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, tieA.ID, fx.scope.ProfileID, 1000, testutil.Date(2026, 3, 12))

		summary, err := svc.CategorySummary(fx.scope, testutil.Date(2026, 3, 1), testutil.Date(2026, 3, 31), SummaryFilter{})
		testutil.AssertNoError(t, err)

		if len(summary.Categories) != 3 {
			t.Fatalf("expected 3 category rows, got %d", len(summary.Categories))
		}
		got := []string{summary.Categories[0].CategoryName, summary.Categories[1].CategoryName, summary.Categories[2].CategoryName}
		want := []string{"Trasporti", "Casa", "Salute"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
			}
		}
	})

	t.Run("sparse_result_omits_unused_categories", func(t *testing.T) {
		db, svc, fx := setupSummaryFixture(t)

		testutil.CreateTestCategoryWithName(t, db, fx.scope.HouseholdID, "Mai usata")
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 100, testutil.Date(2026, 3, 10))

		summary, err := svc.CategorySummary(fx.scope, testutil.Date(2026, 3, 1), testutil.Date(2026, 3, 31), SummaryFilter{})
		testutil.AssertNoError(t, err)
		if len(summary.Categories) != 1 {
			t.Errorf("expected only categories with expenses, got %d rows", len(summary.Categories))
		}
	})

	t.Run("empty_interval", func(t *testing.T) {
		_, svc, fx := setupSummaryFixture(t)

		summary, err := svc.CategorySummary(fx.scope, testutil.Date(2026, 3, 1), testutil.Date(2026, 3, 31), SummaryFilter{})
		testutil.AssertNoError(t, err)
		if len(summary.Categories) != 0 {
			t.Errorf("expected no rows, got %d", len(summary.Categories))
		}
		if summary.GrandTotalCents != 0 {
			t.Errorf("expected zero grand total, got %d", summary.GrandTotalCents)
		}
	})

	t.Run("start_after_end", func(t *testing.T) {
		_, svc, fx := setupSummaryFixture(t)

		_, err := svc.CategorySummary(fx.scope, testutil.Date(2026, 3, 31), testutil.Date(2026, 3, 1), SummaryFilter{})
		testutil.AssertAppError(t, err, "INVALID_PERIOD")
	})

	t.Run("household_isolation", func(t *testing.T) {
		db, svc, fx := setupSummaryFixture(t)

		otherProfile := testutil.CreateTestProfile(t, db)
		otherHousehold := testutil.CreateTestHousehold(t, db, otherProfile)
		otherWallet := testutil.CreateTestWallet(t, db, otherHousehold.ID)
		otherCategory := testutil.CreateTestCategory(t, db, otherHousehold.ID)
		testutil.CreateTestExpense(t, db, otherHousehold.ID, otherWallet.ID, otherCategory.ID, otherProfile.ID, 9999, testutil.Date(2026, 3, 10))

		summary, err := svc.CategorySummary(fx.scope, testutil.Date(2026, 3, 1), testutil.Date(2026, 3, 31), SummaryFilter{})
		testutil.AssertNoError(t, err)
		if summary.GrandTotalCents != 0 {
			t.Errorf("expected other household's expenses to be invisible, got %d cents", summary.GrandTotalCents)
		}
	})

	t.Run("wallet_filter", func(t *testing.T) {
		db, svc, fx := setupSummaryFixture(t)

		otherWallet := testutil.CreateTestWallet(t, db, fx.scope.HouseholdID)
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 1000, testutil.Date(2026, 3, 10))
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, otherWallet.ID, fx.categoryID, fx.scope.ProfileID, 2000, testutil.Date(2026, 3, 11))

		summary, err := svc.CategorySummary(fx.scope, testutil.Date(2026, 3, 1), testutil.Date(2026, 3, 31), SummaryFilter{WalletID: &fx.walletID})
		testutil.AssertNoError(t, err)
		if summary.GrandTotalCents != 1000 {
			t.Errorf("expected 1000 cents from the filtered wallet, got %d", summary.GrandTotalCents)
		}
	})

	t.Run("no_household", func(t *testing.T) {
		_, svc, _ := setupSummaryFixture(t)

		_, err := svc.CategorySummary(Scope{ProfileID: "someone"}, testutil.Date(2026, 3, 1), testutil.Date(2026, 3, 31), SummaryFilter{})
		testutil.AssertAppError(t, err, "NO_HOUSEHOLD")
	})
}

func TestMonthSummary(t *testing.T) {
	t.Run("covers_whole_month", func(t *testing.T) {
		db, svc, fx := setupSummaryFixture(t)

		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 100, testutil.Date(2026, 2, 1))
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 200, testutil.Date(2026, 2, 28))
		testutil.CreateTestExpense(t, db, fx.scope.HouseholdID, fx.walletID, fx.categoryID, fx.scope.ProfileID, 400, testutil.Date(2026, 3, 1))

		summary, err := svc.MonthSummary(fx.scope, 2026, time.February)
		testutil.AssertNoError(t, err)
		if summary.GrandTotalCents != 300 {
			t.Errorf("expected 300 cents for February, got %d", summary.GrandTotalCents)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		_, svc, fx := setupSummaryFixture(t)

		_, err := svc.MonthSummary(fx.scope, 2026, time.Month(13))
		testutil.AssertAppError(t, err, "INVALID_PERIOD")
	})
}
