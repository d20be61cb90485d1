package services

import (
	"errors"
	"testing"

	"focolare/internal/models"
	"focolare/internal/testutil"
)

func TestProvision(t *testing.T) {
	t.Run("creates_and_links_household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBootstrapService(db, NewAuditService(db))
		profile := testutil.CreateTestProfile(t, db)

		provisioned, err := svc.Provision(profile.ID, "Casa Rossi")
		testutil.AssertNoError(t, err)

		if provisioned.HouseholdID == nil {
			t.Fatal("expected profile to be linked to a household")
		}

		var household models.Household
		testutil.AssertNoError(t, db.First(&household, "id = ?", *provisioned.HouseholdID).Error)
		if household.Name != "Casa Rossi" {
			t.Errorf("expected household name %q, got %q", "Casa Rossi", household.Name)
		}
	})

	t.Run("default_household_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBootstrapService(db, NewAuditService(db))
		profile := testutil.CreateTestProfile(t, db)

		provisioned, err := svc.Provision(profile.ID, "")
		testutil.AssertNoError(t, err)

		var household models.Household
		testutil.AssertNoError(t, db.First(&household, "id = ?", *provisioned.HouseholdID).Error)
		if household.Name != defaultHouseholdName {
			t.Errorf("expected default household name %q, got %q", defaultHouseholdName, household.Name)
		}
	})

	t.Run("seeds_default_wallets_and_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBootstrapService(db, NewAuditService(db))
		profile := testutil.CreateTestProfile(t, db)

		provisioned, err := svc.Provision(profile.ID, "")
		testutil.AssertNoError(t, err)
		householdID := *provisioned.HouseholdID

		var wallets []models.Wallet
		testutil.AssertNoError(t, db.Where("household_id = ?", householdID).Order("name ASC").Find(&wallets).Error)
		if len(wallets) != len(defaultWallets) {
			t.Fatalf("expected %d wallets, got %d", len(defaultWallets), len(wallets))
		}
		wantWallets := map[string]bool{
			"Conto famiglia": true,
			"Carta Claudio":  true,
			"Carta Partner":  true,
			"Contanti":       true,
		}
		for _, w := range wallets {
			if !wantWallets[w.Name] {
				t.Errorf("unexpected wallet %q", w.Name)
			}
			if w.Currency != "EUR" {
				t.Errorf("wallet %q: expected currency EUR, got %q", w.Name, w.Currency)
			}
			if !w.IsActive {
				t.Errorf("wallet %q: expected active", w.Name)
			}
		}

		var categories []models.Category
		testutil.AssertNoError(t, db.Where("household_id = ?", householdID).Find(&categories).Error)
		if len(categories) != len(defaultCategories) {
			t.Fatalf("expected %d categories, got %d", len(defaultCategories), len(categories))
		}
		wantColors := map[string]string{
			"Spesa":      "#0ea5e9",
			"Ristoranti": "#f97316",
			"Trasporti":  "#22c55e",
			"Casa":       "#eab308",
			"Salute":     "#ef4444",
		}
		for _, cat := range categories {
			color, ok := wantColors[cat.Name]
			if !ok {
				t.Errorf("unexpected category %q", cat.Name)
				continue
			}
			if cat.Color != color {
				t.Errorf("category %q: expected color %s, got %s", cat.Name, color, cat.Color)
			}
			if cat.Type != models.CategoryTypeExpense {
				t.Errorf("category %q: expected expense type, got %s", cat.Name, cat.Type)
			}
			if !cat.IsActive {
				t.Errorf("category %q: expected active", cat.Name)
			}
		}
	})

	t.Run("idempotent_for_provisioned_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBootstrapService(db, NewAuditService(db))
		profile := testutil.CreateTestProfile(t, db)

		first, err := svc.Provision(profile.ID, "Original")
		testutil.AssertNoError(t, err)
		second, err := svc.Provision(profile.ID, "Should be ignored")
		testutil.AssertNoError(t, err)

		if *first.HouseholdID != *second.HouseholdID {
			t.Errorf("expected same household, got %s and %s", *first.HouseholdID, *second.HouseholdID)
		}

		var households int64
		testutil.AssertNoError(t, db.Model(&models.Household{}).Count(&households).Error)
		if households != 1 {
			t.Errorf("expected 1 household, got %d", households)
		}

		var wallets int64
		testutil.AssertNoError(t, db.Model(&models.Wallet{}).Count(&wallets).Error)
		if wallets != int64(len(defaultWallets)) {
			t.Errorf("expected %d wallets, got %d", len(defaultWallets), wallets)
		}
	})

	t.Run("lost_race_rolls_back_orphan_household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBootstrapService(db, NewAuditService(db)).(*bootstrapService)
		profile := testutil.CreateTestProfile(t, db)

		// Another provision wins first.
		winner := testutil.CreateTestHousehold(t, db, profile)

		err := svc.provisionOnce(profile.ID, "Loser")
		if !errors.Is(err, errProvisionLost) {
			t.Fatalf("expected errProvisionLost, got %v", err)
		}

		// The losing transaction must leave nothing behind.
		var households int64
		testutil.AssertNoError(t, db.Model(&models.Household{}).Count(&households).Error)
		if households != 1 {
			t.Errorf("expected only the winning household, got %d", households)
		}

		var linked models.Profile
		testutil.AssertNoError(t, db.First(&linked, "id = ?", profile.ID).Error)
		if linked.HouseholdID == nil || *linked.HouseholdID != winner.ID {
			t.Error("expected profile to stay linked to the winning household")
		}
	})

	t.Run("reconciles_unseeded_household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBootstrapService(db, NewAuditService(db))
		profile := testutil.CreateTestProfile(t, db)

		// A household linked without defaults, as a crash between link and
		// seed would leave on stores without transactions.
		household := testutil.CreateTestHousehold(t, db, profile)

		_, err := svc.Provision(profile.ID, "")
		testutil.AssertNoError(t, err)

		var wallets, categories int64
		testutil.AssertNoError(t, db.Model(&models.Wallet{}).Where("household_id = ?", household.ID).Count(&wallets).Error)
		testutil.AssertNoError(t, db.Model(&models.Category{}).Where("household_id = ?", household.ID).Count(&categories).Error)
		if wallets != int64(len(defaultWallets)) {
			t.Errorf("expected %d wallets after reconcile, got %d", len(defaultWallets), wallets)
		}
		if categories != int64(len(defaultCategories)) {
			t.Errorf("expected %d categories after reconcile, got %d", len(defaultCategories), categories)
		}
	})

	t.Run("unknown_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBootstrapService(db, NewAuditService(db))

		_, err := svc.Provision("0199aaaa-0000-7000-8000-000000000000", "")
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}

func TestJoinByInvite(t *testing.T) {
	t.Run("joins_existing_household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		audit := NewAuditService(db)
		bootstrap := NewBootstrapService(db, audit)
		households := NewHouseholdService(db)
		profiles := NewProfileService(db)

		owner := testutil.CreateTestProfile(t, db)
		_, err := bootstrap.Provision(owner.ID, "")
		testutil.AssertNoError(t, err)
		ownerScope, err := profiles.ScopeFor(owner.ID)
		testutil.AssertNoError(t, err)

		invite, err := households.CreateInvite(ownerScope)
		testutil.AssertNoError(t, err)

		joiner := testutil.CreateTestProfile(t, db)
		joined, err := bootstrap.JoinByInvite(joiner.ID, invite.Code)
		testutil.AssertNoError(t, err)

		if joined.HouseholdID == nil || *joined.HouseholdID != ownerScope.HouseholdID {
			t.Error("expected joiner to be linked to the owner's household")
		}

		// No second household, no duplicate seeds.
		var households2 int64
		testutil.AssertNoError(t, db.Model(&models.Household{}).Count(&households2).Error)
		if households2 != 1 {
			t.Errorf("expected 1 household, got %d", households2)
		}
	})

	t.Run("invalid_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		bootstrap := NewBootstrapService(db, NewAuditService(db))
		profile := testutil.CreateTestProfile(t, db)

		_, err := bootstrap.JoinByInvite(profile.ID, "nope")
		testutil.AssertAppError(t, err, "INVITE_NOT_FOUND")
	})

	t.Run("already_provisioned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		bootstrap := NewBootstrapService(db, NewAuditService(db))
		profile := testutil.CreateTestProfile(t, db)
		testutil.CreateTestHousehold(t, db, profile)

		_, err := bootstrap.JoinByInvite(profile.ID, "whatever")
		testutil.AssertAppError(t, err, "ALREADY_PROVISIONED")
	})
}
