package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "focolare/internal/errors"
	"focolare/internal/logger"
	"focolare/internal/models"
)

const (
	provisionAttempts = 3
	provisionBackoff  = 100 * time.Millisecond
)

// errProvisionLost signals that a concurrent provision linked the profile
// first. It forces a rollback so the losing household row never survives.
var errProvisionLost = errors.New("profile already linked by a concurrent provision")

// bootstrapService provisions a household with its default wallets and
// categories the first time an identity is observed without one.
//
// Household creation, profile linking and seeding run in a single database
// transaction, and the link is a conditional update keyed on the profile
// still being unlinked. Under concurrent invocation exactly one transaction
// commits; the others roll back whole, leaving no orphan households and no
// household without its defaults.
type bootstrapService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewBootstrapService creates a new BootstrapServicer.
func NewBootstrapService(db *gorm.DB, audit AuditServicer) BootstrapServicer {
	return &bootstrapService{db: db, audit: audit}
}

// Provision guarantees the profile ends up with a seeded household.
// Repeated invocation for an already-provisioned profile is a no-op.
func (s *bootstrapService) Provision(profileID, householdName string) (*models.Profile, error) {
	profile, err := s.getProfile(profileID)
	if err != nil {
		return nil, err
	}

	// Already provisioned: reconcile seeds if a partial state ever left the
	// household without its defaults, then stop.
	if profile.HouseholdID != nil {
		if err := s.reconcileSeeds(*profile.HouseholdID); err != nil {
			return nil, err
		}
		return profile, nil
	}

	if householdName == "" {
		householdName = defaultHouseholdName
	}

	// Transient store failures are retried with backoff: partial provisioning
	// is worse than a delayed retry. Validation and authorization errors are
	// surfaced immediately.
	var lastErr error
	for attempt := 0; attempt < provisionAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(provisionBackoff << (attempt - 1))
		}

		err := s.provisionOnce(profileID, householdName)
		switch {
		case err == nil:
			provisioned, err := s.verifyProvisioned(profileID)
			if err != nil {
				return nil, err
			}
			s.audit.Log(profileID, *provisioned.HouseholdID, "bootstrap.provision", "household", *provisioned.HouseholdID, nil)
			return provisioned, nil
		case errors.Is(err, errProvisionLost):
			// A concurrent provision won; its committed state is ours too.
			return s.verifyProvisioned(profileID)
		default:
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code != apperrors.ErrStoreUnavailable.Code {
				return nil, err
			}
			lastErr = err
			logger.Get().Warnw("bootstrap attempt failed",
				"profile_id", profileID,
				"attempt", attempt+1,
				"error", err.Error(),
			)
		}
	}

	return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, lastErr)
}

// provisionOnce runs the atomic create-household-and-link-if-unlinked step.
func (s *bootstrapService) provisionOnce(profileID, householdName string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		household := &models.Household{Name: householdName}
		if err := tx.Create(household).Error; err != nil {
			return err
		}

		// Conditional link: only succeeds while the profile is still
		// unlinked, so household_id transitions null -> value exactly once.
		res := tx.Model(&models.Profile{}).
			Where("id = ? AND household_id IS NULL", profileID).
			Update("household_id", household.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errProvisionLost
		}

		// Seeding is part of the same transaction: a household must never be
		// committed without its defaults.
		return seedDefaults(tx, household.ID)
	})
}

// JoinByInvite links an unprovisioned profile to an existing household.
func (s *bootstrapService) JoinByInvite(profileID, code string) (*models.Profile, error) {
	profile, err := s.getProfile(profileID)
	if err != nil {
		return nil, err
	}
	if profile.HouseholdID != nil {
		return nil, apperrors.ErrAlreadyProvisioned
	}

	var invite models.HouseholdInvite
	if err := s.db.Where("code = ? AND expires_at > ?", code, time.Now()).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInviteNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	res := s.db.Model(&models.Profile{}).
		Where("id = ? AND household_id IS NULL", profileID).
		Update("household_id", invite.HouseholdID)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost against a concurrent provision; whatever linked first stands.
		return s.verifyProvisioned(profileID)
	}

	s.audit.Log(profileID, invite.HouseholdID, "bootstrap.join", "household", invite.HouseholdID, nil)
	return s.verifyProvisioned(profileID)
}

func (s *bootstrapService) getProfile(profileID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("id = ?", profileID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// verifyProvisioned re-reads the profile and confirms the household link.
// A profile still unlinked at this point means provisioning failed partway:
// callers get a retryable state distinct from "not yet provisioned".
func (s *bootstrapService) verifyProvisioned(profileID string) (*models.Profile, error) {
	profile, err := s.getProfile(profileID)
	if err != nil {
		return nil, err
	}
	if profile.HouseholdID == nil {
		return nil, apperrors.ErrProvisioningIncomplete
	}
	return profile, nil
}

// reconcileSeeds completes a household whose defaults are missing. Inserts
// are keyed on (household, name) so the operation is idempotent.
func (s *bootstrapService) reconcileSeeds(householdID string) error {
	var wallets, categories int64
	if err := s.db.Model(&models.Wallet{}).Where("household_id = ?", householdID).Count(&wallets).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.Category{}).Where("household_id = ?", householdID).Count(&categories).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if wallets > 0 && categories > 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return seedDefaults(tx, householdID)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// seedDefaults inserts the default wallets and categories that are not
// already present by name.
func seedDefaults(tx *gorm.DB, householdID string) error {
	for _, seed := range defaultWallets {
		var count int64
		if err := tx.Model(&models.Wallet{}).
			Where("household_id = ? AND name = ?", householdID, seed.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		wallet := seed
		wallet.HouseholdID = householdID
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}
	}

	for _, seed := range defaultCategories {
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("household_id = ? AND name = ?", householdID, seed.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		category := seed
		category.HouseholdID = householdID
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
	}

	return nil
}
