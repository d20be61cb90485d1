package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
)

// inviteTTL bounds how long an invite code stays redeemable.
const inviteTTL = 7 * 24 * time.Hour

// householdService handles the household itself and its membership.
type householdService struct {
	db *gorm.DB
}

// NewHouseholdService creates a new HouseholdServicer.
func NewHouseholdService(db *gorm.DB) HouseholdServicer {
	return &householdService{db: db}
}

// GetHousehold returns the scope's household.
func (s *householdService) GetHousehold(scope Scope) (*models.Household, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	var household models.Household
	if err := s.db.Where("id = ?", scope.HouseholdID).First(&household).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHouseholdNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &household, nil
}

// RenameHousehold changes the household name, the only permitted mutation.
func (s *householdService) RenameHousehold(scope Scope, name string) (*models.Household, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "household name is required")
	}

	household, err := s.GetHousehold(scope)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(household).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return household, nil
}

// GetMembers lists the profiles belonging to the scope's household.
func (s *householdService) GetMembers(scope Scope) ([]models.Profile, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	var members []models.Profile
	if err := s.db.Where("household_id = ?", scope.HouseholdID).Order("created_at ASC").Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// CreateInvite issues a time-limited code another identity can register with
// to join this household.
func (s *householdService) CreateInvite(scope Scope) (*models.HouseholdInvite, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	code, err := newInviteCode()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	invite := &models.HouseholdInvite{
		HouseholdID: scope.HouseholdID,
		Code:        code,
		CreatedBy:   scope.ProfileID,
		ExpiresAt:   time.Now().Add(inviteTTL),
	}
	if err := s.db.Create(invite).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return invite, nil
}

func newInviteCode() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]), nil
}
