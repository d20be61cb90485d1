package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
)

// profileService handles identity-related business logic.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// CreateProfile registers a new identity. The profile starts without a
// household; bootstrap assigns one.
func (s *profileService) CreateProfile(email, password, fullName string) (*models.Profile, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	var count int64
	if err := s.db.Model(&models.Profile{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	profile := &models.Profile{
		Email:    strings.ToLower(email),
		Password: string(hashedPassword),
		FullName: fullName,
	}

	if err := s.db.Create(profile).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return profile, nil
}

// GetProfileByEmail retrieves a profile by email
func (s *profileService) GetProfileByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// GetProfileByID retrieves a profile by ID
func (s *profileService) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *profileService) VerifyPassword(profile *models.Profile, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password))
	return err == nil
}

// StoreRefreshTokenHash persists the hash of the profile's current refresh token.
func (s *profileService) StoreRefreshTokenHash(profileID, tokenHash string) error {
	res := s.db.Model(&models.Profile{}).Where("id = ?", profileID).Update("refresh_token_hash", tokenHash)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash for a profile.
func (s *profileService) GetRefreshTokenHash(profileID string) (string, error) {
	profile, err := s.GetProfileByID(profileID)
	if err != nil {
		return "", err
	}
	return profile.RefreshTokenHash, nil
}

// ScopeFor resolves the authorization scope for a profile.
func (s *profileService) ScopeFor(profileID string) (Scope, error) {
	profile, err := s.GetProfileByID(profileID)
	if err != nil {
		return Scope{}, err
	}
	scope := Scope{ProfileID: profile.ID}
	if profile.HouseholdID != nil {
		scope.HouseholdID = *profile.HouseholdID
	}
	return scope, nil
}
