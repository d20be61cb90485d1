package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
)

// walletService handles wallet-related business logic.
type walletService struct {
	db *gorm.DB
}

// NewWalletService creates a new WalletServicer.
func NewWalletService(db *gorm.DB) WalletServicer {
	return &walletService{db: db}
}

// CreateWallet creates a new wallet in the scope's household.
func (s *walletService) CreateWallet(scope Scope, name, currency string) (*models.Wallet, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet name is required")
	}
	if currency == "" {
		currency = "EUR"
	}

	var count int64
	if err := s.db.Model(&models.Wallet{}).
		Where("household_id = ? AND name = ?", scope.HouseholdID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet with this name already exists")
	}

	wallet := &models.Wallet{
		HouseholdID: scope.HouseholdID,
		Name:        name,
		Currency:    currency,
		IsActive:    true,
	}
	if err := s.db.Create(wallet).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return wallet, nil
}

// GetWallets lists the household's wallets, optionally active ones only.
func (s *walletService) GetWallets(scope Scope, activeOnly bool) ([]models.Wallet, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	q := s.db.Where("household_id = ?", scope.HouseholdID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var wallets []models.Wallet
	if err := q.Order("name ASC").Find(&wallets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return wallets, nil
}

// GetWalletByID retrieves a wallet within the scope's household. A wallet of
// another household is reported as not found, never as forbidden, so its
// existence does not leak.
func (s *walletService) GetWalletByID(scope Scope, walletID string) (*models.Wallet, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	var wallet models.Wallet
	if err := s.db.Where("id = ? AND household_id = ?", walletID, scope.HouseholdID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &wallet, nil
}

// UpdateWallet renames and/or toggles a wallet.
func (s *walletService) UpdateWallet(scope Scope, walletID, name string, isActive *bool) (*models.Wallet, error) {
	wallet, err := s.GetWalletByID(scope, walletID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(wallet).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return wallet, nil
}

// DeleteWallet removes a wallet that no expense references. Wallets with
// history should be deactivated instead.
func (s *walletService) DeleteWallet(scope Scope, walletID string) error {
	wallet, err := s.GetWalletByID(scope, walletID)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.Expense{}).Where("wallet_id = ?", walletID).Count(&refs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refs > 0 {
		return apperrors.ErrWalletInUse
	}

	if err := s.db.Delete(wallet).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
