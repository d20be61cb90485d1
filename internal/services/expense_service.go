package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
	"focolare/internal/money"
	"focolare/internal/pagination"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 100
)

// expenseService handles the expense ledger.
type expenseService struct {
	db              *gorm.DB
	audit           AuditServicer
	defaultCurrency string
}

// NewExpenseService creates a new ExpenseServicer. defaultCurrency is the
// household convention applied when the caller does not state a currency.
func NewExpenseService(db *gorm.DB, audit AuditServicer, defaultCurrency string) ExpenseServicer {
	return &expenseService{db: db, audit: audit, defaultCurrency: defaultCurrency}
}

// CreateExpense records a new expense authored by the scope's profile.
// Wallet and category must resolve within the scope's household.
func (s *expenseService) CreateExpense(scope Scope, input ExpenseInput) (*models.Expense, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	amountCents, err := money.ParseCents(input.Amount)
	if err != nil {
		return nil, err
	}
	date, err := models.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}
	if input.WalletID == "" || input.CategoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet and category are required")
	}

	currency := input.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	if err := s.resolveWallet(scope, input.WalletID); err != nil {
		return nil, err
	}
	if err := s.resolveCategory(scope, input.CategoryID); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		HouseholdID: scope.HouseholdID,
		WalletID:    input.WalletID,
		CategoryID:  input.CategoryID,
		AmountCents: amountCents,
		Currency:    currency,
		Date:        date,
		Description: input.Description,
		CreatedBy:   scope.ProfileID,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(scope.ProfileID, scope.HouseholdID, "expense.create", "expense", expense.ID, map[string]interface{}{
		"amount_cents": amountCents,
		"category_id":  expense.CategoryID,
		"wallet_id":    expense.WalletID,
	})
	return expense, nil
}

// GetExpenseByID retrieves an expense within the scope's household.
func (s *expenseService) GetExpenseByID(scope Scope, expenseID string) (*models.Expense, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	var expense models.Expense
	if err := s.db.Preload("Wallet").Preload("Category").
		Where("id = ? AND household_id = ?", expenseID, scope.HouseholdID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// ListExpenses retrieves a paginated, filtered list of the household's expenses.
func (s *expenseService) ListExpenses(scope Scope, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("household_id = ?", scope.HouseholdID)
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Preload("Wallet").Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("date DESC, created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.WalletID != nil {
		q = q.Where("wallet_id = ?", *f.WalletID)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", models.DateOnly(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", models.DateOnly(*f.ToDate))
	}
	if f.Search != nil && *f.Search != "" {
		q = q.Where("description LIKE ?", "%"+*f.Search+"%")
	}
	return q
}

// RecentExpenses returns the household's latest expenses, capped. This is the
// dashboard list; aggregation deliberately does not share this code path
// because the cap would silently undercount totals.
func (s *expenseService) RecentExpenses(scope Scope, limit int) ([]models.Expense, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	var expenses []models.Expense
	if err := s.db.Preload("Wallet").Preload("Category").
		Where("household_id = ?", scope.HouseholdID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// UpdateExpense modifies an expense. Only the author may mutate it; another
// household member's attempt fails loudly with an authorization error.
func (s *expenseService) UpdateExpense(scope Scope, expenseID string, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(scope, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CreatedBy != scope.ProfileID {
		return nil, apperrors.ErrNotExpenseAuthor
	}

	updates := make(map[string]interface{})
	if input.Amount != "" {
		amountCents, err := money.ParseCents(input.Amount)
		if err != nil {
			return nil, err
		}
		updates["amount_cents"] = amountCents
	}
	if input.Date != "" {
		date, err := models.ParseDate(input.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = date
	}
	if input.WalletID != "" && input.WalletID != expense.WalletID {
		if err := s.resolveWallet(scope, input.WalletID); err != nil {
			return nil, err
		}
		updates["wallet_id"] = input.WalletID
	}
	if input.CategoryID != "" && input.CategoryID != expense.CategoryID {
		if err := s.resolveCategory(scope, input.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = input.CategoryID
	}
	if input.Currency != "" {
		updates["currency"] = input.Currency
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	s.audit.Log(scope.ProfileID, scope.HouseholdID, "expense.update", "expense", expense.ID, nil)
	return expense, nil
}

// DeleteExpense hard-deletes an expense authored by the scope's profile.
func (s *expenseService) DeleteExpense(scope Scope, expenseID string) error {
	expense, err := s.GetExpenseByID(scope, expenseID)
	if err != nil {
		return err
	}
	if expense.CreatedBy != scope.ProfileID {
		return apperrors.ErrNotExpenseAuthor
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(scope.ProfileID, scope.HouseholdID, "expense.delete", "expense", expenseID, nil)
	return nil
}

// resolveWallet confirms the wallet exists inside the scope's household.
func (s *expenseService) resolveWallet(scope Scope, walletID string) error {
	var count int64
	if err := s.db.Model(&models.Wallet{}).
		Where("id = ? AND household_id = ?", walletID, scope.HouseholdID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrWalletNotFound
	}
	return nil
}

// resolveCategory confirms the category exists inside the scope's household.
func (s *expenseService) resolveCategory(scope Scope, categoryID string) error {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND household_id = ?", categoryID, scope.HouseholdID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
