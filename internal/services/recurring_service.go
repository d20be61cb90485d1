package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
	"focolare/internal/money"
)

// recurringService manages recurring expense templates.
type recurringService struct {
	db              *gorm.DB
	audit           AuditServicer
	defaultCurrency string
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB, audit AuditServicer, defaultCurrency string) RecurringServicer {
	return &recurringService{db: db, audit: audit, defaultCurrency: defaultCurrency}
}

// CreateRecurring registers a template whose first occurrence is StartDate.
func (s *recurringService) CreateRecurring(scope Scope, input RecurringInput) (*models.RecurringExpense, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	amountCents, err := money.ParseCents(input.Amount)
	if err != nil {
		return nil, err
	}
	startDate, err := models.ParseDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	if !validRule(input.Rule) {
		return nil, apperrors.ErrInvalidRecurrence
	}
	if input.WalletID == "" || input.CategoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet and category are required")
	}

	currency := input.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	if err := s.resolveRef(&models.Wallet{}, scope, input.WalletID, apperrors.ErrWalletNotFound); err != nil {
		return nil, err
	}
	if err := s.resolveRef(&models.Category{}, scope, input.CategoryID, apperrors.ErrCategoryNotFound); err != nil {
		return nil, err
	}

	recurring := &models.RecurringExpense{
		HouseholdID:    scope.HouseholdID,
		WalletID:       input.WalletID,
		CategoryID:     input.CategoryID,
		AmountCents:    amountCents,
		Currency:       currency,
		Description:    input.Description,
		Rule:           input.Rule,
		NextOccurrence: startDate,
		IsActive:       true,
		CreatedBy:      scope.ProfileID,
	}
	if err := s.db.Create(recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(scope.ProfileID, scope.HouseholdID, "recurring.create", "recurring_expense", recurring.ID, nil)
	return recurring, nil
}

// ListRecurring lists the household's templates.
func (s *recurringService) ListRecurring(scope Scope) ([]models.RecurringExpense, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	var templates []models.RecurringExpense
	if err := s.db.Where("household_id = ?", scope.HouseholdID).
		Order("next_occurrence ASC").
		Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return templates, nil
}

// UpdateRecurring toggles a template. Amount or schedule changes are done by
// deleting and recreating, which keeps already-materialized expenses intact.
func (s *recurringService) UpdateRecurring(scope Scope, recurringID string, isActive *bool) (*models.RecurringExpense, error) {
	recurring, err := s.getByID(scope, recurringID)
	if err != nil {
		return nil, err
	}

	if isActive != nil {
		if err := s.db.Model(recurring).Update("is_active", *isActive).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return recurring, nil
}

// DeleteRecurring removes a template. Expenses it already materialized stay.
func (s *recurringService) DeleteRecurring(scope Scope, recurringID string) error {
	recurring, err := s.getByID(scope, recurringID)
	if err != nil {
		return err
	}
	if recurring.CreatedBy != scope.ProfileID {
		return apperrors.ErrNotExpenseAuthor
	}

	if err := s.db.Delete(recurring).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(scope.ProfileID, scope.HouseholdID, "recurring.delete", "recurring_expense", recurringID, nil)
	return nil
}

// RunDue materializes every elapsed occurrence of the household's active
// templates up to and including now, and advances their next occurrence.
// Each template is processed in its own transaction so one failing template
// does not roll back the others.
func (s *recurringService) RunDue(scope Scope, now time.Time) (int, error) {
	if !scope.Provisioned() {
		return 0, apperrors.ErrNoHousehold
	}
	today := models.DateOnly(now)

	var templates []models.RecurringExpense
	if err := s.db.Where("household_id = ? AND is_active = ? AND next_occurrence <= ?", scope.HouseholdID, true, today).
		Find(&templates).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	created := 0
	for i := range templates {
		n, err := s.materialize(&templates[i], today)
		if err != nil {
			return created, err
		}
		created += n
	}

	if created > 0 {
		s.audit.Log(scope.ProfileID, scope.HouseholdID, "recurring.run", "recurring_expense", "", map[string]interface{}{
			"expenses_created": created,
		})
	}
	return created, nil
}

func (s *recurringService) materialize(template *models.RecurringExpense, today time.Time) (int, error) {
	created := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		next := models.DateOnly(template.NextOccurrence)
		for !next.After(today) {
			expense := &models.Expense{
				HouseholdID: template.HouseholdID,
				WalletID:    template.WalletID,
				CategoryID:  template.CategoryID,
				AmountCents: template.AmountCents,
				Currency:    template.Currency,
				Date:        next,
				Description: template.Description,
				CreatedBy:   template.CreatedBy,
			}
			if err := tx.Create(expense).Error; err != nil {
				return err
			}
			created++
			next = advance(next, template.Rule)
		}
		return tx.Model(template).Update("next_occurrence", next).Error
	})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return created, nil
}

// advance computes the occurrence after date. Monthly and yearly steps land
// on the same day number, clamped to the target month's length (Jan 31 ->
// Feb 28, not Mar 3).
func advance(date time.Time, rule models.RecurrenceRule) time.Time {
	switch rule {
	case models.RecurrenceDaily:
		return date.AddDate(0, 0, 1)
	case models.RecurrenceWeekly:
		return date.AddDate(0, 0, 7)
	case models.RecurrenceMonthly:
		return addMonthsClamped(date, 1)
	case models.RecurrenceYearly:
		return addMonthsClamped(date, 12)
	default:
		return date.AddDate(0, 1, 0)
	}
}

func addMonthsClamped(date time.Time, months int) time.Time {
	year, month, day := date.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func validRule(rule models.RecurrenceRule) bool {
	switch rule {
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly, models.RecurrenceYearly:
		return true
	}
	return false
}

func (s *recurringService) getByID(scope Scope, recurringID string) (*models.RecurringExpense, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	var recurring models.RecurringExpense
	if err := s.db.Where("id = ? AND household_id = ?", recurringID, scope.HouseholdID).First(&recurring).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &recurring, nil
}

func (s *recurringService) resolveRef(model interface{}, scope Scope, id string, notFound *apperrors.AppError) error {
	var count int64
	if err := s.db.Model(model).Where("id = ? AND household_id = ?", id, scope.HouseholdID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return notFound
	}
	return nil
}
