package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
)

// summaryService computes per-category spending totals.
type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db}
}

// periodQuery assembles the aggregation query from typed parts. Every
// predicate goes through a method, so the final SQL is built from bound
// parameters only and the set of filters stays visible in one place.
type periodQuery struct {
	householdID string
	start       time.Time
	end         time.Time
	walletID    *string
	categoryID  *string
}

func newPeriodQuery(householdID string, start, end time.Time) periodQuery {
	return periodQuery{
		householdID: householdID,
		start:       models.DateOnly(start),
		end:         models.DateOnly(end),
	}
}

func (q periodQuery) withWallet(walletID *string) periodQuery {
	q.walletID = walletID
	return q
}

func (q periodQuery) withCategory(categoryID *string) periodQuery {
	q.categoryID = categoryID
	return q
}

// apply builds the grouped query. Both interval endpoints are inclusive, and
// the ordering makes the result deterministic when totals tie.
func (q periodQuery) apply(db *gorm.DB) *gorm.DB {
	query := db.Model(&models.Expense{}).
		Select("expenses.category_id, categories.name AS category_name, categories.color AS category_color, SUM(expenses.amount_cents) AS total_cents").
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.household_id = ?", q.householdID).
		Where("expenses.date >= ? AND expenses.date <= ?", q.start, q.end)
	if q.walletID != nil {
		query = query.Where("expenses.wallet_id = ?", *q.walletID)
	}
	if q.categoryID != nil {
		query = query.Where("expenses.category_id = ?", *q.categoryID)
	}
	return query.
		Group("expenses.category_id, categories.name, categories.color").
		Order("total_cents DESC, category_name ASC")
}

// CategorySummary totals the household's expenses per category over the
// closed interval [start, end]. Categories without expenses in the interval
// are omitted; an interval with no expenses at all yields an empty list and
// a zero grand total. The result is never paginated: every matching row
// contributes to its category's total.
func (s *summaryService) CategorySummary(scope Scope, start, end time.Time, filter SummaryFilter) (*PeriodSummary, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	start = models.DateOnly(start)
	end = models.DateOnly(end)
	if start.After(end) {
		return nil, apperrors.ErrInvalidPeriod
	}

	query := newPeriodQuery(scope.HouseholdID, start, end).
		withWallet(filter.WalletID).
		withCategory(filter.CategoryID)

	var rows []CategoryTotal
	if err := query.apply(s.db).Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &PeriodSummary{
		Start:      start,
		End:        end,
		Categories: rows,
	}
	for _, row := range rows {
		summary.GrandTotalCents += row.TotalCents
	}
	return summary, nil
}

// MonthSummary totals a calendar month, the interval the dashboard shows.
func (s *summaryService) MonthSummary(scope Scope, year int, month time.Month) (*PeriodSummary, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, apperrors.ErrInvalidPeriod
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return s.CategorySummary(scope, start, end, SummaryFilter{})
}
