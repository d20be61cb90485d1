package services

import (
	"time"

	"focolare/internal/models"
	"focolare/internal/pagination"
)

// Scope is the authorization context for a single request. It replaces any
// ambient "current user" state: every service call receives it explicitly.
// HouseholdID is empty for identities that have not completed bootstrap.
type Scope struct {
	ProfileID   string
	HouseholdID string
}

// Provisioned reports whether the scope carries a household assignment.
func (s Scope) Provisioned() bool {
	return s.HouseholdID != ""
}

// ProfileServicer defines the contract for identity and session logic.
type ProfileServicer interface {
	CreateProfile(email, password, fullName string) (*models.Profile, error)
	GetProfileByEmail(email string) (*models.Profile, error)
	GetProfileByID(id string) (*models.Profile, error)
	VerifyPassword(profile *models.Profile, password string) bool
	StoreRefreshTokenHash(profileID, tokenHash string) error
	GetRefreshTokenHash(profileID string) (string, error)
	// ScopeFor resolves the authorization scope for a profile. The returned
	// scope has an empty HouseholdID when the profile is not provisioned yet.
	ScopeFor(profileID string) (Scope, error)
}

// BootstrapServicer provisions households for new identities.
type BootstrapServicer interface {
	// Provision guarantees the profile ends up linked to a household seeded
	// with the default wallets and categories. Idempotent and safe under
	// concurrent invocation for the same identity.
	Provision(profileID, householdName string) (*models.Profile, error)
	// JoinByInvite links an unprovisioned profile to the invite's household
	// instead of creating a new one.
	JoinByInvite(profileID, code string) (*models.Profile, error)
}

// HouseholdServicer manages the household itself and its membership.
type HouseholdServicer interface {
	GetHousehold(scope Scope) (*models.Household, error)
	RenameHousehold(scope Scope, name string) (*models.Household, error)
	GetMembers(scope Scope) ([]models.Profile, error)
	CreateInvite(scope Scope) (*models.HouseholdInvite, error)
}

// WalletServicer defines the contract for wallet management.
type WalletServicer interface {
	CreateWallet(scope Scope, name, currency string) (*models.Wallet, error)
	GetWallets(scope Scope, activeOnly bool) ([]models.Wallet, error)
	GetWalletByID(scope Scope, walletID string) (*models.Wallet, error)
	UpdateWallet(scope Scope, walletID, name string, isActive *bool) (*models.Wallet, error)
	DeleteWallet(scope Scope, walletID string) error
}

// CategoryServicer defines the contract for category management.
type CategoryServicer interface {
	CreateCategory(scope Scope, name string, categoryType models.CategoryType, color string) (*models.Category, error)
	GetCategories(scope Scope, activeOnly bool) ([]models.Category, error)
	GetCategoryByID(scope Scope, categoryID string) (*models.Category, error)
	UpdateCategory(scope Scope, categoryID, name, color string, isActive *bool) (*models.Category, error)
	DeleteCategory(scope Scope, categoryID string) error
}

// ExpenseInput carries the caller-supplied fields of an expense. Amount is a
// decimal string; Date is a YYYY-MM-DD calendar date. Currency may be empty,
// in which case the household convention applies.
type ExpenseInput struct {
	WalletID    string
	CategoryID  string
	Amount      string
	Currency    string
	Date        string
	Description string
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	CategoryID *string
	WalletID   *string
	FromDate   *time.Time
	ToDate     *time.Time
	Search     *string
}

// ExpenseServicer defines the contract for the expense ledger.
type ExpenseServicer interface {
	CreateExpense(scope Scope, input ExpenseInput) (*models.Expense, error)
	GetExpenseByID(scope Scope, expenseID string) (*models.Expense, error)
	ListExpenses(scope Scope, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	// RecentExpenses returns a small capped list for dashboards. Aggregation
	// never goes through this path.
	RecentExpenses(scope Scope, limit int) ([]models.Expense, error)
	UpdateExpense(scope Scope, expenseID string, input ExpenseInput) (*models.Expense, error)
	DeleteExpense(scope Scope, expenseID string) error
}

// CategoryTotal is one row of a period summary.
type CategoryTotal struct {
	CategoryID    string `json:"category_id"`
	CategoryName  string `json:"category_name"`
	CategoryColor string `json:"category_color"`
	TotalCents    int64  `json:"total_cents"`
}

// PeriodSummary is the aggregation result over a closed date interval.
type PeriodSummary struct {
	Start           time.Time       `json:"start"`
	End             time.Time       `json:"end"`
	Categories      []CategoryTotal `json:"categories"`
	GrandTotalCents int64           `json:"grand_total_cents"`
}

// SummaryFilter narrows a summary to a single wallet and/or category.
type SummaryFilter struct {
	WalletID   *string
	CategoryID *string
}

// SummaryServicer computes per-category spending totals over date ranges.
type SummaryServicer interface {
	CategorySummary(scope Scope, start, end time.Time, filter SummaryFilter) (*PeriodSummary, error)
	MonthSummary(scope Scope, year int, month time.Month) (*PeriodSummary, error)
}

// RecurringInput carries the caller-supplied fields of a recurring expense
// template. StartDate is the first occurrence.
type RecurringInput struct {
	WalletID    string
	CategoryID  string
	Amount      string
	Currency    string
	Description string
	Rule        models.RecurrenceRule
	StartDate   string
}

// RecurringServicer manages recurring expense templates and their
// on-demand materialization.
type RecurringServicer interface {
	CreateRecurring(scope Scope, input RecurringInput) (*models.RecurringExpense, error)
	ListRecurring(scope Scope) ([]models.RecurringExpense, error)
	UpdateRecurring(scope Scope, recurringID string, isActive *bool) (*models.RecurringExpense, error)
	DeleteRecurring(scope Scope, recurringID string) error
	// RunDue materializes every elapsed occurrence of the household's active
	// templates into expenses and advances their next occurrence. Returns the
	// number of expenses created.
	RunDue(scope Scope, now time.Time) (int, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(profileID, householdID, action, resourceType, resourceID string, changes map[string]interface{})
}
