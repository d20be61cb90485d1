// Package errors provides custom error types for the Focolare API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Profile errors.
var (
	ErrProfileNotFound = &AppError{Code: "PROFILE_NOT_FOUND", Message: "Profile not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail  = &AppError{Code: "DUPLICATE_EMAIL", Message: "A profile with this email already exists", StatusCode: http.StatusConflict}
)

// Household & provisioning errors.
var (
	ErrHouseholdNotFound = &AppError{Code: "HOUSEHOLD_NOT_FOUND", Message: "Household not found", StatusCode: http.StatusNotFound}
	// ErrNoHousehold marks an identity that has not completed provisioning.
	// It is a distinct state from an empty household: writes are refused, not coerced.
	ErrNoHousehold = &AppError{Code: "NO_HOUSEHOLD", Message: "Profile is not assigned to a household yet", StatusCode: http.StatusConflict}
	// ErrProvisioningIncomplete signals that bootstrap left partial state behind and
	// should be retried, as opposed to "not yet provisioned".
	ErrProvisioningIncomplete = &AppError{Code: "PROVISIONING_INCOMPLETE", Message: "Household setup did not complete, retry", StatusCode: http.StatusConflict}
	ErrInviteNotFound         = &AppError{Code: "INVITE_NOT_FOUND", Message: "Invite code is invalid or expired", StatusCode: http.StatusNotFound}
	ErrAlreadyProvisioned     = &AppError{Code: "ALREADY_PROVISIONED", Message: "Profile already belongs to a household", StatusCode: http.StatusConflict}
)

// Wallet & category errors.
var (
	ErrWalletNotFound   = &AppError{Code: "WALLET_NOT_FOUND", Message: "Wallet not found", StatusCode: http.StatusNotFound}
	ErrWalletInUse      = &AppError{Code: "WALLET_IN_USE", Message: "Wallet is referenced by existing expenses", StatusCode: http.StatusConflict}
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse    = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is referenced by existing expenses", StatusCode: http.StatusConflict}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	// ErrNotExpenseAuthor enforces author-only mutation: household members may read
	// each other's expenses but only the author may change or delete them.
	ErrNotExpenseAuthor = &AppError{Code: "AUTHOR_ONLY", Message: "You may only edit your own expenses", StatusCode: http.StatusForbidden}
	ErrInvalidAmount    = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive decimal number", StatusCode: http.StatusBadRequest}
	ErrInvalidDate      = &AppError{Code: "INVALID_DATE", Message: "Date must be a calendar date in YYYY-MM-DD form", StatusCode: http.StatusBadRequest}
	ErrInvalidPeriod    = &AppError{Code: "INVALID_PERIOD", Message: "Period start must not be after period end", StatusCode: http.StatusBadRequest}
)

// Recurring expense errors.
var (
	ErrRecurringNotFound = &AppError{Code: "RECURRING_NOT_FOUND", Message: "Recurring expense not found", StatusCode: http.StatusNotFound}
	ErrInvalidRecurrence = &AppError{Code: "INVALID_RECURRENCE", Message: "Unsupported recurrence rule", StatusCode: http.StatusBadRequest}
)

// Store errors.
var (
	// ErrStoreUnavailable wraps retryable storage failures. Bootstrap retries these
	// with backoff; validation and authorization errors are never retried.
	ErrStoreUnavailable = &AppError{Code: "STORE_UNAVAILABLE", Message: "Storage is temporarily unavailable", StatusCode: http.StatusServiceUnavailable}
)
