// Package errors provides the application error taxonomy.
// Services return *AppError values so handlers can render a stable code and
// message without leaking internal details to clients.
package errors

import (
	"errors"
	"net/http"
)

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

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrEmptyName       = &AppError{Code: "EMPTY_NAME", Message: "Expense name is required", StatusCode: http.StatusBadRequest}
	ErrMissingDate     = &AppError{Code: "MISSING_DATE", Message: "Expense date is required", StatusCode: http.StatusBadRequest}
	ErrInvalidValue    = &AppError{Code: "INVALID_VALUE", Message: "Expense value may have at most two decimal places", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound      = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrInvalidBudgetAmount = &AppError{Code: "INVALID_BUDGET_AMOUNT", Message: "Budget amount must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidBudgetPeriod = &AppError{Code: "INVALID_BUDGET_PERIOD", Message: "Budget period must be weekly, monthly or yearly", StatusCode: http.StatusBadRequest}
)

// Export errors.
var (
	ErrInvalidExportFormat = &AppError{Code: "INVALID_EXPORT_FORMAT", Message: "Export format must be csv or json", StatusCode: http.StatusBadRequest}
	ErrExportFailed        = &AppError{Code: "EXPORT_FAILED", Message: "Expenses could not be exported", StatusCode: http.StatusInternalServerError}
)

// Settings errors.
var (
	ErrInvalidTheme    = &AppError{Code: "INVALID_THEME", Message: "Theme must be system, light or dark", StatusCode: http.StatusBadRequest}
	ErrInvalidCurrency = &AppError{Code: "INVALID_CURRENCY", Message: "Currency must be an ISO 4217 code", StatusCode: http.StatusBadRequest}
)
