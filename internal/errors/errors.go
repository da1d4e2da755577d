// Package errors provides custom error types for the Presupuesto API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional per-field detail, and
// optional internal error.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Fields     []FieldError `json:"fields,omitempty"`
	StatusCode int          `json:"-"`
	Internal   error        `json:"-"`
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

// WithFields creates a new AppError carrying a per-field issue list.
// Used for validation failures so the client can surface every failing field.
func WithFields(sentinel *AppError, fields []FieldError) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Fields:     fields,
		StatusCode: sentinel.StatusCode,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput     = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrValidationFailed = &AppError{Code: "VALIDATION_FAILED", Message: "One or more fields failed validation", StatusCode: http.StatusBadRequest}
	ErrLookupFailed     = &AppError{Code: "LOOKUP_FAILED", Message: "Referenced value not found", StatusCode: http.StatusBadRequest}
	ErrNotFound         = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrConflict         = &AppError{Code: "CONFLICT", Message: "Resource already exists", StatusCode: http.StatusConflict}
	ErrInternalServer   = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "An active category with this name already exists", StatusCode: http.StatusConflict}
)

// Budget errors.
var (
	ErrTemplateNotFound   = &AppError{Code: "TEMPLATE_NOT_FOUND", Message: "Monthly template not found", StatusCode: http.StatusNotFound}
	ErrDuplicateTemplate  = &AppError{Code: "DUPLICATE_TEMPLATE", Message: "A template for this period already exists", StatusCode: http.StatusConflict}
	ErrBudgetItemNotFound = &AppError{Code: "BUDGET_ITEM_NOT_FOUND", Message: "Budget item not found", StatusCode: http.StatusNotFound}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
)

// Electronic invoice errors.
var (
	ErrInvoiceNotFound = &AppError{Code: "INVOICE_NOT_FOUND", Message: "Electronic invoice not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCUFE   = &AppError{Code: "DUPLICATE_CUFE", Message: "An invoice with this CUFE already exists", StatusCode: http.StatusConflict}
	ErrInvalidCUFE     = &AppError{Code: "INVALID_CUFE", Message: "Invalid CUFE code", StatusCode: http.StatusBadRequest}
)
