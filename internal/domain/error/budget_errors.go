// Package error defines domain-specific errors for the Budget Tracker application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when the owner already has a budget for the category.
	ErrBudgetAlreadyExists = errors.New("budget already exists for this category")

	// ErrInvalidBudgetAmount is returned when the budget amount is zero or negative.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrEmptyBudgetCategory is returned when the budget category label is empty.
	ErrEmptyBudgetCategory = errors.New("empty budget category")

	// ErrInvalidBudgetPeriod is returned when the period is anything other than monthly.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrUnauthorizedBudgetAccess is returned when the caller does not own the budget.
	ErrUnauthorizedBudgetAccess = errors.New("unauthorized access to budget")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount BudgetErrorCode = "BUD-010001"
	ErrCodeEmptyBudgetCategory BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidBudgetPeriod BudgetErrorCode = "BUD-010003"
	ErrCodeMissingBudgetFields BudgetErrorCode = "BUD-010004"
	ErrCodeInvalidBudgetID     BudgetErrorCode = "BUD-010005"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound           BudgetErrorCode = "BUD-020001"
	ErrCodeUnauthorizedBudgetAccess BudgetErrorCode = "BUD-020002"
	ErrCodeBudgetNotAuthenticated   BudgetErrorCode = "BUD-020003"

	// Conflict errors (03XXXX)
	ErrCodeBudgetAlreadyExists BudgetErrorCode = "BUD-030001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
