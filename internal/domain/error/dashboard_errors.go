// Package error defines domain-specific errors for the Budget Tracker application.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrNotAuthenticated is returned when an aggregation is requested without a user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrStoreUnavailable is returned when the transaction or budget store cannot be read.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidMonth is returned when a month parameter is not in YYYY-MM format.
	ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonth DashboardErrorCode = "DSH-010001"

	// Authentication errors (02XXXX)
	ErrCodeNotAuthenticated DashboardErrorCode = "DSH-020001"

	// Internal errors (99XXXX)
	ErrCodeStoreUnavailable DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
