// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxCategoryLength matches the longest category name a user can create.
	MaxCategoryLength = 50
)

// BudgetAlertChecker is notified after an expense is written so exceeded budgets can alert.
type BudgetAlertChecker interface {
	CheckCategory(ctx context.Context, userID uuid.UUID, category string, at time.Time) error
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Category    string
	Description string
	Type        entity.TransactionType
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func toOutput(t *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:          t.ID,
		UserID:      t.UserID,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Type:        t.Type,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// fields are the user-supplied parts of a transaction, shared by create and update.
type fields struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	Type        entity.TransactionType
}

// validate checks the fields before any store access and returns the normalized category.
func (f fields) validate() (string, error) {
	if problem := entity.AmountProblem(f.Amount); problem != "" {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			problem,
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	category := strings.TrimSpace(f.Category)
	if category == "" {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionCategory,
			"Category cannot be empty",
			domainerror.ErrEmptyTransactionCategory,
		)
	}
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionCategory,
			fmt.Sprintf("Category must not exceed %d characters", MaxCategoryLength),
			domainerror.ErrEmptyTransactionCategory,
		)
	}

	if !f.Type.IsValid() {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"Type must be income or expense",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if utf8.RuneCountInString(f.Description) > MaxDescriptionLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("Description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	return category, nil
}

func notAuthenticated() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotAuthenticated,
		"not authenticated",
		domainerror.ErrNotAuthenticated,
	)
}

// notifyBudgets runs the budget check for an expense. Failures are logged, never returned.
func notifyBudgets(ctx context.Context, checker BudgetAlertChecker, t *entity.Transaction) {
	if checker == nil || !t.IsExpense() {
		return
	}
	if err := checker.CheckCategory(ctx, t.UserID, t.Category, t.Date); err != nil {
		slog.Warn("Budget alert check failed",
			"userID", t.UserID,
			"category", t.Category,
			"error", err,
		)
	}
}
