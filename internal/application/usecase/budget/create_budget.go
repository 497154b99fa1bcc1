// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID        uuid.UUID
	Category      string
	Amount        decimal.Decimal
	Period        entity.BudgetPeriod // Optional, defaults to monthly
	AlertOnExceed bool
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if input.UserID == uuid.Nil {
		return nil, notAuthenticated()
	}

	category, err := validateBudget(input.Category, input.Amount, input.Period)
	if err != nil {
		return nil, err
	}

	exists, err := uc.budgetRepo.ExistsByUserAndCategory(ctx, input.UserID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to check budget existence: %w", err)
	}
	if exists {
		return nil, budgetExists()
	}

	budget := entity.NewBudget(input.UserID, category, input.Amount, input.AlertOnExceed)
	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
			return nil, budgetExists()
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{
		Budget: budget,
	}, nil
}

// validateBudget checks user-supplied budget fields and returns the trimmed category.
func validateBudget(category string, amount decimal.Decimal, period entity.BudgetPeriod) (string, error) {
	if problem := entity.AmountProblem(amount); problem != "" {
		return "", domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			problem,
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return "", domainerror.NewBudgetError(
			domainerror.ErrCodeEmptyBudgetCategory,
			"Category cannot be empty",
			domainerror.ErrEmptyBudgetCategory,
		)
	}

	if period != "" && period != entity.BudgetPeriodMonthly {
		return "", domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"Period must be monthly",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	return category, nil
}

func budgetExists() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetAlreadyExists,
		"Budget already exists for this category",
		domainerror.ErrBudgetAlreadyExists,
	)
}

func notAuthenticated() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetNotAuthenticated,
		"not authenticated",
		domainerror.ErrNotAuthenticated,
	)
}
