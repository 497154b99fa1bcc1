package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// UpdateBudgetInput represents the input for a full budget replace.
type UpdateBudgetInput struct {
	BudgetID      uuid.UUID
	UserID        uuid.UUID
	Category      string
	Amount        decimal.Decimal
	Period        entity.BudgetPeriod
	AlertOnExceed bool
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	if input.UserID == uuid.Nil {
		return nil, notAuthenticated()
	}

	category, err := validateBudget(input.Category, input.Amount, input.Period)
	if err != nil {
		return nil, err
	}

	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	if category != budget.Category {
		existing, err := uc.budgetRepo.FindByUserAndCategory(ctx, input.UserID, category)
		if err != nil {
			return nil, fmt.Errorf("failed to check budget existence: %w", err)
		}
		if existing != nil && existing.ID != budget.ID {
			return nil, budgetExists()
		}
	}

	budget.Category = category
	budget.Amount = input.Amount
	budget.Period = entity.BudgetPeriodMonthly
	budget.AlertOnExceed = input.AlertOnExceed
	budget.UpdatedAt = time.Now().UTC()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
			return nil, budgetExists()
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return &UpdateBudgetOutput{
		Budget: budget,
	}, nil
}

// findOwnedBudget loads a budget and checks it belongs to userID.
func findOwnedBudget(ctx context.Context, repo adapter.BudgetRepository, budgetID, userID uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	if budget.UserID != userID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeUnauthorizedBudgetAccess,
			"not authorized",
			domainerror.ErrUnauthorizedBudgetAccess,
		)
	}

	return budget, nil
}
