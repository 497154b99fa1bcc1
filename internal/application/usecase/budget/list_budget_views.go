package budget

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ListBudgetViewsInput represents the input for listing budgets with their spend.
type ListBudgetViewsInput struct {
	UserID uuid.UUID
	Month  *aggregation.Month // Defaults to the current month
}

// ListBudgetViewsOutput represents the budgets of a user evaluated for one month.
type ListBudgetViewsOutput struct {
	Month   aggregation.Month
	Budgets []aggregation.BudgetView
}

// ListBudgetViewsUseCase pairs every budget with what was spent on its category.
type ListBudgetViewsUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	now             func() time.Time
}

// NewListBudgetViewsUseCase creates a new ListBudgetViewsUseCase instance.
func NewListBudgetViewsUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	now func() time.Time,
) *ListBudgetViewsUseCase {
	if now == nil {
		now = time.Now
	}
	return &ListBudgetViewsUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		now:             now,
	}
}

// Execute loads budgets and expenses and computes the month's budget views.
func (uc *ListBudgetViewsUseCase) Execute(ctx context.Context, input ListBudgetViewsInput) (*ListBudgetViewsOutput, error) {
	if input.UserID == uuid.Nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeNotAuthenticated,
			"not authenticated",
			domainerror.ErrNotAuthenticated,
		)
	}

	month := aggregation.MonthOrCurrent(input.Month, uc.now())

	budgets, err := uc.budgetRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, storeUnavailable(err)
	}

	expenses, err := uc.transactionRepo.FindByUserID(ctx, input.UserID, entity.TransactionFilter{
		Type: entity.TransactionTypeExpense,
	})
	if err != nil {
		return nil, storeUnavailable(err)
	}

	return &ListBudgetViewsOutput{
		Month:   month,
		Budgets: aggregation.BudgetViews(budgets, expenses, month),
	}, nil
}

func storeUnavailable(err error) error {
	return domainerror.NewDashboardError(
		domainerror.ErrCodeStoreUnavailable,
		"failed to load budget data",
		errors.Join(domainerror.ErrStoreUnavailable, err),
	)
}
