package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CheckBudgetAlertUseCase queues a notification when an expense pushes the
// current month's spend for a category over its budget.
type CheckBudgetAlertUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	userRepo        adapter.UserRepository
	notifier        adapter.BudgetAlertNotifier
	now             func() time.Time
}

// NewCheckBudgetAlertUseCase creates a new CheckBudgetAlertUseCase instance.
func NewCheckBudgetAlertUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	userRepo adapter.UserRepository,
	notifier adapter.BudgetAlertNotifier,
	now func() time.Time,
) *CheckBudgetAlertUseCase {
	if now == nil {
		now = time.Now
	}
	return &CheckBudgetAlertUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		now:             now,
	}
}

// CheckCategory evaluates the user's budget for category in the month of at.
// Expenses dated outside the current month never alert.
func (uc *CheckBudgetAlertUseCase) CheckCategory(ctx context.Context, userID uuid.UUID, category string, at time.Time) error {
	month := aggregation.MonthOf(uc.now())
	if !month.Contains(at) {
		return nil
	}

	budget, err := uc.budgetRepo.FindByUserAndCategory(ctx, userID, category)
	if err != nil {
		return fmt.Errorf("failed to find budget: %w", err)
	}
	if budget == nil || !budget.AlertOnExceed {
		return nil
	}

	expenses, err := uc.transactionRepo.FindByUserID(ctx, userID, entity.TransactionFilter{
		Category: category,
		Type:     entity.TransactionTypeExpense,
	})
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	view := aggregation.BudgetViews([]*entity.Budget{budget}, expenses, month)[0]
	if !view.Exceeded() {
		return nil
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if !user.BudgetAlerts {
		return nil
	}

	slog.Info("Budget exceeded",
		"userID", userID,
		"budgetID", budget.ID,
		"category", category,
		"month", month.String(),
		"spent", view.Spent.String(),
	)

	return uc.notifier.QueueBudgetExceeded(ctx, adapter.BudgetAlertInput{
		UserID:    userID,
		UserEmail: user.Email,
		UserName:  user.Name,
		BudgetID:  budget.ID,
		Category:  category,
		Month:     month.String(),
		Amount:    budget.Amount,
		Spent:     view.Spent,
	})
}
