package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GetCategorySpendInput represents the input for a monthly category breakdown.
type GetCategorySpendInput struct {
	UserID uuid.UUID
	Month  *aggregation.Month // Defaults to the current month
}

// GetCategorySpendOutput represents the month's expense total per category.
type GetCategorySpendOutput struct {
	Month      aggregation.Month
	Categories []aggregation.CategorySpend
}

// GetCategorySpendUseCase groups one month of expenses by category.
type GetCategorySpendUseCase struct {
	transactionRepo adapter.TransactionRepository
	now             func() time.Time
}

// NewGetCategorySpendUseCase creates a new GetCategorySpendUseCase instance.
func NewGetCategorySpendUseCase(transactionRepo adapter.TransactionRepository, now func() time.Time) *GetCategorySpendUseCase {
	if now == nil {
		now = time.Now
	}
	return &GetCategorySpendUseCase{
		transactionRepo: transactionRepo,
		now:             now,
	}
}

// Execute computes the category spend.
func (uc *GetCategorySpendUseCase) Execute(ctx context.Context, input GetCategorySpendInput) (*GetCategorySpendOutput, error) {
	txs, err := loadTransactions(ctx, uc.transactionRepo, input.UserID, entity.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	month := aggregation.MonthOrCurrent(input.Month, uc.now())

	return &GetCategorySpendOutput{
		Month:      month,
		Categories: aggregation.CategorySpendFor(txs, month),
	}, nil
}
