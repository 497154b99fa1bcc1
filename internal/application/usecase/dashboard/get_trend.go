package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GetTrendInput represents the input for the monthly spending trend.
type GetTrendInput struct {
	UserID uuid.UUID
}

// GetTrendOutput represents expense totals per month, oldest first.
type GetTrendOutput struct {
	Trend []aggregation.TrendPoint
}

// GetTrendUseCase sums a user's expenses per calendar month.
type GetTrendUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTrendUseCase creates a new GetTrendUseCase instance.
func NewGetTrendUseCase(transactionRepo adapter.TransactionRepository) *GetTrendUseCase {
	return &GetTrendUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute computes the trend.
func (uc *GetTrendUseCase) Execute(ctx context.Context, input GetTrendInput) (*GetTrendOutput, error) {
	txs, err := loadTransactions(ctx, uc.transactionRepo, input.UserID, entity.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	return &GetTrendOutput{
		Trend: aggregation.Trend(txs),
	}, nil
}
