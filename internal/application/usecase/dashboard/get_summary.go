package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
)

// GetSummaryInput represents the input for the all-time summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// GetSummaryOutput represents all-time income and expense totals.
type GetSummaryOutput struct {
	Summary aggregation.Summary
}

// GetSummaryUseCase totals every transaction of a user.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	txs, err := loadTransactions(ctx, uc.transactionRepo, input.UserID, "")
	if err != nil {
		return nil, err
	}

	return &GetSummaryOutput{
		Summary: aggregation.Summarize(txs),
	}, nil
}
