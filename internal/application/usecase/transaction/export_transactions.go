package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

const (
	exportDateLayout         = "2006-01-02"
	missingDescriptionMarker = "N/A"
)

// ExportHeader is the first CSV row of every export.
var ExportHeader = []string{"Date", "Amount", "Type", "Category", "Description"}

// ExportTransactionsInput represents the input for a CSV export.
type ExportTransactionsInput struct {
	UserID uuid.UUID
}

// ExportTransactionsOutput holds the rows to encode, header first.
type ExportTransactionsOutput struct {
	Filename string
	Rows     [][]string
}

// ExportTransactionsUseCase renders every transaction of a user as CSV records.
type ExportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute loads the user's transactions, newest first, and formats one row per transaction.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	if input.UserID == uuid.Nil {
		return nil, notAuthenticated()
	}

	transactions, err := uc.transactionRepo.FindByUserID(ctx, input.UserID, entity.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for export: %w", err)
	}

	rows := make([][]string, 0, len(transactions)+1)
	rows = append(rows, ExportHeader)
	for _, t := range transactions {
		description := t.Description
		if description == "" {
			description = missingDescriptionMarker
		}
		rows = append(rows, []string{
			t.Date.Format(exportDateLayout),
			t.Amount.StringFixed(2),
			string(t.Type),
			t.Category,
			description,
		})
	}

	return &ExportTransactionsOutput{
		Filename: "transactions.csv",
		Rows:     rows,
	}, nil
}
