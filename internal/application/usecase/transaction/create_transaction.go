package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Category    string
	Description string
	Type        entity.TransactionType
	Date        *time.Time // Defaults to now when nil
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	budgetChecker   BudgetAlertChecker
	now             func() time.Time
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
// budgetChecker may be nil when alerts are disabled.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetChecker BudgetAlertChecker,
	now func() time.Time,
) *CreateTransactionUseCase {
	if now == nil {
		now = time.Now
	}
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		budgetChecker:   budgetChecker,
		now:             now,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if input.UserID == uuid.Nil {
		return nil, notAuthenticated()
	}

	category, err := fields{
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Type:        input.Type,
	}.validate()
	if err != nil {
		return nil, err
	}

	date := uc.now()
	if input.Date != nil {
		date = *input.Date
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Amount,
		category,
		input.Description,
		input.Type,
		date,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	notifyBudgets(ctx, uc.budgetChecker, transaction)

	return &CreateTransactionOutput{
		Transaction: toOutput(transaction),
	}, nil
}
