package transaction

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

// UpdateTransactionInput represents the input for a full transaction replace.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Category      string
	Description   string
	Type          entity.TransactionType
	Date          *time.Time // Keeps the stored date when nil
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	budgetChecker   BudgetAlertChecker
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetChecker BudgetAlertChecker,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		budgetChecker:   budgetChecker,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
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

	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	transaction.Amount = input.Amount
	transaction.Category = category
	transaction.Description = input.Description
	transaction.Type = input.Type
	if input.Date != nil {
		transaction.Date = *input.Date
	}
	transaction.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	notifyBudgets(ctx, uc.budgetChecker, transaction)

	return &UpdateTransactionOutput{
		Transaction: toOutput(transaction),
	}, nil
}
