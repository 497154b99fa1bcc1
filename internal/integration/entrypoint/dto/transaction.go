package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
)

// TransactionRequest is the body of both create and full-replace update.
// Amount accepts a JSON number or a numeric string.
type TransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required,notblank,max=50"`
	Description string           `json:"description" binding:"max=255"`
	Type        string           `json:"type" binding:"required,oneof=income expense"`
	Date        string           `json:"date,omitempty"`
}

// TransactionListQuery holds the optional listing filters.
type TransactionListQuery struct {
	Category string `form:"category"`
	Type     string `form:"type" binding:"omitempty,oneof=income expense"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string      `json:"id"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Date        time.Time   `json:"date"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID.String(),
		Amount:      Money(txn.Amount),
		Category:    txn.Category,
		Description: txn.Description,
		Type:        string(txn.Type),
		Date:        txn.Date,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
	}
}
