// Package dashboard contains the read-only aggregation use cases: summary,
// category spend, spending trend and the combined overview. Each use case
// loads the caller's transactions and delegates grouping to the aggregation package.
package dashboard

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

func notAuthenticated() error {
	return domainerror.NewDashboardError(
		domainerror.ErrCodeNotAuthenticated,
		"not authenticated",
		domainerror.ErrNotAuthenticated,
	)
}

func storeUnavailable(err error) error {
	return domainerror.NewDashboardError(
		domainerror.ErrCodeStoreUnavailable,
		"failed to load transactions",
		errors.Join(domainerror.ErrStoreUnavailable, err),
	)
}

// loadTransactions reads the user's transactions, optionally restricted to one type.
func loadTransactions(
	ctx context.Context,
	repo adapter.TransactionRepository,
	userID uuid.UUID,
	txType entity.TransactionType,
) ([]*entity.Transaction, error) {
	if userID == uuid.Nil {
		return nil, notAuthenticated()
	}

	txs, err := repo.FindByUserID(ctx, userID, entity.TransactionFilter{Type: txType})
	if err != nil {
		return nil, storeUnavailable(err)
	}
	return txs, nil
}
