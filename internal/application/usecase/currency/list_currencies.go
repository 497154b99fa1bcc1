// Package currency contains currency-related use cases.
package currency

import (
	"context"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ListCurrenciesOutput represents the supported display currencies.
type ListCurrenciesOutput struct {
	Currencies []entity.Currency
}

// ListCurrenciesUseCase returns the static currency list. Amounts are never converted.
type ListCurrenciesUseCase struct{}

// NewListCurrenciesUseCase creates a new ListCurrenciesUseCase instance.
func NewListCurrenciesUseCase() *ListCurrenciesUseCase {
	return &ListCurrenciesUseCase{}
}

// Execute returns the currencies.
func (uc *ListCurrenciesUseCase) Execute(ctx context.Context) (*ListCurrenciesOutput, error) {
	return &ListCurrenciesOutput{
		Currencies: entity.SupportedCurrencies(),
	}, nil
}
