package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// BudgetRequest is the body of both create and full-replace update.
// AlertOnExceed defaults to false when omitted.
type BudgetRequest struct {
	Category      string           `json:"category" binding:"required,notblank,max=50"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	Period        string           `json:"period" binding:"omitempty,oneof=monthly"`
	AlertOnExceed bool             `json:"alertOnExceed"`
}

// BudgetResponse represents a stored budget.
type BudgetResponse struct {
	ID            string      `json:"id"`
	Category      string      `json:"category"`
	Amount        json.Number `json:"amount"`
	Period        string      `json:"period"`
	AlertOnExceed bool        `json:"alertOnExceed"`
}

// BudgetViewResponse is a budget with the month's spend against it.
type BudgetViewResponse struct {
	ID            string      `json:"id"`
	Category      string      `json:"category"`
	Amount        json.Number `json:"amount"`
	Period        string      `json:"period"`
	AlertOnExceed bool        `json:"alertOnExceed"`
	Spent         json.Number `json:"spent"`
	Utilization   json.Number `json:"utilization"`
}

// BudgetViewListResponse represents the budgets of a user for one month.
type BudgetViewListResponse struct {
	Month   string               `json:"month"`
	Budgets []BudgetViewResponse `json:"budgets"`
}

// ToBudgetResponse converts a Budget entity to BudgetResponse DTO.
func ToBudgetResponse(budget *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:            budget.ID.String(),
		Category:      budget.Category,
		Amount:        Money(budget.Amount),
		Period:        string(budget.Period),
		AlertOnExceed: budget.AlertOnExceed,
	}
}

// ToBudgetViewResponses converts budget views to their wire form.
func ToBudgetViewResponses(views []aggregation.BudgetView) []BudgetViewResponse {
	response := make([]BudgetViewResponse, len(views))
	for i, v := range views {
		response[i] = BudgetViewResponse{
			ID:            v.ID.String(),
			Category:      v.Category,
			Amount:        Money(v.Amount),
			Period:        string(v.Period),
			AlertOnExceed: v.AlertOnExceed,
			Spent:         Money(v.Spent),
			Utilization:   Money(v.Utilization()),
		}
	}
	return response
}

// ToBudgetViewListResponse builds the list response for a month.
func ToBudgetViewListResponse(month aggregation.Month, views []aggregation.BudgetView) BudgetViewListResponse {
	return BudgetViewListResponse{
		Month:   month.String(),
		Budgets: ToBudgetViewResponses(views),
	}
}
