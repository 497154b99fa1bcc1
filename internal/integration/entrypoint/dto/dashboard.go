package dto

import (
	"encoding/json"

	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// MonthQuery is the optional ?month=YYYY-MM parameter. Empty means current month.
type MonthQuery struct {
	Month string `form:"month" binding:"omitempty,month"`
}

// SummaryResponse represents all-time totals.
type SummaryResponse struct {
	TotalIncome   json.Number `json:"totalIncome"`
	TotalExpenses json.Number `json:"totalExpenses"`
	Balance       json.Number `json:"balance"`
}

// CategorySpendItem is the expense total of one category.
type CategorySpendItem struct {
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
}

// CategorySpendResponse represents the month's expenses per category.
type CategorySpendResponse struct {
	Month      string              `json:"month"`
	Categories []CategorySpendItem `json:"categories"`
}

// TrendPointResponse is the expense total of one month.
type TrendPointResponse struct {
	Month string      `json:"month"`
	Total json.Number `json:"total"`
}

// TrendResponse represents monthly expense totals, oldest first.
type TrendResponse struct {
	Trend []TrendPointResponse `json:"trend"`
}

// OverviewResponse bundles every dashboard view.
type OverviewResponse struct {
	Month      string               `json:"month"`
	Summary    SummaryResponse      `json:"summary"`
	Categories []CategorySpendItem  `json:"categories"`
	Trend      []TrendPointResponse `json:"trend"`
	Budgets    []BudgetViewResponse `json:"budgets"`
}

// CurrencyResponse represents a display currency.
type CurrencyResponse struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// CurrencyListResponse represents the supported currencies.
type CurrencyListResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToSummaryResponse converts an aggregation summary.
func ToSummaryResponse(s aggregation.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:   Money(s.TotalIncome),
		TotalExpenses: Money(s.TotalExpenses),
		Balance:       Money(s.Balance),
	}
}

// ToCategorySpendItems converts category spend groups.
func ToCategorySpendItems(groups []aggregation.CategorySpend) []CategorySpendItem {
	items := make([]CategorySpendItem, len(groups))
	for i, g := range groups {
		items[i] = CategorySpendItem{Category: g.Category, Total: Money(g.Total)}
	}
	return items
}

// ToCategorySpendResponse builds the category spend response for a month.
func ToCategorySpendResponse(month aggregation.Month, groups []aggregation.CategorySpend) CategorySpendResponse {
	return CategorySpendResponse{
		Month:      month.String(),
		Categories: ToCategorySpendItems(groups),
	}
}

// ToTrendPoints converts trend points.
func ToTrendPoints(points []aggregation.TrendPoint) []TrendPointResponse {
	items := make([]TrendPointResponse, len(points))
	for i, p := range points {
		items[i] = TrendPointResponse{Month: p.Month, Total: Money(p.Total)}
	}
	return items
}

// ToCurrencyListResponse converts the currency list.
func ToCurrencyListResponse(currencies []entity.Currency) CurrencyListResponse {
	response := CurrencyListResponse{
		Currencies: make([]CurrencyResponse, len(currencies)),
	}
	for i, c := range currencies {
		response.Currencies[i] = CurrencyResponse{Code: c.Code, Symbol: c.Symbol}
	}
	return response
}
