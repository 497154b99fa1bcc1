package aggregation

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// Summary holds income and expense totals over a set of transactions.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// CategorySpend is the expense total of one category.
type CategorySpend struct {
	Category string
	Total    decimal.Decimal
}

// TrendPoint is the expense total of one calendar month.
type TrendPoint struct {
	Month string
	Total decimal.Decimal
}

// BudgetView is a budget together with what has been spent against it.
type BudgetView struct {
	ID            uuid.UUID
	Category      string
	Amount        decimal.Decimal
	Period        entity.BudgetPeriod
	AlertOnExceed bool
	Spent         decimal.Decimal
}

// Utilization returns Spent / Amount. Values above 1 mean the budget is exceeded.
// The ratio is neither clamped nor rounded.
func (v BudgetView) Utilization() decimal.Decimal {
	if v.Amount.IsZero() {
		return decimal.Zero
	}
	return v.Spent.Div(v.Amount)
}

// Exceeded reports whether spending went over the budgeted amount.
func (v BudgetView) Exceeded() bool {
	return v.Spent.GreaterThan(v.Amount)
}

// Summarize totals income and expenses over every transaction, regardless of date.
func Summarize(txs []*entity.Transaction) Summary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, tx := range txs {
		switch tx.Type {
		case entity.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case entity.TransactionTypeExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}

	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}
}

// CategorySpendFor groups the month's expenses by exact category string.
// Groups are returned in the order their category first appears in txs, so the
// output is stable for identical input. Categories without expenses are omitted.
func CategorySpendFor(txs []*entity.Transaction, month Month) []CategorySpend {
	index := make(map[string]int)
	result := make([]CategorySpend, 0)

	for _, tx := range txs {
		if !tx.IsExpense() || !month.Contains(tx.Date) {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(result)
			index[tx.Category] = i
			result = append(result, CategorySpend{Category: tx.Category, Total: decimal.Zero})
		}
		result[i].Total = result[i].Total.Add(tx.Amount)
	}

	return result
}

// Trend sums expenses per calendar month of the transaction date, sorted
// ascending by month. Months without expenses are not filled in.
func Trend(txs []*entity.Transaction) []TrendPoint {
	totals := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		key := tx.Date.Format(MonthLayout)
		totals[key] = totals[key].Add(tx.Amount)
	}

	points := make([]TrendPoint, 0, len(totals))
	for month, total := range totals {
		points = append(points, TrendPoint{Month: month, Total: total})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Month < points[j].Month
	})

	return points
}

// BudgetViews pairs every budget with the month's expense total for its category.
// Budgets keep their input order; a category with no matching expense has Spent 0.
func BudgetViews(budgets []*entity.Budget, txs []*entity.Transaction, month Month) []BudgetView {
	spent := make(map[string]decimal.Decimal)
	for _, cs := range CategorySpendFor(txs, month) {
		spent[cs.Category] = cs.Total
	}

	views := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		views = append(views, BudgetView{
			ID:            b.ID,
			Category:      b.Category,
			Amount:        b.Amount,
			Period:        b.Period,
			AlertOnExceed: b.AlertOnExceed,
			Spent:         spent[b.Category],
		})
	}

	return views
}
