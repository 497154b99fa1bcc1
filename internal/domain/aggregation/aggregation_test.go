package aggregation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

func tx(txType entity.TransactionType, amount string, category string, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Type:     txType,
		Date:     date,
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

// scenarioTransactions is the three-transaction log used across the scenario tests.
func scenarioTransactions() []*entity.Transaction {
	return []*entity.Transaction{
		tx(entity.TransactionTypeExpense, "50", "Food", day(2024, time.January, 5)),
		tx(entity.TransactionTypeExpense, "30", "Food", day(2024, time.February, 10)),
		tx(entity.TransactionTypeIncome, "1000", "Salary", day(2024, time.February, 1)),
	}
}

func expectDecimal(t *testing.T, name string, expected string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(expected)) {
		t.Errorf("expected %s %s, got %s", name, expected, got.String())
	}
}

func TestSummarize(t *testing.T) {
	t.Run("scenario totals", func(t *testing.T) {
		summary := Summarize(scenarioTransactions())

		expectDecimal(t, "total income", "1000", summary.TotalIncome)
		expectDecimal(t, "total expenses", "80", summary.TotalExpenses)
		expectDecimal(t, "balance", "920", summary.Balance)
	})

	t.Run("empty log yields zeros", func(t *testing.T) {
		summary := Summarize(nil)

		expectDecimal(t, "total income", "0", summary.TotalIncome)
		expectDecimal(t, "total expenses", "0", summary.TotalExpenses)
		expectDecimal(t, "balance", "0", summary.Balance)
	})

	t.Run("balance can be negative", func(t *testing.T) {
		summary := Summarize([]*entity.Transaction{
			tx(entity.TransactionTypeIncome, "10.10", "Salary", day(2024, time.March, 1)),
			tx(entity.TransactionTypeExpense, "25.25", "Rent", day(2023, time.March, 1)),
		})

		expectDecimal(t, "balance", "-15.15", summary.Balance)
	})

	t.Run("balance equals income minus expenses", func(t *testing.T) {
		txs := []*entity.Transaction{
			tx(entity.TransactionTypeIncome, "0.10", "A", day(2024, time.May, 1)),
			tx(entity.TransactionTypeIncome, "0.20", "A", day(2024, time.May, 2)),
			tx(entity.TransactionTypeExpense, "0.30", "B", day(2024, time.June, 1)),
			tx(entity.TransactionTypeExpense, "99.99", "C", day(2025, time.June, 1)),
		}
		summary := Summarize(txs)

		if !summary.Balance.Equal(summary.TotalIncome.Sub(summary.TotalExpenses)) {
			t.Errorf("expected balance %s, got %s",
				summary.TotalIncome.Sub(summary.TotalExpenses), summary.Balance)
		}
		expectDecimal(t, "total income", "0.3", summary.TotalIncome)
		expectDecimal(t, "total expenses", "100.29", summary.TotalExpenses)
	})
}

func TestCategorySpendFor(t *testing.T) {
	february := MonthOf(day(2024, time.February, 15))

	t.Run("scenario current month", func(t *testing.T) {
		spend := CategorySpendFor(scenarioTransactions(), february)

		if len(spend) != 1 {
			t.Fatalf("expected 1 category, got %d", len(spend))
		}
		if spend[0].Category != "Food" {
			t.Errorf("expected category Food, got %s", spend[0].Category)
		}
		expectDecimal(t, "total", "30", spend[0].Total)
	})

	t.Run("groups by exact case-sensitive name", func(t *testing.T) {
		spend := CategorySpendFor([]*entity.Transaction{
			tx(entity.TransactionTypeExpense, "1", "food", day(2024, time.February, 2)),
			tx(entity.TransactionTypeExpense, "2", "Food", day(2024, time.February, 3)),
			tx(entity.TransactionTypeExpense, "3", "food", day(2024, time.February, 4)),
		}, february)

		if len(spend) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(spend))
		}
		if spend[0].Category != "food" || spend[1].Category != "Food" {
			t.Errorf("expected [food Food], got [%s %s]", spend[0].Category, spend[1].Category)
		}
		expectDecimal(t, "food total", "4", spend[0].Total)
		expectDecimal(t, "Food total", "2", spend[1].Total)
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		start, end := february.Window()
		spend := CategorySpendFor([]*entity.Transaction{
			tx(entity.TransactionTypeExpense, "1", "Edge", start),
			tx(entity.TransactionTypeExpense, "2", "Edge", end),
			tx(entity.TransactionTypeExpense, "4", "Edge", start.Add(-time.Nanosecond)),
			tx(entity.TransactionTypeExpense, "8", "Edge", end.Add(time.Nanosecond)),
		}, february)

		if len(spend) != 1 {
			t.Fatalf("expected 1 category, got %d", len(spend))
		}
		expectDecimal(t, "total", "3", spend[0].Total)
	})

	t.Run("income and empty months are omitted", func(t *testing.T) {
		spend := CategorySpendFor([]*entity.Transaction{
			tx(entity.TransactionTypeIncome, "100", "Salary", day(2024, time.February, 1)),
		}, february)

		if len(spend) != 0 {
			t.Errorf("expected no categories, got %d", len(spend))
		}
	})

	t.Run("sum matches the month's expense total", func(t *testing.T) {
		txs := []*entity.Transaction{
			tx(entity.TransactionTypeExpense, "12.34", "A", day(2024, time.February, 1)),
			tx(entity.TransactionTypeExpense, "0.66", "B", day(2024, time.February, 29)),
			tx(entity.TransactionTypeExpense, "7", "A", day(2024, time.February, 14)),
			tx(entity.TransactionTypeExpense, "500", "A", day(2024, time.March, 1)),
			tx(entity.TransactionTypeIncome, "9", "A", day(2024, time.February, 14)),
		}

		var monthExpenses []*entity.Transaction
		for _, candidate := range txs {
			if candidate.IsExpense() && february.Contains(candidate.Date) {
				monthExpenses = append(monthExpenses, candidate)
			}
		}

		total := decimal.Zero
		for _, cs := range CategorySpendFor(txs, february) {
			total = total.Add(cs.Total)
		}

		expected := Summarize(monthExpenses).TotalExpenses
		if !total.Equal(expected) {
			t.Errorf("expected %s, got %s", expected, total)
		}
	})

	t.Run("orphaned category names still group", func(t *testing.T) {
		spend := CategorySpendFor([]*entity.Transaction{
			tx(entity.TransactionTypeExpense, "5", "Deleted Category", day(2024, time.February, 9)),
		}, february)

		if len(spend) != 1 || spend[0].Category != "Deleted Category" {
			t.Errorf("expected orphaned category to be grouped, got %+v", spend)
		}
	})
}

func TestTrend(t *testing.T) {
	t.Run("scenario trend", func(t *testing.T) {
		points := Trend(scenarioTransactions())

		if len(points) != 2 {
			t.Fatalf("expected 2 points, got %d", len(points))
		}
		if points[0].Month != "2024-01" || points[1].Month != "2024-02" {
			t.Errorf("expected [2024-01 2024-02], got [%s %s]", points[0].Month, points[1].Month)
		}
		expectDecimal(t, "2024-01 total", "50", points[0].Total)
		expectDecimal(t, "2024-02 total", "30", points[1].Total)
	})

	t.Run("sorted, unique and gap preserving", func(t *testing.T) {
		txs := []*entity.Transaction{
			tx(entity.TransactionTypeExpense, "1", "A", day(2025, time.January, 3)),
			tx(entity.TransactionTypeExpense, "2", "B", day(2023, time.December, 31)),
			tx(entity.TransactionTypeExpense, "3", "A", day(2024, time.June, 1)),
			tx(entity.TransactionTypeExpense, "4", "C", day(2025, time.January, 28)),
			tx(entity.TransactionTypeIncome, "1000", "Salary", day(2024, time.March, 1)),
		}
		points := Trend(txs)

		expected := []struct {
			month string
			total string
		}{
			{"2023-12", "2"},
			{"2024-06", "3"},
			{"2025-01", "5"},
		}
		if len(points) != len(expected) {
			t.Fatalf("expected %d points, got %d", len(expected), len(points))
		}
		for i, e := range expected {
			if points[i].Month != e.month {
				t.Errorf("expected month %s at %d, got %s", e.month, i, points[i].Month)
			}
			expectDecimal(t, e.month+" total", e.total, points[i].Total)
		}
	})

	t.Run("total equals all expenses", func(t *testing.T) {
		txs := scenarioTransactions()
		total := decimal.Zero
		for _, p := range Trend(txs) {
			total = total.Add(p.Total)
		}

		expected := Summarize(txs).TotalExpenses
		if !total.Equal(expected) {
			t.Errorf("expected %s, got %s", expected, total)
		}
	})

	t.Run("buckets use the date's own location", func(t *testing.T) {
		saoPaulo := time.FixedZone("BRT", -3*60*60)
		// 2024-02-01 01:00 UTC is still January in UTC-3.
		date := time.Date(2024, time.January, 31, 22, 0, 0, 0, saoPaulo)
		points := Trend([]*entity.Transaction{
			tx(entity.TransactionTypeExpense, "10", "Food", date),
		})

		if len(points) != 1 || points[0].Month != "2024-01" {
			t.Errorf("expected bucket 2024-01, got %+v", points)
		}
	})

	t.Run("empty log", func(t *testing.T) {
		points := Trend(nil)
		if points == nil || len(points) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", points)
		}
	})
}

func TestBudgetViews(t *testing.T) {
	february := MonthOf(day(2024, time.February, 1))
	userID := uuid.New()

	food := entity.NewBudget(userID, "Food", decimal.NewFromInt(100), true)
	travel := entity.NewBudget(userID, "Travel", decimal.NewFromInt(400), false)

	views := BudgetViews([]*entity.Budget{food, travel}, scenarioTransactions(), february)

	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}

	t.Run("spent and utilization", func(t *testing.T) {
		if views[0].ID != food.ID {
			t.Errorf("expected first view to be the Food budget")
		}
		expectDecimal(t, "spent", "30", views[0].Spent)
		expectDecimal(t, "utilization", "0.3", views[0].Utilization())
		if views[0].Exceeded() {
			t.Error("expected Food budget not to be exceeded")
		}
		if views[0].Period != entity.BudgetPeriodMonthly {
			t.Errorf("expected period monthly, got %s", views[0].Period)
		}
	})

	t.Run("no matching transactions yields zero", func(t *testing.T) {
		expectDecimal(t, "spent", "0", views[1].Spent)
		expectDecimal(t, "utilization", "0", views[1].Utilization())
	})

	t.Run("over budget is not clamped", func(t *testing.T) {
		small := entity.NewBudget(userID, "Food", decimal.NewFromInt(20), true)
		over := BudgetViews([]*entity.Budget{small}, scenarioTransactions(), february)

		expectDecimal(t, "utilization", "1.5", over[0].Utilization())
		if !over[0].Exceeded() {
			t.Error("expected budget to be exceeded")
		}
	})
}

func TestAggregationsAreIdempotent(t *testing.T) {
	txs := scenarioTransactions()
	february := MonthOf(day(2024, time.February, 1))

	first := CategorySpendFor(txs, february)
	second := CategorySpendFor(txs, february)
	if len(first) != len(second) {
		t.Fatalf("expected equal lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Category != second[i].Category || !first[i].Total.Equal(second[i].Total) {
			t.Errorf("expected identical output at %d, got %+v and %+v", i, first[i], second[i])
		}
	}

	trendA := Trend(txs)
	trendB := Trend(txs)
	for i := range trendA {
		if trendA[i].Month != trendB[i].Month || !trendA[i].Total.Equal(trendB[i].Total) {
			t.Errorf("expected identical trend at %d", i)
		}
	}
}
