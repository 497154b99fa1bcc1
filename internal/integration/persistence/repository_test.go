package persistence

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTx(userID uuid.UUID, txType entity.TransactionType, amount, category string, date time.Time) *entity.Transaction {
	return entity.NewTransaction(userID, decimal.RequireFromString(amount), category, "", txType, date)
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))

	alice := uuid.New()
	bob := uuid.New()

	jan := newTx(alice, entity.TransactionTypeExpense, "50", "Food", time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC))
	feb := newTx(alice, entity.TransactionTypeExpense, "30.25", "Food", time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	salary := newTx(alice, entity.TransactionTypeIncome, "1000", "Salary", time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC))
	other := newTx(bob, entity.TransactionTypeExpense, "7", "Food", time.Date(2024, 2, 11, 12, 0, 0, 0, time.UTC))

	for _, tx := range []*entity.Transaction{jan, feb, salary, other} {
		if err := repo.Create(ctx, tx); err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}
	}

	t.Run("lists only the owner's transactions by date descending", func(t *testing.T) {
		txs, err := repo.FindByUserID(ctx, alice, entity.TransactionFilter{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(txs) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(txs))
		}
		expectedOrder := []uuid.UUID{feb.ID, salary.ID, jan.ID}
		for i, id := range expectedOrder {
			if txs[i].ID != id {
				t.Errorf("expected transaction %s at %d, got %s", id, i, txs[i].ID)
			}
		}
		if !txs[0].Amount.Equal(decimal.RequireFromString("30.25")) {
			t.Errorf("expected amount 30.25, got %s", txs[0].Amount)
		}
	})

	t.Run("filters by category and type", func(t *testing.T) {
		txs, err := repo.FindByUserID(ctx, alice, entity.TransactionFilter{
			Category: "Food",
			Type:     entity.TransactionTypeExpense,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(txs) != 2 {
			t.Errorf("expected 2 transactions, got %d", len(txs))
		}

		txs, err = repo.FindByUserID(ctx, alice, entity.TransactionFilter{Type: entity.TransactionTypeIncome})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(txs) != 1 || txs[0].ID != salary.ID {
			t.Errorf("expected only the salary transaction, got %d results", len(txs))
		}
	})

	t.Run("update replaces fields", func(t *testing.T) {
		feb.Amount = decimal.RequireFromString("45")
		feb.Category = "Groceries"
		feb.Description = "weekly shop"
		if err := repo.Update(ctx, feb); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, err := repo.FindByID(ctx, feb.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Category != "Groceries" || got.Description != "weekly shop" {
			t.Errorf("expected updated fields, got %s / %s", got.Category, got.Description)
		}
		if !got.Amount.Equal(decimal.NewFromInt(45)) {
			t.Errorf("expected amount 45, got %s", got.Amount)
		}
	})

	t.Run("delete and missing records", func(t *testing.T) {
		if err := repo.Delete(ctx, jan.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := repo.FindByID(ctx, jan.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
		if err := repo.Delete(ctx, jan.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound on second delete, got %v", err)
		}
	})
}

func TestTransactionRepositoryTieBreak(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))
	userID := uuid.New()
	date := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

	first := newTx(userID, entity.TransactionTypeExpense, "10", "Food", date)
	second := newTx(userID, entity.TransactionTypeExpense, "20", "Rent", date)
	second.CreatedAt = first.CreatedAt
	second.UpdatedAt = first.UpdatedAt
	for _, tx := range []*entity.Transaction{first, second} {
		if err := repo.Create(ctx, tx); err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}
	}

	want := []uuid.UUID{first.ID, second.ID}
	sort.Slice(want, func(i, j int) bool { return want[i].String() > want[j].String() })

	for run := 0; run < 3; run++ {
		txs, err := repo.FindByUserID(ctx, userID, entity.TransactionFilter{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(txs) != 2 || txs[0].ID != want[0] || txs[1].ID != want[1] {
			t.Fatalf("expected order %v on run %d, got %v and %v", want, run, txs[0].ID, txs[1].ID)
		}
	}
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestDB(t))
	userID := uuid.New()

	food := entity.NewCategory(userID, "Food")
	rent := entity.NewCategory(userID, "Rent")
	for _, c := range []*entity.Category{rent, food} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
	}

	t.Run("lists by name", func(t *testing.T) {
		categories, err := repo.FindByUserID(ctx, userID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(categories) != 2 || categories[0].Name != "Food" || categories[1].Name != "Rent" {
			t.Errorf("expected [Food Rent], got %d categories", len(categories))
		}
	})

	t.Run("exists is exact and scoped", func(t *testing.T) {
		exists, err := repo.ExistsByUserAndName(ctx, userID, "Food")
		if err != nil || !exists {
			t.Errorf("expected Food to exist, got %v (err %v)", exists, err)
		}
		exists, _ = repo.ExistsByUserAndName(ctx, userID, "food")
		if exists {
			t.Error("expected lowercase food not to exist")
		}
		exists, _ = repo.ExistsByUserAndName(ctx, uuid.New(), "Food")
		if exists {
			t.Error("expected Food not to exist for another user")
		}
	})

	t.Run("unique index maps to name exists", func(t *testing.T) {
		err := repo.Create(ctx, entity.NewCategory(userID, "Food"))
		if !errors.Is(err, domainerror.ErrCategoryNameExists) {
			t.Errorf("expected ErrCategoryNameExists, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(ctx, food.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := repo.FindByID(ctx, food.ID); !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})
}

func TestBudgetRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(newTestDB(t))
	userID := uuid.New()

	budget := entity.NewBudget(userID, "Food", decimal.NewFromInt(100), true)
	if err := repo.Create(ctx, budget); err != nil {
		t.Fatalf("failed to create budget: %v", err)
	}

	t.Run("find by category", func(t *testing.T) {
		found, err := repo.FindByUserAndCategory(ctx, userID, "Food")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found == nil || found.ID != budget.ID {
			t.Fatal("expected to find the Food budget")
		}
		if found.Period != entity.BudgetPeriodMonthly || !found.AlertOnExceed {
			t.Errorf("expected monthly alerting budget, got %s / %v", found.Period, found.AlertOnExceed)
		}

		missing, err := repo.FindByUserAndCategory(ctx, userID, "Travel")
		if err != nil || missing != nil {
			t.Errorf("expected nil budget and nil error, got %v / %v", missing, err)
		}
	})

	t.Run("update", func(t *testing.T) {
		budget.Amount = decimal.RequireFromString("250.50")
		budget.AlertOnExceed = false
		if err := repo.Update(ctx, budget); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		found, err := repo.FindByID(ctx, budget.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !found.Amount.Equal(decimal.RequireFromString("250.5")) {
			t.Errorf("expected amount 250.50, got %s", found.Amount)
		}
		if found.AlertOnExceed {
			t.Error("expected alertOnExceed to be false")
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		if err := repo.Delete(ctx, uuid.New()); !errors.Is(err, domainerror.ErrBudgetNotFound) {
			t.Errorf("expected ErrBudgetNotFound, got %v", err)
		}
	})
}

func TestEmailQueueRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEmailQueueRepository(newTestDB(t))

	job := entity.NewEmailJob(entity.TemplateBudgetExceeded, "budget:1:2024-02", "a@example.com", "A", "Budget exceeded", map[string]string{"Category": "Food"}, time.Now())
	job.ScheduledAt = time.Now().UTC().Add(-time.Minute)
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	exists, err := repo.ExistsByDedupKey(ctx, "budget:1:2024-02")
	if err != nil || !exists {
		t.Errorf("expected dedup key to exist, got %v (err %v)", exists, err)
	}

	jobs, err := repo.GetPendingJobs(ctx, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 pending job, got %d", len(jobs))
	}
	if jobs[0].TemplateData["Category"] != "Food" {
		t.Errorf("expected template data to round trip, got %v", jobs[0].TemplateData)
	}

	jobs[0].MarkSent("provider-1", time.Now().UTC())
	if err := repo.Update(ctx, jobs[0]); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	jobs, err = repo.GetPendingJobs(ctx, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected no pending jobs after send, got %d", len(jobs))
	}
}

func TestUserAndTokenRepositories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)

	user := entity.NewUser("jane@example.com", "Jane", "hash")
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	found, err := users.FindByEmail(ctx, "jane@example.com")
	if err != nil || found.ID != user.ID {
		t.Fatalf("expected to find user, got %v", err)
	}
	if !found.BudgetAlerts {
		t.Error("expected budget alerts to default to true")
	}
	if _, err := users.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	if err := tokens.SaveRefreshToken(ctx, "token-1", user.ID, time.Now().UTC().Add(time.Hour)); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}
	valid, err := tokens.IsRefreshTokenValid(ctx, "token-1")
	if err != nil || !valid {
		t.Errorf("expected token to be valid, got %v (err %v)", valid, err)
	}
	if err := tokens.InvalidateRefreshToken(ctx, "token-1"); err != nil {
		t.Fatalf("failed to invalidate token: %v", err)
	}
	valid, _ = tokens.IsRefreshTokenValid(ctx, "token-1")
	if valid {
		t.Error("expected token to be invalid after logout")
	}
}
