package transaction

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

type fakeTransactionRepo struct {
	items   map[uuid.UUID]*entity.Transaction
	calls   int
	failErr error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{items: make(map[uuid.UUID]*entity.Transaction)}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	r.calls++
	if r.failErr != nil {
		return r.failErr
	}
	copied := *t
	r.items[t.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.calls++
	t, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTransactionRepo) FindByUserID(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	r.calls++
	if r.failErr != nil {
		return nil, r.failErr
	}
	var result []*entity.Transaction
	for _, t := range r.items {
		if t.UserID != userID {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		copied := *t
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (r *fakeTransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	r.calls++
	copied := *t
	r.items[t.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.calls++
	delete(r.items, id)
	return nil
}

type recordingChecker struct {
	categories []string
	err        error
}

func (c *recordingChecker) CheckCategory(ctx context.Context, userID uuid.UUID, category string, at time.Time) error {
	c.categories = append(c.categories, category)
	return c.err
}

func fixedNow() time.Time {
	return time.Date(2024, time.February, 15, 10, 0, 0, 0, time.UTC)
}

func expectTransactionCode(t *testing.T, err error, code domainerror.TransactionErrorCode) {
	t.Helper()
	var txErr *domainerror.TransactionError
	if !errors.As(err, &txErr) {
		t.Fatalf("expected TransactionError, got %v", err)
	}
	if txErr.Code != code {
		t.Errorf("expected code %s, got %s", code, txErr.Code)
	}
}

func TestCreateTransactionUseCase(t *testing.T) {
	userID := uuid.New()

	t.Run("defaults date to now and trims the category", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		checker := &recordingChecker{}
		uc := NewCreateTransactionUseCase(repo, checker, fixedNow)

		out, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:   userID,
			Amount:   decimal.RequireFromString("12.50"),
			Category: "  Food ",
			Type:     entity.TransactionTypeExpense,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !out.Transaction.Date.Equal(fixedNow()) {
			t.Errorf("expected date %s, got %s", fixedNow(), out.Transaction.Date)
		}
		if out.Transaction.Category != "Food" {
			t.Errorf("expected category Food, got %q", out.Transaction.Category)
		}
		if len(checker.categories) != 1 || checker.categories[0] != "Food" {
			t.Errorf("expected budget check for Food, got %v", checker.categories)
		}
	})

	t.Run("income does not trigger budget checks", func(t *testing.T) {
		checker := &recordingChecker{}
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), checker, fixedNow)

		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:   userID,
			Amount:   decimal.NewFromInt(1000),
			Category: "Salary",
			Type:     entity.TransactionTypeIncome,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(checker.categories) != 0 {
			t.Errorf("expected no budget checks, got %v", checker.categories)
		}
	})

	t.Run("budget check failure does not fail the write", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		checker := &recordingChecker{err: errors.New("queue down")}
		uc := NewCreateTransactionUseCase(repo, checker, fixedNow)

		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:   userID,
			Amount:   decimal.NewFromInt(5),
			Category: "Food",
			Type:     entity.TransactionTypeExpense,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(repo.items) != 1 {
			t.Errorf("expected transaction to be stored, got %d", len(repo.items))
		}
	})

	t.Run("limits count characters not bytes", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		uc := NewCreateTransactionUseCase(repo, nil, fixedNow)

		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:      userID,
			Amount:      entity.MaxAmount,
			Category:    strings.Repeat("ç", 50),
			Description: strings.Repeat("é", 200),
			Type:        entity.TransactionTypeExpense,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	validationTests := []struct {
		name  string
		input CreateTransactionInput
		code  domainerror.TransactionErrorCode
	}{
		{
			name:  "zero amount",
			input: CreateTransactionInput{UserID: userID, Amount: decimal.Zero, Category: "Food", Type: entity.TransactionTypeExpense},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "negative amount",
			input: CreateTransactionInput{UserID: userID, Amount: decimal.NewFromInt(-3), Category: "Food", Type: entity.TransactionTypeExpense},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "amount rounding to zero cents",
			input: CreateTransactionInput{UserID: userID, Amount: decimal.RequireFromString("0.004"), Category: "Food", Type: entity.TransactionTypeExpense},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "amount with sub-cent precision",
			input: CreateTransactionInput{UserID: userID, Amount: decimal.RequireFromString("1.005"), Category: "Food", Type: entity.TransactionTypeExpense},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "amount above column range",
			input: CreateTransactionInput{UserID: userID, Amount: decimal.RequireFromString("100000000000000"), Category: "Food", Type: entity.TransactionTypeExpense},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "description over 255 characters",
			input: CreateTransactionInput{UserID: userID, Amount: decimal.NewFromInt(3), Category: "Food", Description: strings.Repeat("é", 256), Type: entity.TransactionTypeExpense},
			code:  domainerror.ErrCodeDescriptionTooLong,
		},
		{
			name:  "blank category",
			input: CreateTransactionInput{UserID: userID, Amount: decimal.NewFromInt(3), Category: "   ", Type: entity.TransactionTypeExpense},
			code:  domainerror.ErrCodeEmptyTransactionCategory,
		},
		{
			name:  "unknown type",
			input: CreateTransactionInput{UserID: userID, Amount: decimal.NewFromInt(3), Category: "Food", Type: "transfer"},
			code:  domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:  "missing user",
			input: CreateTransactionInput{Amount: decimal.NewFromInt(3), Category: "Food", Type: entity.TransactionTypeExpense},
			code:  domainerror.ErrCodeTransactionNotAuthenticated,
		},
	}

	for _, tt := range validationTests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTransactionRepo()
			uc := NewCreateTransactionUseCase(repo, nil, fixedNow)

			_, err := uc.Execute(context.Background(), tt.input)
			expectTransactionCode(t, err, tt.code)
			if repo.calls != 0 {
				t.Errorf("expected no store access, got %d calls", repo.calls)
			}
		})
	}
}

func TestUpdateAndDeleteTransactionOwnership(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()

	repo := newFakeTransactionRepo()
	existing := entity.NewTransaction(owner, decimal.NewFromInt(10), "Food", "", entity.TransactionTypeExpense, fixedNow())
	_ = repo.Create(context.Background(), existing)

	update := NewUpdateTransactionUseCase(repo, nil)
	del := NewDeleteTransactionUseCase(repo)

	t.Run("update by another user is forbidden", func(t *testing.T) {
		_, err := update.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: existing.ID,
			UserID:        intruder,
			Amount:        decimal.NewFromInt(1),
			Category:      "Food",
			Type:          entity.TransactionTypeExpense,
		})
		expectTransactionCode(t, err, domainerror.ErrCodeNotAuthorizedTransaction)

		var txErr *domainerror.TransactionError
		errors.As(err, &txErr)
		if txErr.Message != "not authorized" {
			t.Errorf("expected generic message, got %q", txErr.Message)
		}
	})

	t.Run("update replaces fields and keeps date when omitted", func(t *testing.T) {
		out, err := update.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: existing.ID,
			UserID:        owner,
			Amount:        decimal.NewFromInt(99),
			Category:      "Rent",
			Description:   "February",
			Type:          entity.TransactionTypeExpense,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Transaction.Category != "Rent" || !out.Transaction.Amount.Equal(decimal.NewFromInt(99)) {
			t.Errorf("expected replaced fields, got %+v", out.Transaction)
		}
		if !out.Transaction.Date.Equal(fixedNow()) {
			t.Errorf("expected date to be kept, got %s", out.Transaction.Date)
		}
	})

	t.Run("missing transaction", func(t *testing.T) {
		_, err := del.Execute(context.Background(), DeleteTransactionInput{TransactionID: uuid.New(), UserID: owner})
		expectTransactionCode(t, err, domainerror.ErrCodeTransactionNotFound)
	})

	t.Run("delete by another user is forbidden", func(t *testing.T) {
		_, err := del.Execute(context.Background(), DeleteTransactionInput{TransactionID: existing.ID, UserID: intruder})
		expectTransactionCode(t, err, domainerror.ErrCodeNotAuthorizedTransaction)
		if _, ok := repo.items[existing.ID]; !ok {
			t.Error("expected transaction to remain")
		}
	})

	t.Run("delete by owner", func(t *testing.T) {
		out, err := del.Execute(context.Background(), DeleteTransactionInput{TransactionID: existing.ID, UserID: owner})
		if err != nil || !out.Success {
			t.Fatalf("expected success, got %v", err)
		}
		if _, ok := repo.items[existing.ID]; ok {
			t.Error("expected transaction to be removed")
		}
	})
}

func TestListTransactionsUseCase(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	repo := newFakeTransactionRepo()

	older := entity.NewTransaction(alice, decimal.NewFromInt(1), "Food", "", entity.TransactionTypeExpense, fixedNow().AddDate(0, -1, 0))
	newer := entity.NewTransaction(alice, decimal.NewFromInt(2), "Salary", "", entity.TransactionTypeIncome, fixedNow())
	foreign := entity.NewTransaction(bob, decimal.NewFromInt(3), "Food", "", entity.TransactionTypeExpense, fixedNow())
	for _, tx := range []*entity.Transaction{older, newer, foreign} {
		_ = repo.Create(context.Background(), tx)
	}

	uc := NewListTransactionsUseCase(repo)

	out, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: alice})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(out.Transactions))
	}
	if out.Transactions[0].ID != newer.ID {
		t.Errorf("expected newest first")
	}

	out, err = uc.Execute(context.Background(), ListTransactionsInput{UserID: alice, Category: "Food"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out.Transactions) != 1 || out.Transactions[0].ID != older.ID {
		t.Errorf("expected only the Food transaction, got %d", len(out.Transactions))
	}

	_, err = uc.Execute(context.Background(), ListTransactionsInput{UserID: alice, Type: "refund"})
	expectTransactionCode(t, err, domainerror.ErrCodeInvalidTransactionType)
}

func TestExportTransactionsUseCase(t *testing.T) {
	userID := uuid.New()
	repo := newFakeTransactionRepo()

	_ = repo.Create(context.Background(), entity.NewTransaction(userID, decimal.RequireFromString("1000"), "Salary", "", entity.TransactionTypeIncome,
		time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)))
	_ = repo.Create(context.Background(), entity.NewTransaction(userID, decimal.RequireFromString("30.5"), "Food", "Lunch, with team", entity.TransactionTypeExpense,
		time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)))

	out, err := NewExportTransactionsUseCase(repo).Execute(context.Background(), ExportTransactionsInput{UserID: userID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := [][]string{
		{"Date", "Amount", "Type", "Category", "Description"},
		{"2024-02-10", "30.50", "expense", "Food", "Lunch, with team"},
		{"2024-02-01", "1000.00", "income", "Salary", "N/A"},
	}
	if len(out.Rows) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(out.Rows))
	}
	for i := range expected {
		for j := range expected[i] {
			if out.Rows[i][j] != expected[i][j] {
				t.Errorf("expected row %d col %d to be %q, got %q", i, j, expected[i][j], out.Rows[i][j])
			}
		}
	}
}
