package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/application/usecase/category"
	"github.com/budget-tracker/backend/internal/application/usecase/dashboard"
	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/persistence"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

var fixedNow = time.Date(2024, time.February, 15, 12, 0, 0, 0, time.Local)

type testServer struct {
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := dto.RegisterValidators(); err != nil {
		t.Fatalf("failed to register validators: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	now := func() time.Time { return fixedNow }

	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)

	listBudgetViews := budget.NewListBudgetViewsUseCase(budgetRepo, transactionRepo, now)
	summary := dashboard.NewGetSummaryUseCase(transactionRepo)
	categorySpend := dashboard.NewGetCategorySpendUseCase(transactionRepo, now)
	trend := dashboard.NewGetTrendUseCase(transactionRepo)

	transactions := NewTransactionController(
		transaction.NewListTransactionsUseCase(transactionRepo),
		transaction.NewCreateTransactionUseCase(transactionRepo, nil, now),
		transaction.NewUpdateTransactionUseCase(transactionRepo, nil),
		transaction.NewDeleteTransactionUseCase(transactionRepo),
		transaction.NewExportTransactionsUseCase(transactionRepo),
	)
	categories := NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewDeleteCategoryUseCase(categoryRepo),
	)
	budgets := NewBudgetController(
		listBudgetViews,
		budget.NewCreateBudgetUseCase(budgetRepo),
		budget.NewUpdateBudgetUseCase(budgetRepo),
		budget.NewDeleteBudgetUseCase(budgetRepo),
	)
	dashboards := NewDashboardController(
		dashboard.NewGetOverviewUseCase(summary, categorySpend, trend, listBudgetViews),
		summary,
		categorySpend,
		trend,
	)

	engine := gin.New()
	api := engine.Group("/api/v1", fakeAuth())
	api.GET("/transactions", transactions.List)
	api.POST("/transactions", transactions.Create)
	api.GET("/transactions/export", transactions.Export)
	api.PUT("/transactions/:id", transactions.Update)
	api.DELETE("/transactions/:id", transactions.Delete)
	api.GET("/categories", categories.List)
	api.POST("/categories", categories.Create)
	api.DELETE("/categories/:id", categories.Delete)
	api.GET("/budgets", budgets.List)
	api.POST("/budgets", budgets.Create)
	api.PUT("/budgets/:id", budgets.Update)
	api.DELETE("/budgets/:id", budgets.Delete)
	api.GET("/dashboard", dashboards.Overview)
	api.GET("/dashboard/summary", dashboards.Summary)
	api.GET("/dashboard/category-spend", dashboards.CategorySpend)
	api.GET("/dashboard/trend", dashboards.Trend)

	return &testServer{engine: engine}
}

// fakeAuth trusts the X-User-ID header in place of a bearer token.
func fakeAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(string(middleware.UserIDKey), id)
			}
		}
		c.Next()
	}
}

func (s *testServer) do(t *testing.T, method, path string, userID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set("X-User-ID", userID.String())
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	dec := json.NewDecoder(w.Body)
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		checker    func() bool
		wantStatus int
		wantDB     string
	}{
		{name: "database up", checker: func() bool { return true }, wantStatus: http.StatusOK, wantDB: "connected"},
		{name: "database down", checker: func() bool { return false }, wantStatus: http.StatusServiceUnavailable, wantDB: "disconnected"},
		{name: "no checker", checker: nil, wantStatus: http.StatusServiceUnavailable, wantDB: "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health", NewHealthController(tt.checker).Check)

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			body := decode(t, w)
			if body["database"] != tt.wantDB {
				t.Errorf("expected database %s, got %v", tt.wantDB, body["database"])
			}
		})
	}
}

func TestTransactionController(t *testing.T) {
	s := newTestServer(t)
	alice := uuid.New()
	bob := uuid.New()

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/transactions", uuid.Nil, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	var created map[string]any
	t.Run("create trims category and keeps exact amount", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/transactions", alice, map[string]any{
			"amount":      json.Number("30.00"),
			"category":    "  Food  ",
			"description": "Groceries",
			"type":        "expense",
			"date":        "2024-02-10",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}
		created = decode(t, w)
		if created["category"] != "Food" {
			t.Errorf("expected category Food, got %v", created["category"])
		}
		if created["amount"] != json.Number("30") {
			t.Errorf("expected amount 30, got %v", created["amount"])
		}
	})

	invalid := []struct {
		name string
		body map[string]any
	}{
		{name: "missing amount", body: map[string]any{"category": "Food", "type": "expense"}},
		{name: "unknown type", body: map[string]any{"amount": 10, "category": "Food", "type": "transfer"}},
		{name: "blank category", body: map[string]any{"amount": 10, "category": "   ", "type": "expense"}},
		{name: "bad date", body: map[string]any{"amount": 10, "category": "Food", "type": "expense", "date": "10/02/2024"}},
		{name: "non positive amount", body: map[string]any{"amount": 0, "category": "Food", "type": "expense"}},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/transactions", alice, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
			}
		})
	}

	t.Run("another user cannot delete", func(t *testing.T) {
		if created == nil {
			t.Skip("create failed")
		}
		w := s.do(t, http.MethodDelete, "/api/v1/transactions/"+created["id"].(string), bob, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/api/v1/transactions/"+uuid.NewString(), alice, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/api/v1/transactions/not-a-uuid", alice, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("export writes csv attachment", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/transactions/export", alice, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Errorf("expected text/csv content type, got %s", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
			t.Errorf("expected attachment disposition, got %s", cd)
		}

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d: %q", len(lines), w.Body.String())
		}
		if lines[0] != "Date,Amount,Type,Category,Description" {
			t.Errorf("expected header row, got %s", lines[0])
		}
		if lines[1] != "2024-02-10,30.00,expense,Food,Groceries" {
			t.Errorf("expected data row, got %s", lines[1])
		}
	})
}

func TestCategoryController(t *testing.T) {
	s := newTestServer(t)
	alice := uuid.New()
	bob := uuid.New()

	var food map[string]any
	t.Run("create", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/categories", alice, map[string]any{"name": "Food"})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}
		food = decode(t, w)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/categories", alice, map[string]any{"name": "Food"})
		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
		if code := decode(t, w)["code"]; code != "CAT-030001" {
			t.Errorf("expected code CAT-030001, got %v", code)
		}
	})

	t.Run("same name for another user", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/categories", bob, map[string]any{"name": "Food"})
		if w.Code != http.StatusCreated {
			t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
		}
	})

	t.Run("list is scoped to the caller", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/categories", alice, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		list, _ := decode(t, w)["categories"].([]any)
		if len(list) != 1 {
			t.Errorf("expected 1 category, got %d", len(list))
		}
	})

	t.Run("another user cannot delete", func(t *testing.T) {
		if food == nil {
			t.Skip("create failed")
		}
		w := s.do(t, http.MethodDelete, "/api/v1/categories/"+food["id"].(string), bob, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		if food == nil {
			t.Skip("create failed")
		}
		w := s.do(t, http.MethodDelete, "/api/v1/categories/"+food["id"].(string), alice, nil)
		if w.Code != http.StatusNoContent {
			t.Errorf("expected status %d, got %d", http.StatusNoContent, w.Code)
		}
	})
}

func TestBudgetController(t *testing.T) {
	s := newTestServer(t)
	alice := uuid.New()

	s.do(t, http.MethodPost, "/api/v1/transactions", alice, map[string]any{
		"amount": 30, "category": "Food", "type": "expense", "date": "2024-02-10",
	})

	t.Run("create defaults to monthly", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/budgets", alice, map[string]any{
			"category": "Food", "amount": 100,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}
		if period := decode(t, w)["period"]; period != "monthly" {
			t.Errorf("expected period monthly, got %v", period)
		}
	})

	t.Run("second budget for category conflicts", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/budgets", alice, map[string]any{
			"category": "Food", "amount": 50,
		})
		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})

	t.Run("views carry current month spend", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/budgets", alice, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		body := decode(t, w)
		if body["month"] != "2024-02" {
			t.Errorf("expected month 2024-02, got %v", body["month"])
		}
		list, _ := body["budgets"].([]any)
		if len(list) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(list))
		}
		view := list[0].(map[string]any)
		if view["spent"] != json.Number("30") {
			t.Errorf("expected spent 30, got %v", view["spent"])
		}
		if view["utilization"] != json.Number("0.3") {
			t.Errorf("expected utilization 0.3, got %v", view["utilization"])
		}
	})

	t.Run("malformed month", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/budgets?month=2024-13", alice, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}

func TestDashboardController(t *testing.T) {
	s := newTestServer(t)
	alice := uuid.New()

	seed := []map[string]any{
		{"amount": 1000, "category": "Salary", "type": "income", "date": "2024-02-01"},
		{"amount": 50, "category": "Food", "type": "expense", "date": "2024-02-10"},
		{"amount": 30, "category": "Rent", "type": "expense", "date": "2024-01-05"},
	}
	for _, body := range seed {
		if w := s.do(t, http.MethodPost, "/api/v1/transactions", alice, body); w.Code != http.StatusCreated {
			t.Fatalf("failed to seed transaction: %d %s", w.Code, w.Body.String())
		}
	}

	t.Run("summary covers all time", func(t *testing.T) {
		body := decode(t, s.do(t, http.MethodGet, "/api/v1/dashboard/summary", alice, nil))
		if body["totalIncome"] != json.Number("1000") {
			t.Errorf("expected income 1000, got %v", body["totalIncome"])
		}
		if body["totalExpenses"] != json.Number("80") {
			t.Errorf("expected expenses 80, got %v", body["totalExpenses"])
		}
		if body["balance"] != json.Number("920") {
			t.Errorf("expected balance 920, got %v", body["balance"])
		}
	})

	t.Run("category spend defaults to current month", func(t *testing.T) {
		body := decode(t, s.do(t, http.MethodGet, "/api/v1/dashboard/category-spend", alice, nil))
		if body["month"] != "2024-02" {
			t.Errorf("expected month 2024-02, got %v", body["month"])
		}
		list, _ := body["categories"].([]any)
		if len(list) != 1 {
			t.Fatalf("expected 1 category, got %d", len(list))
		}
		if item := list[0].(map[string]any); item["category"] != "Food" {
			t.Errorf("expected Food, got %v", item["category"])
		}
	})

	t.Run("category spend for explicit month", func(t *testing.T) {
		body := decode(t, s.do(t, http.MethodGet, "/api/v1/dashboard/category-spend?month=2024-01", alice, nil))
		list, _ := body["categories"].([]any)
		if len(list) != 1 {
			t.Fatalf("expected 1 category, got %d", len(list))
		}
		if item := list[0].(map[string]any); item["category"] != "Rent" {
			t.Errorf("expected Rent, got %v", item["category"])
		}
	})

	t.Run("malformed month", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/dashboard/category-spend?month=Feb-2024", alice, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
		if code := decode(t, w)["code"]; code != "DSH-010001" {
			t.Errorf("expected code DSH-010001, got %v", code)
		}
	})

	t.Run("trend is ascending", func(t *testing.T) {
		body := decode(t, s.do(t, http.MethodGet, "/api/v1/dashboard/trend", alice, nil))
		points, _ := body["trend"].([]any)
		if len(points) != 2 {
			t.Fatalf("expected 2 points, got %d", len(points))
		}
		first := points[0].(map[string]any)
		if first["month"] != "2024-01" || first["total"] != json.Number("30") {
			t.Errorf("expected 2024-01 total 30, got %v", first)
		}
	})

	t.Run("overview", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/dashboard", alice, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		body := decode(t, w)
		for _, key := range []string{"summary", "categories", "trend", "budgets"} {
			if _, ok := body[key]; !ok {
				t.Errorf("expected %s in overview", key)
			}
		}
	})
}
