// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/application/usecase/category"
	"github.com/budget-tracker/backend/internal/application/usecase/currency"
	"github.com/budget-tracker/backend/internal/application/usecase/dashboard"
	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/infra/metrics"
	"github.com/budget-tracker/backend/internal/infra/server/router"
	"github.com/budget-tracker/backend/internal/integration/adapters"
	"github.com/budget-tracker/backend/internal/integration/email"
	"github.com/budget-tracker/backend/internal/integration/email/templates"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/persistence"
)

// loginRateLimitPrefix namespaces the login counters in a shared Redis.
const loginRateLimitPrefix = "budget-tracker:ratelimit:login:"

// Options carries the optional collaborators of the injector.
type Options struct {
	// Redis backs the login rate limiter when set; otherwise counters stay in memory.
	Redis *redis.Client
	// Now overrides the wall clock, used by the test suite.
	Now func() time.Time
	// EmailSender overrides the sender chosen from the email configuration.
	EmailSender adapter.EmailSender
}

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	DB               *gorm.DB
	Router           *router.Router
	Metrics          *metrics.Metrics
	EmailWorker      *email.Worker
	EmailSender      adapter.EmailSender
	LoginRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, healthCheck func() bool, opts Options) (*Injector, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		tokenRepo,
	)

	emailSender := opts.EmailSender
	if emailSender == nil {
		switch {
		case cfg.Email.ResendAPIKey != "" && cfg.Email.ResendBaseURL != "":
			client, err := email.NewResendClientWithBaseURL(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ResendBaseURL)
			if err != nil {
				return nil, err
			}
			emailSender = client
		case cfg.Email.ResendAPIKey != "":
			emailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		default:
			slog.Warn("RESEND_API_KEY not set, budget alert emails will not be delivered")
			emailSender = email.NewMockEmailSender()
		}
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	emailService := email.NewService(emailQueueRepo, now)
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Budget use cases
	listBudgetViewsUseCase := budget.NewListBudgetViewsUseCase(budgetRepo, transactionRepo, now)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	checkBudgetAlertUseCase := budget.NewCheckBudgetAlertUseCase(budgetRepo, transactionRepo, userRepo, emailService, now)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, checkBudgetAlertUseCase, now)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, checkBudgetAlertUseCase)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	exportTransactionsUseCase := transaction.NewExportTransactionsUseCase(transactionRepo)

	// Dashboard use cases
	summaryUseCase := dashboard.NewGetSummaryUseCase(transactionRepo)
	categorySpendUseCase := dashboard.NewGetCategorySpendUseCase(transactionRepo, now)
	trendUseCase := dashboard.NewGetTrendUseCase(transactionRepo)
	overviewUseCase := dashboard.NewGetOverviewUseCase(summaryUseCase, categorySpendUseCase, trendUseCase, listBudgetViewsUseCase)

	// Controllers
	healthController := controller.NewHealthController(healthCheck)
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
	currencyController := controller.NewCurrencyController(currency.NewListCurrenciesUseCase())
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		exportTransactionsUseCase,
	)
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		deleteCategoryUseCase,
	)
	budgetController := controller.NewBudgetController(
		listBudgetViewsUseCase,
		createBudgetUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)
	dashboardController := controller.NewDashboardController(
		overviewUseCase,
		summaryUseCase,
		categorySpendUseCase,
		trendUseCase,
	)

	// Middleware
	var rateLimitStore middleware.RateLimitStore
	if opts.Redis != nil {
		rateLimitStore = middleware.NewRedisRateLimitStore(opts.Redis, loginRateLimitPrefix)
	} else {
		rateLimitStore = middleware.NewMemoryRateLimitStore()
	}
	loginRateLimiter := middleware.NewRateLimiterWithStore(rateLimitStore, cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	m := metrics.New()

	r := router.NewRouter(
		healthController,
		authController,
		currencyController,
		transactionController,
		categoryController,
		budgetController,
		dashboardController,
		loginRateLimiter,
		authMiddleware,
		m,
	)

	return &Injector{
		Config:           cfg,
		DB:               db,
		Router:           r,
		Metrics:          m,
		EmailWorker:      emailWorker,
		EmailSender:      emailSender,
		LoginRateLimiter: loginRateLimiter,
	}, nil
}
