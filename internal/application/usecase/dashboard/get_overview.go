package dashboard

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
)

// GetOverviewInput represents the input for the combined dashboard.
type GetOverviewInput struct {
	UserID uuid.UUID
	Month  *aggregation.Month
}

// GetOverviewOutput bundles every dashboard view for one month.
type GetOverviewOutput struct {
	Month      aggregation.Month
	Summary    aggregation.Summary
	Categories []aggregation.CategorySpend
	Trend      []aggregation.TrendPoint
	Budgets    []aggregation.BudgetView
}

// GetOverviewUseCase runs the summary, category spend, trend and budget
// views concurrently. If any of them fails the whole overview fails.
type GetOverviewUseCase struct {
	summary       *GetSummaryUseCase
	categorySpend *GetCategorySpendUseCase
	trend         *GetTrendUseCase
	budgetViews   *budget.ListBudgetViewsUseCase
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	summary *GetSummaryUseCase,
	categorySpend *GetCategorySpendUseCase,
	trend *GetTrendUseCase,
	budgetViews *budget.ListBudgetViewsUseCase,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		summary:       summary,
		categorySpend: categorySpend,
		trend:         trend,
		budgetViews:   budgetViews,
	}
}

// Execute computes the overview.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	if input.UserID == uuid.Nil {
		return nil, notAuthenticated()
	}

	// Resolve the month once so every view covers the same window.
	month := aggregation.MonthOrCurrent(input.Month, uc.categorySpend.now())

	var (
		summaryOut  *GetSummaryOutput
		categoryOut *GetCategorySpendOutput
		trendOut    *GetTrendOutput
		budgetOut   *budget.ListBudgetViewsOutput
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summaryOut, err = uc.summary.Execute(gctx, GetSummaryInput{UserID: input.UserID})
		return err
	})
	g.Go(func() error {
		var err error
		categoryOut, err = uc.categorySpend.Execute(gctx, GetCategorySpendInput{UserID: input.UserID, Month: &month})
		return err
	})
	g.Go(func() error {
		var err error
		trendOut, err = uc.trend.Execute(gctx, GetTrendInput{UserID: input.UserID})
		return err
	})
	g.Go(func() error {
		var err error
		budgetOut, err = uc.budgetViews.Execute(gctx, budget.ListBudgetViewsInput{UserID: input.UserID, Month: &month})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GetOverviewOutput{
		Month:      month,
		Summary:    summaryOut.Summary,
		Categories: categoryOut.Categories,
		Trend:      trendOut.Trend,
		Budgets:    budgetOut.Budgets,
	}, nil
}
