package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/dashboard"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// DashboardController serves the read-only aggregation endpoints.
type DashboardController struct {
	overviewUseCase      *dashboard.GetOverviewUseCase
	summaryUseCase       *dashboard.GetSummaryUseCase
	categorySpendUseCase *dashboard.GetCategorySpendUseCase
	trendUseCase         *dashboard.GetTrendUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	overviewUseCase *dashboard.GetOverviewUseCase,
	summaryUseCase *dashboard.GetSummaryUseCase,
	categorySpendUseCase *dashboard.GetCategorySpendUseCase,
	trendUseCase *dashboard.GetTrendUseCase,
) *DashboardController {
	return &DashboardController{
		overviewUseCase:      overviewUseCase,
		summaryUseCase:       summaryUseCase,
		categorySpendUseCase: categorySpendUseCase,
		trendUseCase:         trendUseCase,
	}
}

// Overview handles GET /dashboard requests.
func (c *DashboardController) Overview(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	month, ok := bindMonth(ctx)
	if !ok {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), dashboard.GetOverviewInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OverviewResponse{
		Month:      output.Month.String(),
		Summary:    dto.ToSummaryResponse(output.Summary),
		Categories: dto.ToCategorySpendItems(output.Categories),
		Trend:      dto.ToTrendPoints(output.Trend),
		Budgets:    dto.ToBudgetViewResponses(output.Budgets),
	})
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{
		UserID: userID,
	})
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output.Summary))
}

// CategorySpend handles GET /dashboard/category-spend requests.
func (c *DashboardController) CategorySpend(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	month, ok := bindMonth(ctx)
	if !ok {
		return
	}

	output, err := c.categorySpendUseCase.Execute(ctx.Request.Context(), dashboard.GetCategorySpendInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategorySpendResponse(output.Month, output.Categories))
}

// Trend handles GET /dashboard/trend requests.
func (c *DashboardController) Trend(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.trendUseCase.Execute(ctx.Request.Context(), dashboard.GetTrendInput{
		UserID: userID,
	})
	if err != nil {
		handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TrendResponse{
		Trend: dto.ToTrendPoints(output.Trend),
	})
}
