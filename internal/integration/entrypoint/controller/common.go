// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/aggregation"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// requireUserID returns the authenticated user or writes a 401.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok || userID == uuid.Nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses the :id path parameter or writes a 400 with code.
func parseIDParam(ctx *gin.Context, code string, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + resource + " ID format",
			Code:  code,
		})
		return uuid.Nil, false
	}
	return id, true
}

// bindMonth reads the optional ?month parameter. A nil month means current month.
func bindMonth(ctx *gin.Context) (*aggregation.Month, bool) {
	var query dto.MonthQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		writeInvalidMonth(ctx)
		return nil, false
	}
	if query.Month == "" {
		return nil, true
	}

	month, err := aggregation.ParseMonth(query.Month, time.Local)
	if err != nil {
		writeInvalidMonth(ctx)
		return nil, false
	}
	return &month, true
}

func writeInvalidMonth(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Month must be in YYYY-MM format",
		Code:  string(domainerror.ErrCodeInvalidMonth),
	})
}

// writeInternalError logs err and answers with a generic 500.
func writeInternalError(ctx *gin.Context, err error) {
	slog.Error("Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// handleDashboardError handles aggregation errors shared by dashboard and budget views.
func handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		switch dashErr.Code {
		case domainerror.ErrCodeInvalidMonth:
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dashErr.Message, Code: string(dashErr.Code)})
			return
		case domainerror.ErrCodeNotAuthenticated:
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: dashErr.Message, Code: string(dashErr.Code)})
			return
		}
	}

	writeInternalError(ctx, err)
}
