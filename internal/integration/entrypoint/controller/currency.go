package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/currency"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// CurrencyController serves the static currency list.
type CurrencyController struct {
	listUseCase *currency.ListCurrenciesUseCase
}

// NewCurrencyController creates a new currency controller instance.
func NewCurrencyController(listUseCase *currency.ListCurrenciesUseCase) *CurrencyController {
	return &CurrencyController{
		listUseCase: listUseCase,
	}
}

// List handles GET /currencies requests.
func (c *CurrencyController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		writeInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCurrencyListResponse(output.Currencies))
}
