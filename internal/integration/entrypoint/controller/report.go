package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/application/usecase/report"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/integration/entrypoint/dto"
)

// ReportController serves the profit totals and the transaction history.
type ReportController struct {
	totalsUseCase  *report.GetTotalsUseCase
	historyUseCase *report.ListHistoryUseCase
	currency       string
}

// NewReportController creates a new report controller instance.
func NewReportController(totalsUseCase *report.GetTotalsUseCase, historyUseCase *report.ListHistoryUseCase, currency string) *ReportController {
	return &ReportController{
		totalsUseCase:  totalsUseCase,
		historyUseCase: historyUseCase,
		currency:       currency,
	}
}

// TotalProfit handles GET /total_profit/:userId.
func (c *ReportController) TotalProfit(ctx *gin.Context) {
	ownerID, ok := parseID(ctx, ctx.Param("userId"), "userId", string(domainerror.ErrCodeInvalidOwnerID))
	if !ok {
		return
	}

	output, err := c.totalsUseCase.Execute(ctx.Request.Context(), report.GetTotalsInput{OwnerID: ownerID})
	if err != nil {
		handleBookkeepingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("Totals retrieved", dto.ToTotalsResponse(output.Aggregate, c.currency)))
}

// IncomeHistory handles GET /income_history/:userId.
func (c *ReportController) IncomeHistory(ctx *gin.Context) {
	c.history(ctx, entity.TransactionKindIncome)
}

// ExpenseHistory handles GET /expense_history/:userId.
func (c *ReportController) ExpenseHistory(ctx *gin.Context) {
	c.history(ctx, entity.TransactionKindExpense)
}

func (c *ReportController) history(ctx *gin.Context, kind entity.TransactionKind) {
	ownerID, ok := parseID(ctx, ctx.Param("userId"), "userId", string(domainerror.ErrCodeInvalidOwnerID))
	if !ok {
		return
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), report.ListHistoryInput{
		OwnerID: ownerID,
		Kind:    kind,
	})
	if err != nil {
		handleBookkeepingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("History retrieved", dto.ToHistoryResponse(output.Records, output.Total)))
}
