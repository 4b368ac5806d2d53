package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/usecase/bookkeeping"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/integration/entrypoint/dto"
)

// BookkeepingController handles sale and purchase endpoints.
type BookkeepingController struct {
	saleUseCase      *bookkeeping.RecordSaleUseCase
	batchSaleUseCase *bookkeeping.RecordBatchSaleUseCase
	purchaseUseCase  *bookkeeping.RecordPurchaseUseCase
}

// NewBookkeepingController creates a new bookkeeping controller instance.
func NewBookkeepingController(
	saleUseCase *bookkeeping.RecordSaleUseCase,
	batchSaleUseCase *bookkeeping.RecordBatchSaleUseCase,
	purchaseUseCase *bookkeeping.RecordPurchaseUseCase,
) *BookkeepingController {
	return &BookkeepingController{
		saleUseCase:      saleUseCase,
		batchSaleUseCase: batchSaleUseCase,
		purchaseUseCase:  purchaseUseCase,
	}
}

// CreateIncome handles POST /create_income.
func (c *BookkeepingController) CreateIncome(ctx *gin.Context) {
	var req dto.CreateIncomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingBookkeepingFields))
		return
	}
	ownerID, itemID, ok := parseOwnerAndItem(ctx, req.UserID, req.ItemID)
	if !ok {
		return
	}

	output, err := c.saleUseCase.Execute(ctx.Request.Context(), bookkeeping.RecordSaleInput{
		OwnerID:  ownerID,
		ItemID:   itemID,
		Date:     req.Date,
		Time:     req.Time,
		Quantity: *req.Quantity,
	})
	if err != nil {
		handleBookkeepingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success("Income recorded", transactionResponse(output.Record, output.Item)))
}

// CreateIncomeBatch handles POST /create_income_batch.
func (c *BookkeepingController) CreateIncomeBatch(ctx *gin.Context) {
	var req dto.CreateIncomeBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingBookkeepingFields))
		return
	}
	ownerID, ok := parseID(ctx, req.UserID, "userId", string(domainerror.ErrCodeInvalidOwnerID))
	if !ok {
		return
	}

	lines := make([]bookkeeping.SaleLine, len(req.Sales))
	for i, sale := range req.Sales {
		itemID, ok := parseID(ctx, sale.ItemID, "barangId", string(domainerror.ErrCodeMissingBookkeepingFields))
		if !ok {
			return
		}
		lines[i] = bookkeeping.SaleLine{ItemID: itemID, Quantity: *sale.Quantity}
	}

	output, err := c.batchSaleUseCase.Execute(ctx.Request.Context(), bookkeeping.RecordBatchSaleInput{
		OwnerID: ownerID,
		Date:    req.Date,
		Time:    req.Time,
		Lines:   lines,
	})
	if err != nil {
		handleBookkeepingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success("Income recorded", transactionResponse(output.Record, output.Items...)))
}

// CreateExpense handles POST /create_expense.
func (c *BookkeepingController) CreateExpense(ctx *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingBookkeepingFields))
		return
	}
	ownerID, itemID, ok := parseOwnerAndItem(ctx, req.UserID, req.ItemID)
	if !ok {
		return
	}

	output, err := c.purchaseUseCase.Execute(ctx.Request.Context(), bookkeeping.RecordPurchaseInput{
		OwnerID:   ownerID,
		ItemID:    itemID,
		Date:      req.Date,
		Time:      req.Time,
		Quantity:  *req.Quantity,
		UnitPrice: *req.Price,
	})
	if err != nil {
		handleBookkeepingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success("Expense recorded", transactionResponse(output.Record, output.Item)))
}

func parseOwnerAndItem(ctx *gin.Context, rawOwner, rawItem string) (uuid.UUID, uuid.UUID, bool) {
	ownerID, ok := parseID(ctx, rawOwner, "userId", string(domainerror.ErrCodeInvalidOwnerID))
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	itemID, ok := parseID(ctx, rawItem, "barangId", string(domainerror.ErrCodeMissingBookkeepingFields))
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, itemID, true
}

func transactionResponse(record *entity.TransactionRecord, items ...*entity.Item) dto.TransactionResponse {
	return dto.TransactionResponse{
		Record: dto.ToRecordResponse(record),
		Items:  dto.ToItemResponses(items),
	}
}

// handleBookkeepingError also serves the report endpoints, whose errors share the BKP codes.
func handleBookkeepingError(ctx *gin.Context, err error) {
	var bkpErr *domainerror.BookkeepingError
	if errors.As(err, &bkpErr) {
		ctx.JSON(bookkeepingStatus(bkpErr.Code), dto.Failure(bkpErr.Message, string(bkpErr.Code)))
		return
	}
	respondInternal(ctx, err)
}

func bookkeepingStatus(code domainerror.BookkeepingErrorCode) int {
	switch code {
	case domainerror.ErrCodeOwnerMissing,
		domainerror.ErrCodeItemMissing,
		domainerror.ErrCodeTotalsNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidQuantity,
		domainerror.ErrCodeInvalidDate,
		domainerror.ErrCodeInvalidTime,
		domainerror.ErrCodeInvalidPrice,
		domainerror.ErrCodeEmptySale,
		domainerror.ErrCodeMissingBookkeepingFields,
		domainerror.ErrCodeInvalidOwnerID,
		domainerror.ErrCodeStockTooLow:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
