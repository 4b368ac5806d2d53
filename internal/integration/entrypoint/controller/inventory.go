package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/application/usecase/inventory"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/domain/valueobject"
	"github.com/smartbiz/backend/internal/integration/entrypoint/dto"
)

// InventoryController handles the item endpoints.
type InventoryController struct {
	addUseCase    *inventory.AddItemUseCase
	getUseCase    *inventory.GetItemUseCase
	listUseCase   *inventory.ListItemsUseCase
	editUseCase   *inventory.EditItemUseCase
	deleteUseCase *inventory.DeleteItemUseCase
	currency      string
}

// NewInventoryController creates a new inventory controller instance.
func NewInventoryController(
	addUseCase *inventory.AddItemUseCase,
	getUseCase *inventory.GetItemUseCase,
	listUseCase *inventory.ListItemsUseCase,
	editUseCase *inventory.EditItemUseCase,
	deleteUseCase *inventory.DeleteItemUseCase,
	currency string,
) *InventoryController {
	return &InventoryController{
		addUseCase:    addUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		editUseCase:   editUseCase,
		deleteUseCase: deleteUseCase,
		currency:      currency,
	}
}

// Add handles POST /add_barang and POST /input_barang.
func (c *InventoryController) Add(ctx *gin.Context) {
	var req dto.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingItemFields))
		return
	}
	ownerID, ok := parseID(ctx, req.UserID, "userId", string(domainerror.ErrCodeInvalidOwnerRef))
	if !ok {
		return
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), inventory.AddItemInput{
		OwnerID:   ownerID,
		Name:      req.Name,
		UnitPrice: *req.Price,
		Quantity:  *req.Quantity,
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success("Item added", dto.ToItemResponse(output.Item)))
}

// List handles GET /barang/:userId.
func (c *InventoryController) List(ctx *gin.Context) {
	ownerID, ok := parseID(ctx, ctx.Param("userId"), "userId", string(domainerror.ErrCodeInvalidOwnerRef))
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), inventory.ListItemsInput{OwnerID: ownerID})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("Items retrieved", dto.ItemListResponse{
		Items:      dto.ToItemResponses(output.Items),
		TotalUnits: output.TotalUnits,
		StockValue: valueobject.FormatAmount(output.StockValue, c.currency),
	}))
}

// Get handles GET /barang/:userId/:barangId.
func (c *InventoryController) Get(ctx *gin.Context) {
	ownerID, ok := parseID(ctx, ctx.Param("userId"), "userId", string(domainerror.ErrCodeInvalidOwnerRef))
	if !ok {
		return
	}
	itemID, ok := parseID(ctx, ctx.Param("barangId"), "barangId", string(domainerror.ErrCodeInvalidItemID))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), inventory.GetItemInput{
		ItemID:  itemID,
		OwnerID: ownerID,
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("Item retrieved", dto.ToItemResponse(output.Item)))
}

// Edit handles PUT /edit_barang/:barangId.
func (c *InventoryController) Edit(ctx *gin.Context) {
	itemID, ok := parseID(ctx, ctx.Param("barangId"), "barangId", string(domainerror.ErrCodeInvalidItemID))
	if !ok {
		return
	}
	var req dto.EditItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingItemFields))
		return
	}
	ownerID, ok := parseID(ctx, req.UserID, "userId", string(domainerror.ErrCodeInvalidOwnerRef))
	if !ok {
		return
	}

	output, err := c.editUseCase.Execute(ctx.Request.Context(), inventory.EditItemInput{
		ItemID:    itemID,
		OwnerID:   ownerID,
		Name:      req.Name,
		UnitPrice: *req.Price,
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("Item updated", dto.ToItemResponse(output.Item)))
}

// Delete handles DELETE /delete_barang/:barangId?userId=.
func (c *InventoryController) Delete(ctx *gin.Context) {
	itemID, ok := parseID(ctx, ctx.Param("barangId"), "barangId", string(domainerror.ErrCodeInvalidItemID))
	if !ok {
		return
	}
	ownerID, ok := parseID(ctx, ctx.Query("userId"), "userId", string(domainerror.ErrCodeInvalidOwnerRef))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), inventory.DeleteItemInput{
		ItemID:  itemID,
		OwnerID: ownerID,
	}); err != nil {
		c.handleInventoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("Item deleted", nil))
}

func (c *InventoryController) handleInventoryError(ctx *gin.Context, err error) {
	var invErr *domainerror.InventoryError
	if errors.As(err, &invErr) {
		ctx.JSON(inventoryStatus(invErr.Code), dto.Failure(invErr.Message, string(invErr.Code)))
		return
	}
	respondInternal(ctx, err)
}

func inventoryStatus(code domainerror.InventoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeItemNotFound,
		domainerror.ErrCodeOwnerNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidItemName,
		domainerror.ErrCodeNegativePrice,
		domainerror.ErrCodePriceOutOfRange,
		domainerror.ErrCodeNegativeQuantity,
		domainerror.ErrCodeMissingItemFields,
		domainerror.ErrCodeInvalidItemID,
		domainerror.ErrCodeInvalidOwnerRef,
		domainerror.ErrCodeInsufficientStock:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
