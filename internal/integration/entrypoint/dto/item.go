package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// AddItemRequest is the body of POST /add_barang.
type AddItemRequest struct {
	UserID   string           `json:"userId" binding:"required"`
	Name     string           `json:"namaBarang" binding:"required"`
	Price    *decimal.Decimal `json:"hargaBarang" binding:"required"`
	Quantity *int64           `json:"jumlahBarang" binding:"required"`
}

// EditItemRequest is the body of PUT /edit_barang/:barangId.
type EditItemRequest struct {
	UserID string           `json:"userId" binding:"required"`
	Name   string           `json:"namaBarang" binding:"required"`
	Price  *decimal.Decimal `json:"hargaBarang" binding:"required"`
}

// ItemResponse represents one inventory item.
type ItemResponse struct {
	ID        string          `json:"barangId"`
	UserID    string          `json:"userId"`
	Name      string          `json:"namaBarang"`
	Price     decimal.Decimal `json:"hargaBarang"`
	Quantity  int64           `json:"jumlahBarang"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ItemListResponse is the payload of GET /barang/:userId.
type ItemListResponse struct {
	Items      []ItemResponse `json:"items"`
	TotalUnits int64          `json:"totalUnits"`
	StockValue string         `json:"stockValue"`
}

// ToItemResponse converts a domain Item to its response DTO.
func ToItemResponse(item *entity.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID.String(),
		UserID:    item.OwnerID.String(),
		Name:      item.Name,
		Price:     item.UnitPrice,
		Quantity:  item.QuantityOnHand,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// ToItemResponses converts a slice of items.
func ToItemResponses(items []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = ToItemResponse(item)
	}
	return out
}
