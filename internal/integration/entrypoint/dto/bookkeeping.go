package dto

import (
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/domain/entity"
	"github.com/smartbiz/backend/internal/domain/valueobject"
)

// CreateIncomeRequest is the body of POST /create_income.
type CreateIncomeRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Date     string `json:"tanggal" binding:"required"`
	Time     string `json:"jam" binding:"required"`
	ItemID   string `json:"barangId" binding:"required"`
	Quantity *int64 `json:"jumlahBarang" binding:"required"`
}

// SaleLineRequest is one line of a multi-item sale.
type SaleLineRequest struct {
	ItemID   string `json:"barangId" binding:"required"`
	Quantity *int64 `json:"jumlahBarang" binding:"required"`
}

// CreateIncomeBatchRequest is the body of POST /create_income_batch.
type CreateIncomeBatchRequest struct {
	UserID string            `json:"userId" binding:"required"`
	Date   string            `json:"tanggal" binding:"required"`
	Time   string            `json:"jam" binding:"required"`
	Sales  []SaleLineRequest `json:"sales" binding:"required,dive"`
}

// CreateExpenseRequest is the body of POST /create_expense.
// The caller price is recorded without touching the item's stored price.
type CreateExpenseRequest struct {
	UserID   string           `json:"userId" binding:"required"`
	Date     string           `json:"tanggal" binding:"required"`
	Time     string           `json:"jam" binding:"required"`
	ItemID   string           `json:"barangId" binding:"required"`
	Quantity *int64           `json:"jumlahBarang" binding:"required"`
	Price    *decimal.Decimal `json:"hargaBarang" binding:"required"`
}

// RecordResponse represents one income or expense history entry.
type RecordResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	ItemID      *string          `json:"barangId"`
	Date        string           `json:"tanggal"`
	Time        string           `json:"jam"`
	Quantity    int64            `json:"jumlahBarang"`
	UnitPrice   *decimal.Decimal `json:"hargaBarang"`
	TotalAmount decimal.Decimal  `json:"total"`
	Kind        string           `json:"kind"`
}

// TransactionResponse is the payload of a recorded sale or purchase.
type TransactionResponse struct {
	Record RecordResponse `json:"record"`
	Items  []ItemResponse `json:"items"`
}

// ToRecordResponse converts a domain TransactionRecord to its response DTO.
func ToRecordResponse(record *entity.TransactionRecord) RecordResponse {
	resp := RecordResponse{
		ID:          record.ID.String(),
		UserID:      record.OwnerID.String(),
		Date:        record.Date.Format(valueobject.DateLayout),
		Time:        record.Time,
		Quantity:    record.Quantity,
		UnitPrice:   record.UnitPrice,
		TotalAmount: record.TotalAmount,
		Kind:        string(record.Kind),
	}
	if record.ItemID != nil {
		id := record.ItemID.String()
		resp.ItemID = &id
	}
	return resp
}
