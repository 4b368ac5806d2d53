package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// HistoryRow holds the columns shared by the income and expense history tables.
type HistoryRow struct {
	ID          uuid.UUID        `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID        `gorm:"type:char(36);index;not null"`
	ItemID      *uuid.UUID       `gorm:"type:char(36)"`
	Date        time.Time        `gorm:"column:tanggal;type:date;not null"`
	Time        string           `gorm:"column:jam;type:varchar(8);not null"`
	Quantity    int64            `gorm:"not null"`
	UnitPrice   *decimal.Decimal `gorm:"type:decimal(15,2)"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	CreatedAt   time.Time        `gorm:"not null"`
}

// IncomeHistoryModel represents the income_history table.
type IncomeHistoryModel struct {
	HistoryRow `gorm:"embedded"`
}

// TableName returns the table name for the IncomeHistoryModel.
func (IncomeHistoryModel) TableName() string {
	return "income_history"
}

// ExpenseHistoryModel represents the expense_history table.
type ExpenseHistoryModel struct {
	HistoryRow `gorm:"embedded"`
}

// TableName returns the table name for the ExpenseHistoryModel.
func (ExpenseHistoryModel) TableName() string {
	return "expense_history"
}

// ToEntity converts a history row to a domain TransactionRecord of the given kind.
func (r *HistoryRow) ToEntity(kind entity.TransactionKind) *entity.TransactionRecord {
	return &entity.TransactionRecord{
		ID:          r.ID,
		OwnerID:     r.UserID,
		ItemID:      r.ItemID,
		Date:        r.Date,
		Time:        r.Time,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		TotalAmount: r.TotalAmount,
		Kind:        kind,
		CreatedAt:   r.CreatedAt,
	}
}

// HistoryRowFromEntity creates the shared history columns from a domain TransactionRecord.
func HistoryRowFromEntity(record *entity.TransactionRecord) HistoryRow {
	return HistoryRow{
		ID:          record.ID,
		UserID:      record.OwnerID,
		ItemID:      record.ItemID,
		Date:        record.Date,
		Time:        record.Time,
		Quantity:    record.Quantity,
		UnitPrice:   record.UnitPrice,
		TotalAmount: record.TotalAmount,
		CreatedAt:   record.CreatedAt,
	}
}
