// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes the two history lifelines.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// TransactionRecord is an immutable history row for one sale or purchase.
// ItemID and UnitPrice are nil for sales that span several items.
type TransactionRecord struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	ItemID      *uuid.UUID
	Date        time.Time // calendar date, time-of-day truncated
	Time        string    // HH:MM:SS
	Quantity    int64
	UnitPrice   *decimal.Decimal
	TotalAmount decimal.Decimal
	Kind        TransactionKind
	CreatedAt   time.Time
}

// NewIncomeRecord creates the history record for a sale.
func NewIncomeRecord(ownerID uuid.UUID, itemID *uuid.UUID, date time.Time, clock string, quantity int64, unitPrice *decimal.Decimal, total decimal.Decimal) *TransactionRecord {
	return newRecord(TransactionKindIncome, ownerID, itemID, date, clock, quantity, unitPrice, total)
}

// NewExpenseRecord creates the history record for a purchase.
func NewExpenseRecord(ownerID uuid.UUID, itemID *uuid.UUID, date time.Time, clock string, quantity int64, unitPrice *decimal.Decimal, total decimal.Decimal) *TransactionRecord {
	return newRecord(TransactionKindExpense, ownerID, itemID, date, clock, quantity, unitPrice, total)
}

func newRecord(
	kind TransactionKind,
	ownerID uuid.UUID,
	itemID *uuid.UUID,
	date time.Time,
	clock string,
	quantity int64,
	unitPrice *decimal.Decimal,
	total decimal.Decimal,
) *TransactionRecord {
	return &TransactionRecord{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ItemID:      itemID,
		Date:        date,
		Time:        clock,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: total,
		Kind:        kind,
		CreatedAt:   time.Now().UTC(),
	}
}

// TransactionTotals is the sum of an owner's history, per lifeline.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}
