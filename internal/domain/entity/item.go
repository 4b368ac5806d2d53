// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a stocked good owned by a single user.
// QuantityOnHand is never negative.
type Item struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	UnitPrice      decimal.Decimal
	QuantityOnHand int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewItem creates a new Item entity.
func NewItem(ownerID uuid.UUID, name string, unitPrice decimal.Decimal, quantity int64) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           name,
		UnitPrice:      unitPrice,
		QuantityOnHand: quantity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// CanFulfil reports whether a positive quantity can be taken from the units on hand.
func (i *Item) CanFulfil(quantity int64) bool {
	return quantity > 0 && quantity <= i.QuantityOnHand
}

// Valuation returns the value of the stock on hand at the stored unit price.
func (i *Item) Valuation() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.QuantityOnHand))
}
