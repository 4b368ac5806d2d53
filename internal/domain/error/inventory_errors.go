// Package error defines domain-specific errors for the SmartBiz application.
package error

import "errors"

// Inventory domain errors.
var (
	// ErrItemNotFound is returned when an item is absent or owned by another user.
	ErrItemNotFound = errors.New("item not found")

	// ErrInsufficientStock is returned when a sale exceeds the quantity on hand.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidItemName is returned when an item name is empty or too long.
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrNegativePrice is returned when a unit price is below zero.
	ErrNegativePrice = errors.New("unit price must not be negative")

	// ErrPriceOutOfRange is returned when a unit price has more than two decimal places
	// or does not fit the amount columns.
	ErrPriceOutOfRange = errors.New("unit price must have at most two decimal places and fit 13 integer digits")

	// ErrNegativeQuantity is returned when a stock quantity is below zero.
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// InventoryErrorCode defines error codes for inventory errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InventoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidItemName   InventoryErrorCode = "INV-010001"
	ErrCodeNegativePrice     InventoryErrorCode = "INV-010002"
	ErrCodeNegativeQuantity  InventoryErrorCode = "INV-010003"
	ErrCodeMissingItemFields InventoryErrorCode = "INV-010004"
	ErrCodeInvalidItemID     InventoryErrorCode = "INV-010005"
	ErrCodeInvalidOwnerRef   InventoryErrorCode = "INV-010006"
	ErrCodePriceOutOfRange   InventoryErrorCode = "INV-010007"

	// Lookup errors (02XXXX)
	ErrCodeItemNotFound  InventoryErrorCode = "INV-020001"
	ErrCodeOwnerNotFound InventoryErrorCode = "INV-020002"

	// Stock errors (03XXXX)
	ErrCodeInsufficientStock InventoryErrorCode = "INV-030001"
)

// InventoryError represents an inventory error with code and message.
type InventoryError struct {
	Code    InventoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InventoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InventoryError) Unwrap() error {
	return e.Err
}

// NewInventoryError creates a new InventoryError with the given code and message.
func NewInventoryError(code InventoryErrorCode, message string, err error) *InventoryError {
	return &InventoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
