// Package error defines domain-specific errors for the SmartBiz application.
package error

import "errors"

// Bookkeeping domain errors.
var (
	// ErrInvalidTransactionQuantity is returned when a sale or purchase quantity is not positive.
	ErrInvalidTransactionQuantity = errors.New("transaction quantity must be positive")

	// ErrInvalidTransactionDate is returned when the transaction date cannot be parsed.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionTime is returned when the transaction time cannot be parsed.
	ErrInvalidTransactionTime = errors.New("invalid transaction time")

	// ErrEmptySale is returned when a multi-item sale has no lines.
	ErrEmptySale = errors.New("sale must contain at least one line")

	// ErrTotalsNotFound is returned when an owner has never transacted.
	ErrTotalsNotFound = errors.New("no profit totals for owner")

	// ErrOwnerNotFound is returned when the claimed owner does not exist.
	ErrOwnerNotFound = errors.New("owner not found")
)

// BookkeepingErrorCode defines error codes for bookkeeping errors.
// Format: BKP-XXYYYY where XX is category and YYYY is specific error.
type BookkeepingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidQuantity          BookkeepingErrorCode = "BKP-010001"
	ErrCodeInvalidDate              BookkeepingErrorCode = "BKP-010002"
	ErrCodeInvalidTime              BookkeepingErrorCode = "BKP-010003"
	ErrCodeInvalidPrice             BookkeepingErrorCode = "BKP-010004"
	ErrCodeEmptySale                BookkeepingErrorCode = "BKP-010005"
	ErrCodeMissingBookkeepingFields BookkeepingErrorCode = "BKP-010006"
	ErrCodeInvalidOwnerID           BookkeepingErrorCode = "BKP-010007"

	// Lookup errors (02XXXX)
	ErrCodeOwnerMissing   BookkeepingErrorCode = "BKP-020001"
	ErrCodeItemMissing    BookkeepingErrorCode = "BKP-020002"
	ErrCodeTotalsNotFound BookkeepingErrorCode = "BKP-020003"

	// Business rule errors (03XXXX)
	ErrCodeStockTooLow BookkeepingErrorCode = "BKP-030001"
)

// BookkeepingError represents a sale, purchase or totals error with code and message.
type BookkeepingError struct {
	Code    BookkeepingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BookkeepingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BookkeepingError) Unwrap() error {
	return e.Err
}

// NewBookkeepingError creates a new BookkeepingError with the given code and message.
func NewBookkeepingError(code BookkeepingErrorCode, message string, err error) *BookkeepingError {
	return &BookkeepingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
