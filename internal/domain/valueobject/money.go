// Package valueobject contains immutable value types shared by the use cases.
package valueobject

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no display currency is configured.
const DefaultCurrency = "IDR"

// PriceDecimals is the scale of every stored amount column.
const PriceDecimals = 2

// MaxPrice is the largest unit price a decimal(15,2) column holds.
var MaxPrice = decimal.RequireFromString("9999999999999.99")

// FitsPriceColumn reports whether a non-negative unit price can be stored without
// rounding or overflow.
func FitsPriceColumn(price decimal.Decimal) bool {
	return price.Equal(price.Round(PriceDecimals)) && price.LessThanOrEqual(MaxPrice)
}

// FormatAmount renders a major-unit decimal amount in the given ISO currency,
// e.g. 3000 IDR -> "Rp3.000,00".
func FormatAmount(amount decimal.Decimal, currencyCode string) string {
	if currencyCode == "" {
		currencyCode = DefaultCurrency
	}
	// money.New never returns a nil currency, unknown codes get an empty template.
	cur := money.New(0, currencyCode).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, currencyCode).Display()
}

// LineTotal returns quantity times unit price.
func LineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}
