package domain

import "github.com/shopspring/decimal"

// CurrencyPlaces is the number of fractional digits money is kept at.
const CurrencyPlaces = 2

// CheckAmount fails with ErrInvalidAmount unless amount is positive and
// representable at currency precision.
func CheckAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewError(ErrInvalidAmount, "amount must be greater than zero")
	}
	if !amount.Equal(amount.Round(CurrencyPlaces)) {
		return NewError(ErrInvalidAmount, "amount must have at most %d decimal places", CurrencyPlaces)
	}
	return nil
}
