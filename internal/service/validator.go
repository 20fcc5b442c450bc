package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// maxAmountLength bounds the raw input before it is parsed.
	maxAmountLength = 64

	// Amounts must fall within the finite range of a float64, i.e. their
	// decimal order of magnitude must lie in [minAmountOrder, maxAmountOrder].
	maxAmountOrder = 308
	minAmountOrder = -324
)

// ParseAmount parses user input as a strictly positive decimal.
// Both '.' and ',' are accepted as the decimal separator, as is scientific
// notation ("1,5E+3").
func ParseAmount(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if s == "" || len(s) > maxAmountLength {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Decimal{}, err
	}
	return amount, nil
}

// ValidateAmount reports ErrInvalidAmount unless amount is positive and within
// the magnitude a conversion can round in bounded time.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	order := int64(amount.Exponent()) + int64(amount.NumDigits()) - 1
	if order > maxAmountOrder || order < minAmountOrder {
		return ErrInvalidAmount
	}
	// trailing fractional digits are bounded too, Round rescales by them
	if amount.Exponent() < minAmountOrder-maxAmountLength {
		return ErrInvalidAmount
	}
	return nil
}
