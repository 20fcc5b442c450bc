package service

import (
	"errors"

	"currencyapp/internal/model"
)

// ErrConversion indicates the snapshot cannot produce a defined cross rate.
var ErrConversion = errors.New("conversion failed")

// ErrInvalidDirection indicates an unsupported conversion direction.
var ErrInvalidDirection = errors.New("invalid conversion direction")

// ErrInvalidAmount indicates input that is not a strictly positive decimal.
var ErrInvalidAmount = errors.New("amount must be a positive number")

// ErrMissingRate indicates the snapshot lacks a rate for EUR or HUF.
var ErrMissingRate = model.ErrMissingRate

// IsConversionError reports whether err is a logic error of the conversion itself
// rather than a transient fetch failure.
func IsConversionError(err error) bool {
	return errors.Is(err, ErrConversion) ||
		errors.Is(err, ErrInvalidDirection) ||
		errors.Is(err, ErrMissingRate)
}
