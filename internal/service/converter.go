// Package service implements EUR/HUF conversion on top of a rate snapshot.
package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"currencyapp/internal/model"
)

// ResultPlaces is the number of decimal places a converted amount is rounded to.
const ResultPlaces = 2

// CrossRates holds both EUR/HUF rates derived from a snapshot.
// HUFToEUR is only defined while EURToHUF is non-zero.
type CrossRates struct {
	EURToHUF decimal.Decimal
	HUFToEUR decimal.Decimal
}

// For returns the rate matching direction.
func (r CrossRates) For(direction model.Direction) (decimal.Decimal, error) {
	switch direction {
	case model.EURToHUF:
		return r.EURToHUF, nil
	case model.HUFToEUR:
		if r.EURToHUF.IsZero() {
			return decimal.Decimal{}, fmt.Errorf("%w: HUF rate is zero, %s is undefined", ErrConversion, direction)
		}
		return r.HUFToEUR, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %d", ErrInvalidDirection, direction)
	}
}

// Converter computes EUR/HUF amounts through the snapshot base currency.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Rates derives the EUR/HUF cross rates from snapshot.
// Both rates must be present and the EUR rate must be non-zero. A zero HUF
// rate still converts EUR to HUF; For rejects the opposite direction.
func (c *Converter) Rates(snapshot *model.Snapshot) (CrossRates, error) {
	if snapshot == nil {
		return CrossRates{}, fmt.Errorf("%w: no snapshot", ErrConversion)
	}
	eur, err := snapshot.Rate(model.EUR)
	if err != nil {
		return CrossRates{}, err
	}
	huf, err := snapshot.Rate(model.HUF)
	if err != nil {
		return CrossRates{}, err
	}
	if eur.IsZero() {
		return CrossRates{}, fmt.Errorf("%w: EUR rate is zero", ErrConversion)
	}

	rates := CrossRates{EURToHUF: huf.Div(eur)}
	if !rates.EURToHUF.IsZero() {
		rates.HUFToEUR = decimal.NewFromInt(1).Div(rates.EURToHUF)
	}
	return rates, nil
}

// Convert applies the rate for direction to amount and rounds the result to
// ResultPlaces decimal places.
func (c *Converter) Convert(snapshot *model.Snapshot, direction model.Direction, amount decimal.Decimal) (decimal.Decimal, error) {
	if !direction.Valid() {
		return decimal.Decimal{}, fmt.Errorf("%w: %d", ErrInvalidDirection, direction)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Decimal{}, err
	}

	rates, err := c.Rates(snapshot)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rate, err := rates.For(direction)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return c.Apply(rate, amount), nil
}

// Apply multiplies amount by rate and rounds to ResultPlaces decimal places.
func (c *Converter) Apply(rate, amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(ResultPlaces)
}
