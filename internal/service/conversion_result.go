package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"currencyapp/internal/model"
	"currencyapp/internal/provider"
)

// ConversionResult represents a completed conversion returned by the service layer.
type ConversionResult struct {
	ID        string
	Direction model.Direction
	Amount    decimal.Decimal
	Result    decimal.Decimal
	Rate      decimal.Decimal
	Source    provider.Source
	RatesAt   time.Time
}

// String formats the result line shown to the user.
func (r *ConversionResult) String() string {
	return FormatAmount(r.Direction.To(), r.Result)
}

// RatePlaces is the number of decimal places shown for an exchange rate.
const RatePlaces = 6

// RateLine describes the rate used, e.g. "1 EUR = 391.304348 HUF (source: cache)".
func (r *ConversionResult) RateLine() string {
	return fmt.Sprintf("1 %s = %s %s (source: %s)",
		r.Direction.From(), r.Rate.StringFixed(RatePlaces), r.Direction.To(), r.Source)
}

// FormatAmount renders value in currency with two decimals, e.g. "In HUF: 39130.43 Ft".
func FormatAmount(currency model.Currency, value decimal.Decimal) string {
	fixed := value.StringFixed(ResultPlaces)
	switch currency {
	case model.HUF:
		return fmt.Sprintf("In HUF: %s Ft", fixed)
	case model.EUR:
		return fmt.Sprintf("In EUR: €%s", fixed)
	default:
		return fmt.Sprintf("In %s: %s", currency, fixed)
	}
}
