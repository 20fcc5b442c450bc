// Package provider resolves exchange-rate snapshots from the remote rate API,
// optionally through the local file cache.
package provider

import (
	"context"
	"errors"

	"currencyapp/internal/model"
)

// ErrFetch indicates the remote call failed or returned an unusable body.
var ErrFetch = errors.New("rates fetch failed")

// RatesProvider defines an interface for obtaining a current rate snapshot.
type RatesProvider interface {
	GetRates(ctx context.Context) (*model.Snapshot, error)
}
