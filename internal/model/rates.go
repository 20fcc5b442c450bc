// Package model defines the rate snapshot and cache entry shared by the provider,
// repository and conversion layers.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMissingRate is returned when a snapshot has no rate for a requested currency.
var ErrMissingRate = errors.New("rate missing from snapshot")

// Snapshot is a full set of rates captured at one point in time, relative to Base.
// Its JSON shape matches the currencyapi.net response body.
type Snapshot struct {
	Valid   bool                       `json:"valid"`
	Updated int64                      `json:"updated"`
	Base    string                     `json:"base"`
	Rates   map[string]decimal.Decimal `json:"rates"`
}

// UpdatedAt returns the provider-side update time of the snapshot.
func (s *Snapshot) UpdatedAt() time.Time {
	return time.Unix(s.Updated, 0).UTC()
}

// Rate returns the rate of code against the snapshot base currency.
func (s *Snapshot) Rate(code Currency) (decimal.Decimal, error) {
	rate, ok := s.Rates[string(code)]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrMissingRate, code)
	}
	return rate, nil
}

// CacheEntry is the on-disk form of a cached snapshot.
// Field names are kept capitalised so older cache files stay readable.
type CacheEntry struct {
	Timestamp time.Time `json:"Timestamp"`
	Data      *Snapshot `json:"Data"`
}

// NewCacheEntry wraps a freshly fetched snapshot for persisting.
func NewCacheEntry(snapshot *Snapshot, now time.Time) *CacheEntry {
	return &CacheEntry{Timestamp: now, Data: snapshot}
}

// Fresh reports whether the entry is younger than ttl at the given instant.
func (e *CacheEntry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.Timestamp) < ttl
}

// Validate reports entries that decoded but cannot be used.
func (e *CacheEntry) Validate() error {
	switch {
	case e.Timestamp.IsZero():
		return errors.New("cache entry has no timestamp")
	case e.Data == nil:
		return errors.New("cache entry has no data")
	case len(e.Data.Rates) == 0:
		return errors.New("cache entry has an empty rate table")
	}
	return nil
}
