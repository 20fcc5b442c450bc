package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheEntry_Fresh(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	ttl := 60 * time.Minute

	tests := []struct {
		name  string
		age   time.Duration
		fresh bool
	}{
		{"30 minutes old", 30 * time.Minute, true},
		{"90 minutes old", 90 * time.Minute, false},
		{"exactly at ttl", 60 * time.Minute, false},
		{"just written", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := &CacheEntry{Timestamp: now.Add(-tc.age), Data: &Snapshot{}}
			assert.Equal(t, tc.fresh, e.Fresh(now, ttl))
		})
	}
}

func TestCacheEntry_Validate(t *testing.T) {
	rates := map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.92")}

	assert.NoError(t, (&CacheEntry{Timestamp: time.Now(), Data: &Snapshot{Rates: rates}}).Validate())
	assert.Error(t, (&CacheEntry{Data: &Snapshot{Rates: rates}}).Validate())
	assert.Error(t, (&CacheEntry{Timestamp: time.Now()}).Validate())
	assert.Error(t, (&CacheEntry{Timestamp: time.Now(), Data: &Snapshot{}}).Validate())
}

func TestSnapshot_Rate(t *testing.T) {
	s := &Snapshot{Rates: map[string]decimal.Decimal{"HUF": decimal.NewFromInt(360)}}

	rate, err := s.Rate(HUF)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(360)))

	_, err = s.Rate(EUR)
	assert.ErrorIs(t, err, ErrMissingRate)
}

func TestCacheEntry_DecodesLegacyFile(t *testing.T) {
	raw := `{
  "Timestamp": "2025-03-01T10:15:30.1234567+01:00",
  "Data": {
    "valid": true,
    "updated": 1740820500,
    "base": "USD",
    "rates": {"EUR": 0.92, "HUF": 360.0}
  }
}`

	var e CacheEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	require.NoError(t, e.Validate())
	assert.Equal(t, "USD", e.Data.Base)
	assert.True(t, e.Data.Rates["EUR"].Equal(decimal.RequireFromString("0.92")))
	assert.Equal(t, int64(1740820500), e.Data.UpdatedAt().Unix())
}

func TestDirection(t *testing.T) {
	assert.True(t, EURToHUF.Valid())
	assert.True(t, HUFToEUR.Valid())
	assert.False(t, Direction(0).Valid())
	assert.Equal(t, EUR, EURToHUF.From())
	assert.Equal(t, HUF, EURToHUF.To())
	assert.Equal(t, HUF, HUFToEUR.From())
	assert.Equal(t, EUR, HUFToEUR.To())
	assert.Equal(t, "unknown", Direction(7).String())
}
