// Package testkit provides a fake rate API and cache fixtures for tests.
package testkit

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"currencyapp/internal/model"
)

// SampleResponse is a currencyapi.net body with EUR at 0.92 and HUF at 360 per USD.
const SampleResponse = `{"valid":true,"updated":1760860800,"base":"USD","rates":{"EUR":0.92,"HUF":360.0,"USD":1}}`

// SampleSnapshot returns the decoded form of SampleResponse.
func SampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Valid:   true,
		Updated: 1760860800,
		Base:    "USD",
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.RequireFromString("0.92"),
			"HUF": decimal.RequireFromString("360"),
			"USD": decimal.NewFromInt(1),
		},
	}
}

// RatesAPI is an httptest server standing in for the remote rate endpoint.
type RatesAPI struct {
	server *httptest.Server

	mu        sync.Mutex
	status    int
	body      string
	hits      int
	lastQuery url.Values
}

// NewRatesAPI starts a fake API answering with SampleResponse. It is closed on test cleanup.
func NewRatesAPI(t testing.TB) *RatesAPI {
	t.Helper()

	api := &RatesAPI{status: http.StatusOK, body: SampleResponse}
	api.server = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.server.Close)
	return api
}

func (a *RatesAPI) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.hits++
	a.lastQuery = r.URL.Query()
	status, body := a.status, a.body
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// URL returns the endpoint URL to configure the provider with.
func (a *RatesAPI) URL() string {
	return a.server.URL + "/api/v1/rates"
}

// RespondWith changes the status and body served from now on.
func (a *RatesAPI) RespondWith(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status, a.body = status, body
}

// Hits returns how many requests the server has received.
func (a *RatesAPI) Hits() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits
}

// LastQuery returns the query parameters of the most recent request.
func (a *RatesAPI) LastQuery() url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastQuery
}

// WriteCacheFile writes a cache file holding SampleResponse stamped with ts.
func WriteCacheFile(t testing.TB, path string, ts time.Time) {
	t.Helper()
	WriteRawCacheFile(t, path, `{"Timestamp":"`+ts.Format(time.RFC3339Nano)+`","Data":`+SampleResponse+`}`)
}

// WriteRawCacheFile writes content verbatim to path.
func WriteRawCacheFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write cache fixture: %v", err)
	}
}
