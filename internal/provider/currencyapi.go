package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"currencyapp/internal/model"
)

var _ RatesProvider = (*CurrencyAPIProvider)(nil)

const maxErrorBody = 512

// CurrencyAPIProvider fetches rates from the currencyapi.net API.
type CurrencyAPIProvider struct {
	baseURL      string
	apiKey       string
	baseCurrency string
	output       string
	client       *http.Client
}

// NewCurrencyAPIProvider creates a new CurrencyAPIProvider.
func NewCurrencyAPIProvider(baseURL, apiKey, baseCurrency, output string, timeoutSec int) *CurrencyAPIProvider {
	if baseURL == "" {
		baseURL = "https://currencyapi.net/api/v1/rates"
	}
	return &CurrencyAPIProvider{
		baseURL:      baseURL,
		apiKey:       apiKey,
		baseCurrency: baseCurrency,
		output:       output,
		client:       &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

// ratesURL forms the API URL for fetching the full rate table.
func (p *CurrencyAPIProvider) ratesURL() (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("key", p.apiKey)
	q.Set("base", p.baseCurrency)
	q.Set("output", p.output)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// GetRates performs a single GET against the rate endpoint. There is no retry.
func (p *CurrencyAPIProvider) GetRates(ctx context.Context) (*model.Snapshot, error) {
	reqURL, err := p.ratesURL()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base url: %w", ErrFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: request creation failed: %w", ErrFetch, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrFetch, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: currencyapi returned status %d: %s", ErrFetch, resp.StatusCode, string(body))
	}

	var snapshot model.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: failed to decode currencyapi response: %w", ErrFetch, err)
	}
	if !snapshot.Valid {
		return nil, fmt.Errorf("%w: currencyapi returned valid=false", ErrFetch)
	}
	if len(snapshot.Rates) == 0 {
		return nil, fmt.Errorf("%w: currencyapi returned no rates", ErrFetch)
	}

	return &snapshot, nil
}
