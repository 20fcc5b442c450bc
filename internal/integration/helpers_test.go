package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"currencyapp/internal/provider"
	"currencyapp/internal/repository"
	"currencyapp/internal/service"
	"currencyapp/internal/testkit"
)

const cacheDuration = 60 * time.Minute

type stack struct {
	api       *testkit.RatesAPI
	repo      *repository.FileSnapshotRepository
	provider  *provider.CachedRatesProviderDecorator
	service   *service.ConversionService
	cachePath string
}

// newStack wires the real provider, file repository and service against a fake API.
func newStack(t *testing.T) *stack {
	t.Helper()

	api := testkit.NewRatesAPI(t)
	path := filepath.Join(t.TempDir(), "currencyCache.json")
	logger := zap.NewNop().Sugar()

	repo := repository.NewFileSnapshotRepository(path)
	cached := provider.NewCachedRatesProvider(
		provider.NewCurrencyAPIProvider(api.URL(), "test", "USD", "JSON", 5),
		repo, cacheDuration, logger)

	return &stack{
		api:       api,
		repo:      repo,
		provider:  cached,
		service:   service.NewConversionService(cached, service.NewConverter(), logger),
		cachePath: path,
	}
}

// testContext returns a context with a 10-second deadline tied to the test's cleanup.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
