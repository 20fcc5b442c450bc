package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"currencyapp/internal/model"
	"currencyapp/internal/repository"
	"currencyapp/internal/testkit"
)

type failingSaveRepo struct {
	repository.SnapshotRepository
}

func (failingSaveRepo) Save(*model.CacheEntry) error {
	return errors.New("disk full")
}

func newCached(t *testing.T, prov RatesProvider, repo repository.SnapshotRepository, now time.Time) *CachedRatesProviderDecorator {
	t.Helper()
	p := NewCachedRatesProvider(prov, repo, 60*time.Minute, zap.NewNop().Sugar())
	p.now = func() time.Time { return now }
	return p
}

func TestCachedRatesProvider_Resolve(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	snapshot := testkit.SampleSnapshot()

	t.Run("fresh cache skips the network", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		testkit.WriteCacheFile(t, path, now.Add(-30*time.Minute))

		mockProv := new(MockProvider)
		p := newCached(t, mockProv, repository.NewFileSnapshotRepository(path), now)

		res, err := p.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceCache, res.Source)
		assert.Equal(t, "USD", res.Snapshot.Base)
		mockProv.AssertNotCalled(t, "GetRates", mock.Anything)
	})

	t.Run("stale cache is refetched and overwritten", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		testkit.WriteCacheFile(t, path, now.Add(-90*time.Minute))
		repo := repository.NewFileSnapshotRepository(path)

		mockProv := new(MockProvider)
		mockProv.On("GetRates", mock.Anything).Return(snapshot, nil).Once()
		p := newCached(t, mockProv, repo, now)

		res, err := p.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceRemote, res.Source)
		mockProv.AssertExpectations(t)

		entry, err := repo.Load()
		require.NoError(t, err)
		assert.True(t, entry.Timestamp.Equal(now))
	})

	t.Run("corrupt cache is deleted and refetched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		testkit.WriteRawCacheFile(t, path, "this is not json")

		mockProv := new(MockProvider)
		mockProv.On("GetRates", mock.Anything).Return(snapshot, nil).Once()
		p := newCached(t, mockProv, repository.NewFileSnapshotRepository(path), now)

		res, err := p.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceRemote, res.Source)
		mockProv.AssertExpectations(t)
	})

	t.Run("corrupt cache is gone when fetch fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		testkit.WriteRawCacheFile(t, path, "[1,2")

		mockProv := new(MockProvider)
		mockProv.On("GetRates", mock.Anything).Return(nil, ErrFetch).Once()
		p := newCached(t, mockProv, repository.NewFileSnapshotRepository(path), now)

		_, err := p.Resolve(context.Background())
		assert.ErrorIs(t, err, ErrFetch)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("missing cache then hit", func(t *testing.T) {
		repo := repository.NewFileSnapshotRepository(filepath.Join(t.TempDir(), "cache.json"))

		mockProv := new(MockProvider)
		mockProv.On("GetRates", mock.Anything).Return(snapshot, nil).Once()
		p := newCached(t, mockProv, repo, now)

		first, err := p.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceRemote, first.Source)

		// MockProvider must not be called again because of .Once()
		second, err := p.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceCache, second.Source)
		mockProv.AssertExpectations(t)
	})

	t.Run("provider error is not cached", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		mockProv := new(MockProvider)
		mockProv.On("GetRates", mock.Anything).Return(nil, ErrFetch).Once()
		p := newCached(t, mockProv, repository.NewFileSnapshotRepository(path), now)

		_, err := p.GetRates(context.Background())
		assert.ErrorIs(t, err, ErrFetch)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("cache write failure still returns the snapshot", func(t *testing.T) {
		repo := failingSaveRepo{repository.NewFileSnapshotRepository(filepath.Join(t.TempDir(), "cache.json"))}

		mockProv := new(MockProvider)
		mockProv.On("GetRates", mock.Anything).Return(snapshot, nil).Once()
		p := newCached(t, mockProv, repo, now)

		got, err := p.GetRates(context.Background())
		require.NoError(t, err)
		assert.Same(t, snapshot, got)
	})
}

func TestCachedRatesProvider_AgainstFakeAPI(t *testing.T) {
	api := testkit.NewRatesAPI(t)
	path := filepath.Join(t.TempDir(), "cache.json")
	now := time.Now()

	p := newCached(t,
		NewCurrencyAPIProvider(api.URL(), "k", "USD", "JSON", 5),
		repository.NewFileSnapshotRepository(path), now)

	for i := 0; i < 3; i++ {
		_, err := p.GetRates(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, api.Hits())
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "cache", SourceCache.String())
	assert.Equal(t, "remote", SourceRemote.String())
	assert.Equal(t, "unknown", Source(0).String())
}
