package provider

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"currencyapp/internal/model"
	"currencyapp/internal/repository"
)

// Source tells where a resolved snapshot came from.
type Source int

// Resolution sources.
const (
	SourceCache Source = iota + 1
	SourceRemote
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Resolution is the successful outcome of Resolve.
type Resolution struct {
	Snapshot *model.Snapshot
	Source   Source
	CachedAt time.Time
}

// CachedRatesProviderDecorator wraps a RatesProvider with the file cache.
type CachedRatesProviderDecorator struct {
	provider RatesProvider
	repo     repository.SnapshotRepository
	ttl      time.Duration
	log      *zap.SugaredLogger
	now      func() time.Time
}

// NewCachedRatesProvider creates a new CachedRatesProviderDecorator.
func NewCachedRatesProvider(provider RatesProvider, repo repository.SnapshotRepository, ttl time.Duration, logger *zap.SugaredLogger) *CachedRatesProviderDecorator {
	return &CachedRatesProviderDecorator{
		provider: provider,
		repo:     repo,
		ttl:      ttl,
		log:      logger,
		now:      time.Now,
	}
}

// GetRates returns the snapshot from Resolve.
func (p *CachedRatesProviderDecorator) GetRates(ctx context.Context) (*model.Snapshot, error) {
	res, err := p.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return res.Snapshot, nil
}

// Resolve serves a fresh cache entry if there is one, otherwise fetches from the
// underlying provider and writes the result back to the cache.
// A failed cache write is logged and does not fail the call.
func (p *CachedRatesProviderDecorator) Resolve(ctx context.Context) (Resolution, error) {
	if entry, ok := p.lookup(); ok {
		return Resolution{Snapshot: entry.Data, Source: SourceCache, CachedAt: entry.Timestamp}, nil
	}

	snapshot, err := p.provider.GetRates(ctx)
	if err != nil {
		return Resolution{}, err
	}

	now := p.now()
	if err := p.repo.Save(model.NewCacheEntry(snapshot, now)); err != nil {
		p.log.Warnw("Failed to update rate cache", "error", err)
	}

	return Resolution{Snapshot: snapshot, Source: SourceRemote, CachedAt: now}, nil
}

// lookup returns a fresh cache entry. A corrupt file is deleted; a stale one is
// left in place to be overwritten by the next successful fetch.
func (p *CachedRatesProviderDecorator) lookup() (*model.CacheEntry, bool) {
	entry, err := p.repo.Load()
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		return nil, false
	case errors.Is(err, repository.ErrCacheCorrupt):
		p.log.Warnw("Discarding corrupt rate cache", "error", err)
		if delErr := p.repo.Delete(); delErr != nil {
			p.log.Warnw("Failed to delete corrupt rate cache", "error", delErr)
		}
		return nil, false
	default:
		p.log.Warnw("Failed to read rate cache", "error", err)
		return nil, false
	}

	if !entry.Fresh(p.now(), p.ttl) {
		p.log.Debugw("Rate cache is stale", "cached_at", entry.Timestamp, "ttl", p.ttl)
		return nil, false
	}
	return entry, true
}

var _ RatesProvider = (*CachedRatesProviderDecorator)(nil)
