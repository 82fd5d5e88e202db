package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/bellavista/orderbot/internal/domain"
)

const (
	defaultCacheDuration = 300 * time.Second
	defaultRetryInterval = 30 * time.Second

	catalogFlightKey = "menu"
)

// errRetryWindow is returned while a recent failure holds back the next fetch
var errRetryWindow = fmt.Errorf("%w: waiting before the next fetch attempt", domain.ErrCatalogUnavailable)

// ProviderConfig holds configuration for the catalog provider
type ProviderConfig struct {
	CacheDuration time.Duration
	// RetryInterval is how long a failed fetch is trusted before trying again
	RetryInterval   time.Duration
	FallbackEnabled bool
	Logger          *zap.Logger
	Recorder        Recorder
}

// CatalogProvider owns the catalog snapshot and refreshes it on a time-boxed policy.
// The engine never reaches into it; callers pass the snapshot it returns.
// Concurrent callers share one in-flight fetch; the lock is never held across it.
type CatalogProvider struct {
	client          domain.CatalogClient
	cacheDuration   time.Duration
	retryInterval   time.Duration
	fallbackEnabled bool
	logger          *zap.Logger
	recorder        Recorder
	flight          singleflight.Group

	mu        sync.Mutex
	snapshot  domain.Snapshot
	fetchedAt time.Time
	failedAt  time.Time
	loaded    bool
}

// NewCatalogProvider creates a provider backed by client
func NewCatalogProvider(client domain.CatalogClient, config ProviderConfig) *CatalogProvider {
	duration := config.CacheDuration
	if duration <= 0 {
		duration = defaultCacheDuration
	}

	retry := config.RetryInterval
	if retry <= 0 {
		retry = defaultRetryInterval
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CatalogProvider{
		client:          client,
		cacheDuration:   duration,
		retryInterval:   retry,
		fallbackEnabled: config.FallbackEnabled,
		logger:          logger,
		recorder:        recorderOrNop(config.Recorder),
	}
}

// Get returns the cached snapshot while it is younger than the cache duration,
// otherwise fetches a new one. A failed fetch serves the previous snapshot
// marked stale, or the degraded fallback menu when nothing was ever fetched,
// and no new fetch is tried until the retry interval has passed.
func (p *CatalogProvider) Get(ctx context.Context, now time.Time) domain.Snapshot {
	p.mu.Lock()
	if p.freshLocked(now) {
		snap := p.snapshot
		p.mu.Unlock()
		p.recorder.CatalogFetch("cache_hit")
		return snap
	}
	if p.coolingLocked(now) {
		snap := p.fallbackLocked(now)
		p.mu.Unlock()
		p.recorder.CatalogFetch("retry_wait")
		return snap
	}
	p.mu.Unlock()

	snap, err := p.fetch(ctx, now, false)
	if err == nil {
		return snap
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fallbackLocked(now)
}

// Refresh forces a fetch regardless of cache age or a recent failure
func (p *CatalogProvider) Refresh(ctx context.Context, now time.Time) (domain.Snapshot, error) {
	snap, err := p.fetch(ctx, now, true)
	if err != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.fallbackLocked(now), err
	}
	return snap, nil
}

func (p *CatalogProvider) freshLocked(now time.Time) bool {
	return p.loaded && now.Sub(p.fetchedAt) < p.cacheDuration
}

func (p *CatalogProvider) coolingLocked(now time.Time) bool {
	return !p.failedAt.IsZero() && now.Sub(p.failedAt) < p.retryInterval
}

// fetch runs at most one catalog request at a time. Callers arriving while it
// runs share its result. The request outlives a caller that goes away.
func (p *CatalogProvider) fetch(ctx context.Context, now time.Time, force bool) (domain.Snapshot, error) {
	v, err, _ := p.flight.Do(catalogFlightKey, func() (any, error) {
		if !force {
			// A flight that finished just before this one may already have answered
			p.mu.Lock()
			fresh, cooling, snap := p.freshLocked(now), p.coolingLocked(now), p.snapshot
			p.mu.Unlock()
			if fresh {
				return snap, nil
			}
			if cooling {
				return nil, errRetryWindow
			}
		}

		entries, err := p.client.FetchMenu(context.WithoutCancel(ctx))

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.failedAt = now
			p.recorder.CatalogFetch("error")
			p.logger.Warn("catalog fetch failed", zap.Error(err), zap.Duration("retry_in", p.retryInterval))
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}

		p.snapshot = domain.Snapshot{Entries: entries, FetchedAt: now}
		p.fetchedAt = now
		p.failedAt = time.Time{}
		p.loaded = true
		p.recorder.CatalogFetch("success")
		p.logger.Info("catalog refreshed",
			zap.Int("items", len(entries)),
			zap.Strings("categories", p.snapshot.Categories()),
		)
		return p.snapshot, nil
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return v.(domain.Snapshot), nil
}

func (p *CatalogProvider) fallbackLocked(now time.Time) domain.Snapshot {
	if p.loaded {
		stale := p.snapshot
		stale.Stale = true
		return stale
	}
	if !p.fallbackEnabled {
		return domain.Snapshot{FetchedAt: now}
	}
	p.logger.Warn("serving static fallback menu")
	return domain.Snapshot{
		FetchedAt:     now,
		Degraded:      true,
		FallbackNames: domain.FallbackMenuNames,
	}
}
