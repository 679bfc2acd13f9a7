// Package cache holds the in-memory track metadata cache. Resolved
// playback descriptors expire individually after a TTL and the whole
// map is flushed periodically, because upstream media URLs only stay
// valid for a limited time.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"musicstream/internal/domain"
	"musicstream/internal/metrics"
)

const (
	defaultTTL           = time.Hour
	defaultFlushInterval = time.Hour
)

// Resolver produces a fresh playback descriptor for a track.
type Resolver interface {
	Execute(ctx context.Context, id domain.TrackID) (domain.TrackInfo, error)
}

type Option func(*TrackInfoCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *TrackInfoCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithFlushInterval(interval time.Duration) Option {
	return func(c *TrackInfoCache) {
		if interval > 0 {
			c.flushInterval = interval
		}
	}
}

// WithClock overrides the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *TrackInfoCache) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *TrackInfoCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// TrackInfoCache caches resolved track metadata keyed by track id.
// Concurrent misses for the same id are collapsed into a single
// upstream resolution; failures are never cached.
type TrackInfoCache struct {
	resolver      Resolver
	ttl           time.Duration
	flushInterval time.Duration
	now           func() time.Time
	logger        *slog.Logger

	mu      sync.RWMutex
	entries map[domain.TrackID]domain.TrackInfo

	group singleflight.Group

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(resolver Resolver, opts ...Option) *TrackInfoCache {
	c := &TrackInfoCache{
		resolver:      resolver,
		ttl:           defaultTTL,
		flushInterval: defaultFlushInterval,
		now:           time.Now,
		logger:        slog.Default(),
		entries:       make(map[domain.TrackID]domain.TrackInfo),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the periodic full flush. It must be paired with Stop.
func (c *TrackInfoCache) Start() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.flushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Flush()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop terminates the flush loop. Safe to call more than once.
func (c *TrackInfoCache) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
	c.wg.Wait()
}

// Prepare returns fresh playback metadata for the track, resolving it
// upstream on a miss or when the cached entry has gone stale.
func (c *TrackInfoCache) Prepare(ctx context.Context, id domain.TrackID) (domain.TrackInfo, error) {
	if info, ok := c.lookup(id); ok {
		metrics.CacheHitsTotal.Inc()
		return info, nil
	}
	metrics.CacheMissesTotal.Inc()

	result, err, _ := c.group.Do(string(id), func() (any, error) {
		// A concurrent caller may have resolved while we waited.
		if info, ok := c.lookup(id); ok {
			return info, nil
		}
		return c.resolve(ctx, id)
	})
	if err != nil {
		return domain.TrackInfo{}, err
	}
	return result.(domain.TrackInfo), nil
}

// Len reports the current number of cached entries.
func (c *TrackInfoCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush discards every cached entry.
func (c *TrackInfoCache) Flush() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[domain.TrackID]domain.TrackInfo)
	c.mu.Unlock()

	metrics.CacheEntries.Set(0)
	if n > 0 {
		c.logger.Info("track cache flushed", "entries", n)
	}
}

func (c *TrackInfoCache) lookup(id domain.TrackID) (domain.TrackInfo, bool) {
	c.mu.RLock()
	info, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return domain.TrackInfo{}, false
	}
	if c.now().Sub(info.ResolvedAt) > c.ttl {
		return domain.TrackInfo{}, false
	}
	return info, true
}

func (c *TrackInfoCache) resolve(ctx context.Context, id domain.TrackID) (domain.TrackInfo, error) {
	// The resolution outlives the first caller so that everyone
	// collapsed onto this flight still gets a usable result.
	ctx = context.WithoutCancel(ctx)

	metrics.ResolutionsTotal.Inc()
	started := time.Now()
	info, err := c.resolver.Execute(ctx, id)
	metrics.ResolutionDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.ResolutionFailuresTotal.Inc()
		c.logger.Warn("track resolution failed", "track_id", id, "error", err)
		return domain.TrackInfo{}, err
	}

	c.mu.Lock()
	c.entries[id] = info
	metrics.CacheEntries.Set(float64(len(c.entries)))
	c.mu.Unlock()

	c.logger.Debug("track resolved",
		"track_id", id,
		"itag", info.Format.Itag,
		"content_length", info.ContentLength)
	return info, nil
}
