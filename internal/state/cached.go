package state

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/requisite/internal/log"
)

const (
	DefaultCacheTTL        = 30 * time.Second
	DefaultCleanupInterval = 5 * time.Minute
	settingsCacheKey       = "settings"
	capabilitiesCacheKey   = "capabilities"
)

// CachedStore serves Settings, Setting and Capabilities from an in-memory
// snapshot of the inner store. Every write goes to the inner store first and
// then drops the snapshot, so reads after a write always see it.
//
// A snapshot read from the inner store is only cached if no write finished
// while it was being read; otherwise a slow reader could put pre-write data
// back after the flush.
type CachedStore struct {
	Store
	cache *gocache.Cache
	ttl   time.Duration

	mu  sync.Mutex // guards gen and orders fills against flushes
	gen uint64     // bumped by every write
}

// NewCachedStore wraps inner with a read-through cache.
func NewCachedStore(inner Store, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{
		Store: inner,
		cache: gocache.New(ttl, DefaultCleanupInterval),
		ttl:   ttl,
	}
}

func (c *CachedStore) Setting(ctx context.Context, key string) (string, bool, error) {
	settings, err := c.Settings(ctx)
	if err != nil {
		return "", false, err
	}
	v, ok := settings[key]
	return v, ok, nil
}

func (c *CachedStore) Settings(ctx context.Context) (map[string]string, error) {
	if v, found := c.cache.Get(settingsCacheKey); found {
		if settings, ok := v.(map[string]string); ok {
			log.Debug(log.CatCache, "cache hit", "key", settingsCacheKey)
			return maps.Clone(settings), nil
		}
		log.Error(log.CatCache, "wrong type assertion when getting value", "key", settingsCacheKey)
	}

	gen := c.generation()
	settings, err := c.Store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	c.fill(gen, settingsCacheKey, maps.Clone(settings))
	return settings, nil
}

func (c *CachedStore) Capabilities(ctx context.Context) ([]string, error) {
	if v, found := c.cache.Get(capabilitiesCacheKey); found {
		if caps, ok := v.([]string); ok {
			log.Debug(log.CatCache, "cache hit", "key", capabilitiesCacheKey)
			return slices.Clone(caps), nil
		}
		log.Error(log.CatCache, "wrong type assertion when getting value", "key", capabilitiesCacheKey)
	}

	gen := c.generation()
	caps, err := c.Store.Capabilities(ctx)
	if err != nil {
		return nil, err
	}
	c.fill(gen, capabilitiesCacheKey, slices.Clone(caps))
	return caps, nil
}

func (c *CachedStore) Commit(ctx context.Context, requirementID string, values map[string]string) error {
	defer c.Invalidate()
	return c.Store.Commit(ctx, requirementID, values)
}

func (c *CachedStore) SetSetting(ctx context.Context, key, value string) error {
	defer c.Invalidate()
	return c.Store.SetSetting(ctx, key, value)
}

func (c *CachedStore) DeleteSetting(ctx context.Context, key string) error {
	defer c.Invalidate()
	return c.Store.DeleteSetting(ctx, key)
}

func (c *CachedStore) SetCapability(ctx context.Context, name string, enabled bool) error {
	defer c.Invalidate()
	return c.Store.SetCapability(ctx, name, enabled)
}

func (c *CachedStore) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// fill caches v unless a write completed since gen was taken.
func (c *CachedStore) fill(gen uint64, key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		log.Debug(log.CatCache, "discarding stale snapshot", "key", key)
		return
	}
	c.cache.Set(key, v, c.ttl)
}

// Invalidate drops every cached snapshot and any snapshot still being read.
func (c *CachedStore) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.cache.Flush()
}
