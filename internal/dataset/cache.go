package dataset

import (
	"context"
	"log/slog"
	"sync"
)

// Cache memoizes cleaned tables by source path. Implementations never
// consult the filesystem: the same key returns the previously computed
// table until the caller clears it. Invalidation is always explicit.
type Cache interface {
	Get(key string) (*Table, bool)
	Put(key string, table *Table)
	Clear()
	Invalidate(key string)
}

// MemoryCache is a mutex-guarded in-process Cache.
type MemoryCache struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{tables: make(map[string]*Table)}
}

// Get returns the cached table for key, if any.
func (c *MemoryCache) Get(key string) (*Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[key]
	return t, ok
}

// Put stores the table under key, replacing any previous entry.
func (c *MemoryCache) Put(key string, table *Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[key] = table
}

// Clear drops every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = make(map[string]*Table)
}

// Invalidate drops the entry for key.
func (c *MemoryCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tables, key)
}

// CachingLoader wraps a Loader with an injected Cache. The cache
// collaborator is supplied by the caller, which also owns the invalidation
// policy.
type CachingLoader struct {
	loader  Loader
	cache   Cache
	logger  *slog.Logger
	metrics *Metrics
}

// NewCachingLoader wraps loader with cache.
func NewCachingLoader(loader Loader, cache Cache, logger *slog.Logger, metrics *Metrics) *CachingLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingLoader{
		loader:  loader,
		cache:   cache,
		logger:  logger.With(slog.String("component", "dataset_cache")),
		metrics: metrics,
	}
}

// Load returns the cached table for path when present, otherwise delegates
// to the wrapped loader and stores the result. Failed loads are never
// cached.
func (c *CachingLoader) Load(ctx context.Context, path string) (*Table, error) {
	if table, ok := c.cache.Get(path); ok {
		c.metrics.RecordCacheHit(ctx, path)
		c.logger.DebugContext(ctx, "cache hit", slog.String("source", path))
		return table, nil
	}

	table, err := c.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	c.cache.Put(path, table)
	return table, nil
}

// Invalidate drops the cached table for path.
func (c *CachingLoader) Invalidate(path string) {
	c.cache.Invalidate(path)
}
