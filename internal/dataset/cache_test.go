package dataset

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLoader records how many times each path is loaded.
type countingLoader struct {
	mu    sync.Mutex
	loads map[string]int
}

func newCountingLoader() *countingLoader {
	return &countingLoader{loads: make(map[string]int)}
}

func (c *countingLoader) Load(ctx context.Context, path string) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads[path]++
	return &Table{Source: path}, nil
}

func (c *countingLoader) count(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads[path]
}

func TestCachingLoader_Memoizes(t *testing.T) {
	ctx := context.Background()
	inner := newCountingLoader()
	loader := NewCachingLoader(inner, NewMemoryCache(), nil, nil)

	first, err := loader.Load(ctx, "data.csv")
	require.NoError(t, err)
	second, err := loader.Load(ctx, "data.csv")
	require.NoError(t, err)

	// Same key returns the previously computed table without re-parsing.
	assert.Same(t, first, second)
	assert.Equal(t, 1, inner.count("data.csv"))

	// Different keys load independently.
	_, err = loader.Load(ctx, "other.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.count("other.csv"))
}

func TestCachingLoader_Invalidate(t *testing.T) {
	ctx := context.Background()
	inner := newCountingLoader()
	loader := NewCachingLoader(inner, NewMemoryCache(), nil, nil)

	_, err := loader.Load(ctx, "data.csv")
	require.NoError(t, err)

	loader.Invalidate("data.csv")

	_, err = loader.Load(ctx, "data.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.count("data.csv"))
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := NewMemoryCache()
	cache.Put("a", &Table{Source: "a"})
	cache.Put("b", &Table{Source: "b"})

	cache.Clear()

	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.False(t, ok)
}

func TestCachingLoader_DoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	loader := NewCachingLoader(NewFileLoader(nil, nil), cache, nil, nil)

	_, err := loader.Load(ctx, "does-not-exist.csv")
	require.Error(t, err)

	_, ok := cache.Get("does-not-exist.csv")
	assert.False(t, ok)
}
