package scanner

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of files an ExportCache remembers.
const DefaultCacheSize = 4096

// ExportCache remembers the exports of files across scans. An entry is
// reused only while the file keeps the same size and modification time.
type ExportCache struct {
	cache *lru.Cache[string, cachedExports]
}

type cachedExports struct {
	size    int64
	modTime time.Time
	names   []string
}

// NewExportCache creates a cache holding up to size files.
func NewExportCache(size int) (*ExportCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, cachedExports](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create export cache: %w", err)
	}
	return &ExportCache{cache: cache}, nil
}

func (c *ExportCache) get(path string, size int64, modTime time.Time) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.cache.Get(path)
	if !ok || entry.size != size || !entry.modTime.Equal(modTime) {
		return nil, false
	}
	return entry.names, true
}

func (c *ExportCache) add(path string, size int64, modTime time.Time, names []string) {
	if c == nil {
		return
	}
	c.cache.Add(path, cachedExports{size: size, modTime: modTime, names: names})
}

// Len returns the number of cached files.
func (c *ExportCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}

// Purge drops every cached entry.
func (c *ExportCache) Purge() {
	if c != nil {
		c.cache.Purge()
	}
}
