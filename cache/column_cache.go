package cache

import (
	"github.com/Konsultn-Engineering/pagedb/schema"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultColumnCacheSize bounds how many cursor descriptions are remembered.
const DefaultColumnCacheSize = 64

// ColumnCache remembers the column descriptors of the last cursor fetched for a
// table, so a temporary table of the same shape can be created later.
type ColumnCache struct {
	cache *lru.Cache[string, []schema.Column]
}

func NewColumnCache(size int) *ColumnCache {
	if size <= 0 {
		size = DefaultColumnCacheSize
	}
	// lru.New only fails for a non-positive size.
	c, _ := lru.New[string, []schema.Column](size)
	return &ColumnCache{cache: c}
}

// Get returns a copy of the descriptors recorded for table.
func (c *ColumnCache) Get(table string) ([]schema.Column, bool) {
	cols, ok := c.cache.Get(table)
	if !ok {
		return nil, false
	}
	return append([]schema.Column(nil), cols...), true
}

// Set records cols for table, replacing any earlier description.
func (c *ColumnCache) Set(table string, cols []schema.Column) {
	c.cache.Add(table, append([]schema.Column(nil), cols...))
}

// Len reports how many tables have recorded descriptors.
func (c *ColumnCache) Len() int {
	return c.cache.Len()
}
