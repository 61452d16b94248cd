// Package cache holds the in-memory mirror of every table: record
// mappings keyed by scoped table name, plus a parallel mirror of each
// scope's metadata record.
//
// The cache guards its own name-to-table maps; the tables themselves
// are mutated only by the engine's serialized operations (reducer and
// load), never by external writers.
package cache

import (
	"sync"

	"github.com/roach88/tablesync/internal/record"
)

// TransformedSuffix names the shadow table a derived-view layer keeps
// alongside each scoped table.
const TransformedSuffix = "/_transformed"

// Cache mirrors the durable store in memory.
type Cache struct {
	mu       sync.RWMutex
	tables   map[string]record.Table
	metadata map[string]record.Record
}

// Snapshot is a wholesale copy of the cache's state, used by the
// preload fast path to hydrate the cache without a store read.
type Snapshot struct {
	Tables   map[string]record.Table
	Metadata map[string]record.Record
}

// Empty reports whether the snapshot carries no data at all, in which
// case initialization falls through to the normal load.
func (s *Snapshot) Empty() bool {
	return s == nil || (len(s.Tables) == 0 && len(s.Metadata) == 0)
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		tables:   make(map[string]record.Table),
		metadata: make(map[string]record.Record),
	}
}

// Ensure creates an empty table under name if absent or nil and
// returns it. Idempotent: safe to call from concurrent load paths.
func (c *Cache) Ensure(name string) record.Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tables[name]
	if !ok || t == nil {
		t = record.Table{}
		c.tables[name] = t
	}
	return t
}

// Has reports whether a table exists under name.
func (c *Cache) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.tables[name]
	return ok
}

// Get returns the table under name, or nil if absent. Never panics.
func (c *Cache) Get(name string) record.Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tables[name]
}

// GetItem returns one entry of the table under name, or nil if the
// table or the entry is absent.
func (c *Cache) GetItem(name, itemID string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[name]
	if !ok {
		return nil
	}
	return t[itemID]
}

// Insert sets one entry of the table under name, creating the table if
// needed.
func (c *Cache) Insert(name, key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tables[name]
	if !ok {
		t = record.Table{}
		c.tables[name] = t
	}
	t[key] = v
}

// DeleteKey removes one entry of the table under name. No-op if the
// table never existed.
func (c *Cache) DeleteKey(name, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[name]; ok {
		delete(t, key)
	}
}

// Replace swaps the whole table under name. The previous mapping stays
// valid for callers that captured it (the reducer diffs against it).
func (c *Cache) Replace(name string, t record.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[name] = t
}

// Drop removes the table under name along with its transformed shadow.
func (c *Cache) Drop(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tables, name)
	delete(c.tables, name+TransformedSuffix)
}

// Metadata returns the metadata record for a scope name, or nil.
func (c *Cache) Metadata(name string) record.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metadata[name]
}

// SetMetadata stores the metadata record for a scope name.
func (c *Cache) SetMetadata(name string, rec record.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata[name] = rec
}

// Adopt replaces the cache's state with a preloaded snapshot.
func (c *Cache) Adopt(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = make(map[string]record.Table, len(s.Tables))
	for name, t := range s.Tables {
		c.tables[name] = t
	}
	c.metadata = make(map[string]record.Record, len(s.Metadata))
	for name, rec := range s.Metadata {
		c.metadata[name] = rec
	}
}
