package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/roach88/tablesync/internal/cache"
	"github.com/roach88/tablesync/internal/record"
	"github.com/roach88/tablesync/internal/scope"
	"github.com/roach88/tablesync/internal/store"
)

// Options scopes one operation.
type Options struct {
	// PrefixID namespaces a logical table within its shared physical
	// collection via composite record keys.
	PrefixID string

	// ItemID restricts the operation to one sub-document within a
	// prefixed table.
	ItemID string
}

// Preloader supplies an out-of-band cache snapshot so initialization
// can skip the store read on environments that already hydrated the
// data through another path. Snapshot may block until the pending
// hydration settles; an empty snapshot falls through to the normal
// load.
type Preloader interface {
	Snapshot(ctx context.Context) (*cache.Snapshot, error)
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger sets the engine's structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithPreload installs the preload fast path.
func WithPreload(p Preloader) Option {
	return func(e *Engine) { e.preload = p }
}

// Engine is the synchronization engine facade. Each instance owns its
// cache state; independent instances coexist under test.
type Engine struct {
	store   *store.Store
	cache   *cache.Cache
	log     *slog.Logger
	preload Preloader

	// mu serializes in-memory mutation across operations. Durable
	// writes are issued outside the lock; the store converges to cache
	// mutation order.
	mu        sync.Mutex
	loaded    map[string]bool  // collections already bulk-read
	loadGates map[string]*gate // in-flight bulk read per collection
	gates     map[string]*gate // adjustment readiness per scoped table

	// adjustScans counts one-time adjustment passes; tests assert the
	// single-flight guarantee through it.
	adjustScans int
}

// New creates an engine over a store. A nil store is valid: every
// operation then works against the cache only and never fails.
func New(s *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:     s,
		cache:     cache.New(),
		log:       slog.Default(),
		loaded:    make(map[string]bool),
		loadGates: make(map[string]*gate),
		gates:     make(map[string]*gate),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// GetTable returns the scoped table mapping, or the ItemID sub-document
// when item-scoped. Synchronous cache read; nil if never loaded.
func (e *Engine) GetTable(table string, opts Options) record.Table {
	name := scope.TableName(table, opts.PrefixID)
	if opts.ItemID != "" {
		m, _ := e.cache.GetItem(name, opts.ItemID).(map[string]any)
		return m
	}
	return e.cache.Get(name)
}

// GetTableTransformed returns the derived-view shadow of the scoped
// table, maintained by the view layer via SetTableTransformed.
func (e *Engine) GetTableTransformed(table string, opts Options) record.Table {
	name := scope.TableName(table, opts.PrefixID) + cache.TransformedSuffix
	if opts.ItemID != "" {
		m, _ := e.cache.GetItem(name, opts.ItemID).(map[string]any)
		return m
	}
	return e.cache.Get(name)
}

// SetTableTransformed stores the derived-view shadow for a scoped
// table. Cache-only: the shadow is never persisted and is dropped with
// its table.
func (e *Engine) SetTableTransformed(table string, t record.Table, opts Options) {
	e.cache.Replace(scope.TableName(table, opts.PrefixID)+cache.TransformedSuffix, t)
}

// GetMetadata returns the cached metadata record for the resolved
// scope, or nil if never set. No durable access.
func (e *Engine) GetMetadata(table string, opts Options) record.Record {
	_, name := scope.MetadataName(table, opts.PrefixID, opts.ItemID)
	return e.cache.Metadata(name)
}

// UpdateMetadata merges the partial metadata record into the scope's
// existing metadata (new fields overwrite, unspecified fields survive),
// re-stamps the id sentinel, and persists the merged record.
func (e *Engine) UpdateMetadata(ctx context.Context, table string, md record.Record, opts Options) error {
	base, name := scope.MetadataName(table, opts.PrefixID, opts.ItemID)

	e.mu.Lock()
	merged := record.CloneShallow(e.cache.Metadata(name))
	for k, v := range md {
		merged[k] = v
	}
	merged["id"] = scope.MetadataKey(base)
	e.cache.SetMetadata(name, merged)
	e.mu.Unlock()

	if e.store == nil {
		return nil
	}
	return e.store.Put(ctx, table, scope.MetadataKey(base), merged)
}
