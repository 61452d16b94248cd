package engine

import (
	"context"
	"fmt"

	"github.com/roach88/tablesync/internal/record"
	"github.com/roach88/tablesync/internal/scope"
)

// Initialize hydrates the cache. If a preloader is installed and yields
// a non-empty snapshot, the snapshot is adopted wholesale and the store
// is not read. Otherwise every collection present in the store is
// bulk-read inside one read transaction.
//
// A failed load is logged and swallowed: initialization always
// completes, degrading to an empty cache ("nothing loaded locally yet")
// rather than failing the caller.
func (e *Engine) Initialize(ctx context.Context) error {
	if e.preload != nil {
		snap, err := e.preload.Snapshot(ctx)
		if err != nil {
			e.log.Warn("preload failed, falling back to store load", "error", err)
		} else if !snap.Empty() {
			e.cache.Adopt(*snap)
			e.mu.Lock()
			for name := range snap.Tables {
				// The snapshot speaks scoped names; the collection is
				// the part before any prefix separator.
				col, _, _ := scope.SplitRecordKey(name)
				if col == "" {
					col = name
				}
				e.loaded[col] = true
			}
			e.mu.Unlock()
			return nil
		}
	}

	if e.store == nil {
		return nil
	}

	cols, err := e.store.Collections(ctx)
	if err != nil {
		e.log.Error("initial load failed, starting with empty cache", "error", err)
		return nil
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		e.log.Error("initial load failed, starting with empty cache", "error", err)
		return nil
	}
	defer tx.Rollback()

	for _, col := range cols {
		recs, err := tx.GetAll(ctx, col)
		if err != nil {
			e.log.Error("initial load failed, starting with empty cache",
				"collection", col, "error", err)
			return nil
		}
		e.classify(col, recs)
		e.mu.Lock()
		e.loaded[col] = true
		e.mu.Unlock()
	}
	return nil
}

// LoadTable lazily loads one collection and, for prefixed tables, runs
// the one-time adjustment pass resolving Pending values. Concurrent
// calls for the same (table, prefix) share one readiness gate: the scan
// runs once, everyone else waits for it.
func (e *Engine) LoadTable(ctx context.Context, table string, opts Options) error {
	name := scope.TableName(table, opts.PrefixID)

	e.mu.Lock()
	needLoad := e.store != nil && !e.cache.Has(name) && !e.loaded[table]
	var lg *gate
	if needLoad {
		// Claim the collection before the read so a racing call does
		// not duplicate the bulk read; the gate lets that racing call
		// wait for the data instead of observing an empty table.
		e.loaded[table] = true
		lg = newGate()
		e.loadGates[table] = lg
	} else {
		lg = e.loadGates[table]
	}
	e.mu.Unlock()

	if needLoad {
		func() {
			defer lg.open()
			recs, err := e.store.GetAll(ctx, table)
			if err != nil {
				e.log.Warn("table load failed, table starts empty", "table", table, "error", err)
				return
			}
			e.classify(table, recs)
		}()
	} else if lg != nil {
		if err := lg.Wait(ctx); err != nil {
			return err
		}
	}
	e.cache.Ensure(name)

	if opts.PrefixID == "" {
		return nil
	}

	e.mu.Lock()
	g, ok := e.gates[name]
	if ok {
		e.mu.Unlock()
		return g.Wait(ctx)
	}
	g = newGate()
	e.gates[name] = g
	e.adjustScans++
	e.mu.Unlock()

	// The gate opens even when a pending value fails to resolve;
	// waiters must not hang on a failed scan.
	defer g.open()

	// Snapshot the keys under the engine mutex and await unlocked:
	// Set mutates the same map, so every map access here must hold
	// e.mu while Await must not block it.
	t := e.cache.Get(name)
	e.mu.Lock()
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	e.mu.Unlock()

	for _, k := range keys {
		e.mu.Lock()
		v := t[k]
		e.mu.Unlock()
		p, ok := v.(record.Pending)
		if !ok {
			continue
		}
		resolved, err := p.Await(ctx)
		if err != nil {
			return fmt.Errorf("resolve pending value %s/%s: %w", name, k, err)
		}
		e.mu.Lock()
		t[k] = resolved
		e.mu.Unlock()
	}
	return nil
}

// classify routes one collection's records into the cache: metadata
// records by sentinel suffix, composite-keyed records into their
// prefixed sub-table with the bare key restored, everything else into
// the collection's own table. This reconstructs N logical tables from
// one flat collection without any directory structure.
func (e *Engine) classify(table string, recs []record.Record) {
	for _, rec := range recs {
		id := record.CoerceID(rec["id"])

		if scope.IsMetadataKey(id) {
			base := scope.TrimMetadataKey(id)
			delete(rec, "id")
			name := table
			if base != "" {
				name = table + "/" + base
			}
			e.cache.SetMetadata(name, rec)
			continue
		}

		if prefix, key, ok := scope.SplitRecordKey(id); ok {
			rec["id"] = key
			e.cache.Insert(table+"/"+prefix, key, rec)
			continue
		}

		rec["id"] = id
		e.cache.Insert(table, id, rec)
	}
}
