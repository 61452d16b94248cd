package engine

import (
	"context"
	"sort"

	"github.com/roach88/tablesync/internal/record"
	"github.com/roach88/tablesync/internal/scope"
	"github.com/roach88/tablesync/internal/store"
)

// Set applies a batch of path-level changes to the scoped table and
// reduces them to durable writes: one whole-record put or delete per
// touched top-level key, or a full-table reconciliation when the batch
// replaces the table. All writes of one batch share one transaction;
// Set returns once the transaction commits.
//
// With ItemID scoping every change is re-rooted under the item, so a
// single collection serves many independently addressed sub-documents.
//
// A change with an empty path replaces the entire table and is
// authoritative: accumulated per-key changes are discarded and the
// remaining changes are ignored.
func (e *Engine) Set(ctx context.Context, table string, changes []record.Change, opts Options) error {
	name := scope.TableName(table, opts.PrefixID)

	e.mu.Lock()
	t := e.cache.Ensure(name)
	prev := t

	var (
		replacement record.Table
		replaced    bool
		touched     []string
	)
	seen := make(map[string]bool)
	for _, ch := range changes {
		path, types := ch.Path, ch.PathTypes
		if opts.ItemID != "" {
			path = append([]string{opts.ItemID}, path...)
			types = append([]record.ContainerType{record.ContainerObject}, types...)
		}

		if len(path) == 0 {
			replacement, _ = ch.Value.(map[string]any)
			if replacement == nil {
				// A nil or non-map replacement empties the table. An
				// empty map keeps the cached entry mutable for later
				// per-key writes.
				replacement = record.Table{}
			}
			replaced = true
			e.cache.Replace(name, replacement)
			break
		}

		record.ApplyAtPath(t, path, types, ch.Value)
		if !seen[path[0]] {
			seen[path[0]] = true
			touched = append(touched, path[0])
		}
	}
	e.mu.Unlock()

	if e.store == nil {
		// Environment-absent degradation: the cache is mutated, no
		// durable writes are attempted.
		return nil
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if replaced {
		if err := e.reconcileTable(ctx, tx, table, name, prev, replacement, opts); err != nil {
			return err
		}
	} else {
		cur := e.cache.Get(name)
		for _, key := range touched {
			e.mu.Lock()
			v := cur[key]
			e.mu.Unlock()
			if err := e.setItem(ctx, tx, table, name, key, v, opts); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// reconcileTable performs the full-table mapping diff: every key of
// next is rewritten, every key of prev absent from next is deleted. A
// key whose value merely changed is rewritten whole; value-level
// diffing is not attempted.
func (e *Engine) reconcileTable(ctx context.Context, tx *store.Tx, table, name string, prev, next record.Table, opts Options) error {
	for _, key := range sortedKeys(next) {
		if err := e.setItem(ctx, tx, table, name, key, next[key], opts); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(prev) {
		if _, ok := next[key]; ok {
			continue
		}
		if err := e.setItem(ctx, tx, table, name, key, nil, opts); err != nil {
			return err
		}
	}
	return nil
}

// setItem issues the durable write for one top-level key.
//
//   - nil value: the key is removed from the cache (if still present)
//     and deleted durably.
//   - non-container value: cache-only. Scalars cannot carry an id and
//     represent transient entries, a deliberate exclusion.
//   - container value: stamped with the map key as id when it lacks
//     one, cached, and put whole. Under a prefix the put uses a shallow
//     copy with the composite id so the caller's value is never
//     mutated.
func (e *Engine) setItem(ctx context.Context, tx *store.Tx, table, name, key string, value any, opts Options) error {
	if value == nil {
		e.mu.Lock()
		e.cache.DeleteKey(name, key)
		e.mu.Unlock()
		return tx.Delete(ctx, table, scope.RecordKey(opts.PrefixID, key))
	}

	rec, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	e.mu.Lock()
	if _, ok := rec["id"]; !ok {
		rec["id"] = key
	}
	id := record.CoerceID(rec["id"])
	if id == "" {
		id = key
	}
	e.cache.Insert(name, key, rec)
	e.mu.Unlock()

	put := rec
	if opts.PrefixID != "" {
		put = record.CloneShallow(rec)
		id = scope.RecordKey(opts.PrefixID, id)
		put["id"] = id
	}
	return tx.Put(ctx, table, id, put)
}

func sortedKeys(t record.Table) []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
