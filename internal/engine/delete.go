package engine

import (
	"context"
	"sort"

	"github.com/roach88/tablesync/internal/scope"
)

// DeleteTable removes a scoped table, or one sub-document of it when
// item-scoped. No-op if the table was never loaded.
//
// Durable side: without prefix or item scope the whole collection is
// cleared in one request; otherwise one composite-keyed deletion is
// issued per removed key.
func (e *Engine) DeleteTable(ctx context.Context, table string, opts Options) error {
	name := scope.TableName(table, opts.PrefixID)

	e.mu.Lock()
	t := e.cache.Get(name)
	if t == nil {
		e.mu.Unlock()
		return nil
	}

	var keys []string
	if opts.ItemID != "" {
		delete(t, opts.ItemID)
		keys = []string{opts.ItemID}
	} else {
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.cache.Drop(name)
	}
	e.mu.Unlock()

	if e.store == nil {
		return nil
	}

	if opts.PrefixID == "" && opts.ItemID == "" {
		return e.store.Clear(ctx, table)
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, k := range keys {
		if err := tx.Delete(ctx, table, scope.RecordKey(opts.PrefixID, k)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
