package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/tablesync/internal/record"
)

// Put inserts or replaces one record outside any shared transaction.
func (s *Store) Put(ctx context.Context, collection, id string, rec record.Record) error {
	return put(ctx, s.db, &s.stats, collection, id, rec)
}

// Delete removes one record by id. Deleting an absent id is a no-op.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	return del(ctx, s.db, &s.stats, collection, id)
}

// Clear removes every record in a collection in one request.
func (s *Store) Clear(ctx context.Context, collection string) error {
	return clear(ctx, s.db, &s.stats, collection)
}

// Tx groups the writes of one engine batch into a single SQLite
// transaction: the batch is atomic with respect to store observers.
type Tx struct {
	tx    *sql.Tx
	stats *Stats
}

// Begin opens a write transaction.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &Tx{tx: tx, stats: &s.stats}, nil
}

// Put inserts or replaces one record inside the transaction.
func (t *Tx) Put(ctx context.Context, collection, id string, rec record.Record) error {
	return put(ctx, t.tx, t.stats, collection, id, rec)
}

// Delete removes one record inside the transaction.
func (t *Tx) Delete(ctx context.Context, collection, id string) error {
	return del(ctx, t.tx, t.stats, collection, id)
}

// Commit commits the transaction. This is the batch's durability
// point: callers awaiting a Set observe completion here.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Rollback aborts the transaction. No-op after Commit.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// execer is the common surface of *sql.DB and *sql.Tx the write
// helpers need.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func put(ctx context.Context, db execer, stats *Stats, collection, id string, rec record.Record) error {
	ident, err := collectionIdent(collection)
	if err != nil {
		return err
	}
	data, err := marshalRecord(rec)
	if err != nil {
		return fmt.Errorf("put %q/%q: %w", collection, id, err)
	}
	stats.Puts.Add(1)

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data
	`, ident), id, data)
	if err != nil {
		return fmt.Errorf("put %q/%q: %w", collection, id, err)
	}
	return nil
}

func del(ctx context.Context, db execer, stats *Stats, collection, id string) error {
	ident, err := collectionIdent(collection)
	if err != nil {
		return err
	}
	stats.Deletes.Add(1)

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM %s WHERE id = ?
	`, ident), id)
	if err != nil {
		return fmt.Errorf("delete %q/%q: %w", collection, id, err)
	}
	return nil
}

func clear(ctx context.Context, db execer, stats *Stats, collection string) error {
	ident, err := collectionIdent(collection)
	if err != nil {
		return err
	}
	stats.Clears.Add(1)

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM %s
	`, ident))
	if err != nil {
		return fmt.Errorf("clear %q: %w", collection, err)
	}
	return nil
}
