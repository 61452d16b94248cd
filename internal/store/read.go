package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/tablesync/internal/record"
)

// GetAll returns every record in a collection in one bulk read,
// ordered by id. The dominant load-time property: one request per
// collection, not one per record.
//
// Each returned record carries its durable id in the "id" field as a
// string, overriding whatever the stored payload held (ids written as
// numbers by older callers are coerced here).
func (s *Store) GetAll(ctx context.Context, collection string) ([]record.Record, error) {
	return getAll(ctx, s.db, &s.stats, collection)
}

// GetAll bulk-reads a collection inside the transaction. Initialization
// reads all collections through one transaction for a consistent
// snapshot.
func (t *Tx) GetAll(ctx context.Context, collection string) ([]record.Record, error) {
	return getAll(ctx, t.tx, t.stats, collection)
}

// queryer is the common read surface of *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func getAll(ctx context.Context, db queryer, stats *Stats, collection string) ([]record.Record, error) {
	ident, err := collectionIdent(collection)
	if err != nil {
		return nil, err
	}
	stats.BulkReads.Add(1)

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, data FROM %s ORDER BY id
	`, ident))
	if err != nil {
		return nil, fmt.Errorf("read collection %q: %w", collection, err)
	}
	defer rows.Close()

	var recs []record.Record
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := unmarshalRecord(data)
		if err != nil {
			return nil, fmt.Errorf("collection %q id %q: %w", collection, id, err)
		}
		rec["id"] = id
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection %q: %w", collection, err)
	}
	return recs, nil
}

// Get returns one record by id, or nil if absent.
func (s *Store) Get(ctx context.Context, collection, id string) (record.Record, error) {
	ident, err := collectionIdent(collection)
	if err != nil {
		return nil, err
	}

	var data string
	err = s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT data FROM %s WHERE id = ?
	`, ident), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %q/%q: %w", collection, id, err)
	}
	rec, err := unmarshalRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%q/%q: %w", collection, id, err)
	}
	rec["id"] = id
	return rec, nil
}
