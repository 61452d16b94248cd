package record

import (
	"context"
	"encoding/json"
	"strconv"
)

// Record is a single keyed record: a mapping carrying an "id" field
// once it has been persisted. Defined as an alias so values decoded
// from JSON (map[string]any) are records without conversion.
type Record = map[string]any

// Table is the in-memory mirror of one (possibly prefix-scoped) table:
// record key to value. Values are usually Records, but the reducer also
// admits scalar entries, which stay cache-only.
type Table = map[string]any

// Pending is an awaitable value. A table entry implementing Pending is
// resolved exactly once during the first prefixed load of its table and
// replaced by the resolved value.
type Pending interface {
	Await(ctx context.Context) (any, error)
}

// CoerceID renders a record id as a string. Durable ids are always
// strings; numeric ids written by older callers are coerced on load.
func CoerceID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

// CloneShallow copies the top level of a record. Used when a prefixed
// write must rewrite "id" without mutating the caller's value.
func CloneShallow(rec Record) Record {
	cp := make(Record, len(rec)+1)
	for k, v := range rec {
		cp[k] = v
	}
	return cp
}
