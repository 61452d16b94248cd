// Package record defines the value model shared by the cache, store,
// and engine: keyed record mappings, the path-level Change descriptor
// produced by the reactive layer, and the path-application primitive
// that materializes a Change onto a nested mapping.
//
// Records are plain map[string]any values so they round-trip through
// JSON without a schema. The only structural requirement is the "id"
// field on durable records, which the engine stamps when absent.
//
// Values held in a table may implement Pending, in which case they are
// resolved once during the table's first prefixed load (see the engine's
// adjustment pass).
package record
