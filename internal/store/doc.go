// Package store provides the durable record store backing the sync
// engine: a set of named collections of JSON records addressed by a
// string id, on SQLite.
//
// Layout: one SQLite table per declared collection, two columns
// (id TEXT PRIMARY KEY, data TEXT). Record ids are either bare logical
// keys, "prefixID/key" composites, or the metadata sentinel
// "<scopeBase>__legend_metadata"; the store itself is oblivious to the
// namespacing — internal/scope defines it and the engine applies it.
//
// Collections are created at Open when the configured version exceeds
// the database's PRAGMA user_version, mirroring versioned store
// creation on first open.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// Reads are bulk (GetAll is one query per collection, not one request
// per record). Writes from one engine batch share one transaction via
// Begin, making the batch atomic with respect to store observers.
package store
