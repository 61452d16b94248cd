// Package engine implements the local-persistence synchronization
// engine: it keeps the in-memory table cache consistent with the
// durable record store, driven by batches of path-level changes.
//
// ARCHITECTURE:
//
// The engine composes three concerns:
//
//   - Load coordination: Initialize bulk-reads every collection present
//     in the store (or adopts a preloaded snapshot) and reconstructs
//     prefix-scoped sub-tables from composite record ids. LoadTable is
//     the lazy per-collection variant with a single-flight adjustment
//     pass for prefixed tables.
//   - Change reduction: Set applies a batch of path-level changes to
//     the cache, then reduces them to the minimal set of whole-record
//     writes — one per touched top-level key, or a full-table
//     reconciliation when the batch replaces the table outright.
//   - Scope resolution: every operation accepts Options carrying
//     PrefixID/ItemID; internal/scope folds them into effective table
//     names and composite record keys.
//
// In-memory mutation is serialized under the engine's mutex and happens
// before the durable write is issued, so the store converges to the
// cache's mutation order (last put wins between racing batches; writes
// within one batch share one transaction).
//
// A nil store degrades every operation to in-memory-only behavior:
// mutations still land in the cache and no operation fails. An
// initialization read failure is logged and swallowed — an empty local
// cache is the safe fallback.
package engine
