// Package scope computes effective table names, metadata names, and
// durable record keys from a logical table name plus optional prefix
// and item scoping. Multiple prefixed tables share one physical
// collection; these functions define the composite-key namespacing that
// keeps them disjoint.
//
// All composition is pure string work, exercised independently of
// storage by the package tests.
package scope

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MetadataSuffix marks a collection record as table metadata rather
// than an entity. The durable metadata key is <scopeBase> + suffix.
const MetadataSuffix = "__legend_metadata"

// TableName returns the in-memory name for a logical table under an
// optional prefix: "table" or "table/prefixID".
func TableName(table, prefixID string) string {
	table = norm.NFC.String(table)
	if prefixID == "" {
		return table
	}
	return table + "/" + norm.NFC.String(prefixID)
}

// MetadataName resolves the metadata scope for a table. base is the
// scope discriminator ("" for the unprefixed table, else
// "prefixID[/itemID]"); name is the cache key the metadata record is
// stored under.
func MetadataName(table, prefixID, itemID string) (base, name string) {
	base = norm.NFC.String(itemID)
	if prefixID != "" {
		prefixID = norm.NFC.String(prefixID)
		if base != "" {
			base = prefixID + "/" + base
		} else {
			base = prefixID
		}
	}
	name = norm.NFC.String(table)
	if base != "" {
		name = name + "/" + base
	}
	return base, name
}

// RecordKey returns the durable record id for a key under an optional
// prefix. Prefixed tables share their logical table's collection, so
// the prefix is folded into the id: "prefixID/key".
func RecordKey(prefixID, key string) string {
	key = norm.NFC.String(key)
	if prefixID == "" {
		return key
	}
	return norm.NFC.String(prefixID) + "/" + key
}

// SplitRecordKey undoes RecordKey at load time: a durable id containing
// a separator splits at the first "/" into its prefix and bare key.
func SplitRecordKey(id string) (prefix, key string, ok bool) {
	return strings.Cut(id, "/")
}

// MetadataKey returns the durable id of the metadata record for a
// scope base.
func MetadataKey(base string) string {
	return base + MetadataSuffix
}

// IsMetadataKey reports whether a durable id addresses a metadata
// record.
func IsMetadataKey(id string) bool {
	return strings.HasSuffix(id, MetadataSuffix)
}

// TrimMetadataKey recovers the scope base from a metadata record id.
func TrimMetadataKey(id string) string {
	return strings.TrimSuffix(id, MetadataSuffix)
}
