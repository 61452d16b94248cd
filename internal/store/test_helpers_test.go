package store

import (
	"path/filepath"
	"testing"
)

// createTestStore opens a store in a temp directory with the given
// declared collections at version 1.
func createTestStore(t *testing.T, tables ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, Config{Version: 1, Tables: tables})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
