package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path, Config{Version: 1, Tables: []string{"contacts"}})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_EnablesForeignKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path, Config{Version: 1, Tables: []string{"contacts"}})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	var on int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&on); err != nil {
		t.Fatalf("query foreign_keys pragma: %v", err)
	}
	if on != 1 {
		t.Errorf("foreign_keys = %d, want 1", on)
	}
}

func TestOpen_RejectsZeroVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	if _, err := Open(path, Config{Version: 0}); err == nil {
		t.Error("Open() with version 0 succeeded, want error")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := Config{Version: 1, Tables: []string{"contacts"}}

	for i := 0; i < 3; i++ {
		s, err := Open(path, cfg)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_VersionUpgradeCreatesNewCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := Open(path, Config{Version: 1, Tables: []string{"contacts"}})
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	s1.Close()

	// Reopening at the same version must not create the new collection.
	s2, err := Open(path, Config{Version: 1, Tables: []string{"contacts", "messages"}})
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	cols, err := s2.Collections(ctx)
	if err != nil {
		t.Fatalf("Collections() failed: %v", err)
	}
	s2.Close()
	if !reflect.DeepEqual(cols, []string{"contacts"}) {
		t.Errorf("collections after same-version reopen = %v, want [contacts]", cols)
	}

	// Bumping the version creates it.
	s3, err := Open(path, Config{Version: 2, Tables: []string{"contacts", "messages"}})
	if err != nil {
		t.Fatalf("third Open() failed: %v", err)
	}
	defer s3.Close()
	cols, err = s3.Collections(ctx)
	if err != nil {
		t.Fatalf("Collections() failed: %v", err)
	}
	want := []string{"contacts", "messages"}
	if !reflect.DeepEqual(cols, want) {
		t.Errorf("collections after upgrade = %v, want %v", cols, want)
	}
}

func TestCollectionIdent(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "contacts", `"tbl_contacts"`, false},
		{"quote escaped", `a"b`, `"tbl_a""b"`, false},
		{"empty", "", "", true},
		{"embedded nul", "a\x00b", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collectionIdent(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("collectionIdent(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("collectionIdent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
