package store

import (
	"context"
	"testing"

	"github.com/roach88/tablesync/internal/record"
)

func TestGetAll_ReturnsRecordsOrderedByID(t *testing.T) {
	s := createTestStore(t, "contacts")
	ctx := context.Background()

	put := func(id string, rec record.Record) {
		t.Helper()
		if err := s.Put(ctx, "contacts", id, rec); err != nil {
			t.Fatalf("Put(%q) failed: %v", id, err)
		}
	}
	put("b", record.Record{"id": "b", "name": "Bea"})
	put("a", record.Record{"id": "a", "name": "Ada"})

	recs, err := s.GetAll(ctx, "contacts")
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0]["id"] != "a" || recs[1]["id"] != "b" {
		t.Errorf("ids = %v, %v; want a, b", recs[0]["id"], recs[1]["id"])
	}
}

func TestGetAll_EmptyCollection(t *testing.T) {
	s := createTestStore(t, "contacts")

	recs, err := s.GetAll(context.Background(), "contacts")
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d records, want 0", len(recs))
	}
}

func TestGetAll_UnknownCollectionErrors(t *testing.T) {
	s := createTestStore(t, "contacts")

	if _, err := s.GetAll(context.Background(), "missing"); err == nil {
		t.Error("GetAll(missing) succeeded, want error")
	}
}

func TestGetAll_CoercesNumericIDInPayload(t *testing.T) {
	s := createTestStore(t, "contacts")
	ctx := context.Background()

	// A payload whose own id field is numeric: the column id wins and
	// is always a string.
	if err := s.Put(ctx, "contacts", "7", record.Record{"id": 7, "name": "Sev"}); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	recs, err := s.GetAll(ctx, "contacts")
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if got := recs[0]["id"]; got != "7" {
		t.Errorf("id = %v (%T), want string \"7\"", got, got)
	}
}

func TestGet_AbsentReturnsNil(t *testing.T) {
	s := createTestStore(t, "contacts")

	rec, err := s.Get(context.Background(), "contacts", "nope")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if rec != nil {
		t.Errorf("Get(absent) = %v, want nil", rec)
	}
}

func TestGet_RoundTrip(t *testing.T) {
	s := createTestStore(t, "contacts")
	ctx := context.Background()

	in := record.Record{"id": "a", "name": "Ada", "tags": []any{"x", "y"}}
	if err := s.Put(ctx, "contacts", "a", in); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	out, err := s.Get(ctx, "contacts", "a")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if out["name"] != "Ada" {
		t.Errorf("name = %v, want Ada", out["name"])
	}
	tags, ok := out["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %v, want two-element slice", out["tags"])
	}
}
