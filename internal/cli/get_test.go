package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_TableJSONGolden(t *testing.T) {
	path := seedDB(t, "contacts", map[string]map[string]any{
		"a1": {"id": "a1", "name": "Ada"},
		"b2": {"id": "b2", "name": "Brin"},
	})

	out, err := runCommand(t, "get", "contacts", "--db", path, "--format", "json")
	require.NoError(t, err)

	// Record keys and JSON object keys both serialize sorted, so the
	// output is byte-stable across runs.
	g := goldie.New(t)
	g.Assert(t, "get_table", []byte(out))
}

func TestGet_SingleRecord(t *testing.T) {
	path := seedDB(t, "contacts", map[string]map[string]any{
		"a1": {"id": "a1", "name": "Ada"},
	})

	out, err := runCommand(t, "get", "contacts", "--db", path, "--id", "a1")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Ada")
}

func TestGet_MissingRecordFails(t *testing.T) {
	path := seedDB(t, "contacts", nil)

	_, err := runCommand(t, "get", "contacts", "--db", path, "--id", "nope")
	require.Error(t, err)
}

func TestGet_PrefixScopedView(t *testing.T) {
	path := seedDB(t, "docs", map[string]map[string]any{
		"u1/d1": {"id": "u1/d1", "title": "mine"},
		"u2/d2": {"id": "u2/d2", "title": "theirs"},
	})

	out, err := runCommand(t, "get", "docs", "--db", path, "--prefix", "u1", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "mine")
	assert.NotContains(t, out, "theirs")
}

func TestGet_RequiresDatabase(t *testing.T) {
	_, err := runCommand(t, "get", "contacts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database")
}
