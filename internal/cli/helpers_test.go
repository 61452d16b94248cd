package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tablesync/internal/store"
)

// runCommand executes the CLI with the given args and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// seedDB creates a database file with the given records in one
// collection and returns its path.
func seedDB(t *testing.T, table string, recs map[string]map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.db")
	s, err := store.Open(path, store.Config{Version: 1, Tables: []string{table}})
	require.NoError(t, err)
	ctx := context.Background()
	for id, rec := range recs {
		require.NoError(t, s.Put(ctx, table, id, rec))
	}
	require.NoError(t, s.Close())
	return path
}
