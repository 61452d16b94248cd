package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
database:
  path: sync.db
  version: 2
tables:
  - contacts
  - docs
defaults:
  format: text
`

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "sync.db", cfg.Database.Path)
	assert.Equal(t, 2, cfg.Database.Version)
	assert.Equal(t, []string{"contacts", "docs"}, cfg.Tables)
	require.NotNil(t, cfg.Defaults)
	assert.Equal(t, "text", cfg.Defaults.Format)
}

func TestParse_VersionDefaultsToOne(t *testing.T) {
	cfg, err := Parse([]byte(`
database:
  path: sync.db
tables: [contacts]
`))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Database.Version)
}

func TestParse_RejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte(`
database:
  path: sync.db
  verison: 2
tables: [contacts]
`))
	require.Error(t, err)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "verison")
}

func TestParse_RejectsEmptyPath(t *testing.T) {
	_, err := Parse([]byte(`
database:
  path: ""
tables: [contacts]
`))
	require.Error(t, err)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Field, "path")
}

func TestParse_RejectsNoTables(t *testing.T) {
	_, err := Parse([]byte(`
database:
  path: sync.db
tables: []
`))
	require.Error(t, err)
}

func TestParse_RejectsBadFormat(t *testing.T) {
	_, err := Parse([]byte(`
database:
  path: sync.db
tables: [contacts]
defaults:
  format: xml
`))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	sc := cfg.StoreConfig()
	assert.Equal(t, 2, sc.Version)
	assert.Equal(t, []string{"contacts", "docs"}, sc.Tables)
}
