// Package config loads the engine configuration from a YAML file and
// validates it against an embedded CUE schema. YAML keeps the file
// human-editable; the CUE unification catches shape and value errors
// with concrete field paths instead of unmarshal panics downstream.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tablesync/internal/store"
)

//go:embed schema.cue
var schemaSource string

// Config is the parsed configuration file.
type Config struct {
	Database Database  `yaml:"database" json:"database"`
	Tables   []string  `yaml:"tables" json:"tables"`
	Defaults *Defaults `yaml:"defaults,omitempty" json:"defaults,omitempty"`
}

// Database locates the durable store.
type Database struct {
	Path    string `yaml:"path" json:"path"`
	Version int    `yaml:"version" json:"version"`
}

// Defaults carries optional CLI defaults.
type Defaults struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// StoreConfig converts the file's database section into the store's
// open configuration.
func (c *Config) StoreConfig() store.Config {
	return store.Config{Version: c.Database.Version, Tables: c.Tables}
}

// ConfigError reports one invalid configuration field.
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("read config: %v", err)}
	}
	return Parse(data)
}

// Parse decodes YAML configuration and validates it against the schema.
// Unknown fields are rejected at decode time so typos surface instead
// of silently defaulting.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("parse config: %v", err)}
	}
	if cfg.Database.Version == 0 {
		cfg.Database.Version = 1
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate unifies the decoded config with the embedded #Config
// definition and demands a fully concrete result.
func validate(cfg *Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return &ConfigError{Message: fmt.Sprintf("compile schema: %v", err)}
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return &ConfigError{Message: fmt.Sprintf("lookup schema definition: %v", err)}
	}

	unified := def.Unify(ctx.Encode(cfg))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError converts the first CUE error into a ConfigError with
// its field path.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ConfigError{Message: err.Error()}
	}
	first := errs[0]
	field := ""
	if p := first.Path(); len(p) > 0 {
		field = p[0]
		for _, seg := range p[1:] {
			field += "." + seg
		}
	}
	format, args := first.Msg()
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}
