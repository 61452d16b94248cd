package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tablesync/internal/config"
	"github.com/roach88/tablesync/internal/engine"
	"github.com/roach88/tablesync/internal/store"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	Format     string // "json" | "text"
	Verbose    bool

	cfg *config.Config // parsed --config file, nil when not given
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tablesync CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tablesync",
		Short: "Inspect and mutate a tablesync database",
		Long:  "Command line access to the durable side of the synchronization engine: list collections, read and write records, and manage table metadata.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.ConfigPath != "" {
				cfg, err := config.Load(opts.ConfigPath)
				if err != nil {
					return err
				}
				opts.cfg = cfg
				if opts.DBPath == "" {
					opts.DBPath = cfg.Database.Path
				}
				if cfg.Defaults != nil && cfg.Defaults.Format != "" && !cmd.Flags().Changed("format") {
					opts.Format = cfg.Defaults.Format
				}
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to the database file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewMetaCommand(opts))

	return cmd
}

// openStore opens the configured database, declaring the given tables
// when no config file pins the collection set.
func (o *RootOptions) openStore(tables ...string) (*store.Store, error) {
	if o.DBPath == "" {
		return nil, fmt.Errorf("no database: pass --db or a --config with database.path")
	}
	sc := store.Config{Version: 1, Tables: tables}
	if o.cfg != nil {
		sc = o.cfg.StoreConfig()
	}
	return store.Open(o.DBPath, sc)
}

// openEngine opens the store and wraps it in an engine.
func (o *RootOptions) openEngine(tables ...string) (*engine.Engine, *store.Store, error) {
	s, err := o.openStore(tables...)
	if err != nil {
		return nil, nil, err
	}
	return engine.New(s), s, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
