package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tablesync/internal/engine"
	"github.com/roach88/tablesync/internal/record"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Prefix string
	Item   string
	ID     string
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <table>",
		Short: "Read a table or a single record",
		Long: `Read a table or a single record.

Without --id the whole scoped table is printed as a map keyed by record
key. With --id only that record is printed.

Example:
  tablesync get contacts --db sync.db --format json
  tablesync get docs --prefix u1 --id doc1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "table prefix scope")
	cmd.Flags().StringVar(&opts.Item, "item", "", "item scope within a prefixed table")
	cmd.Flags().StringVar(&opts.ID, "id", "", "read a single record by key")

	return cmd
}

func runGet(opts *GetOptions, table string, cmd *cobra.Command) error {
	e, s, err := opts.openEngine(table)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	eo := engine.Options{PrefixID: opts.Prefix, ItemID: opts.Item}
	if err := e.LoadTable(ctx, table, eo); err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	if opts.ID != "" {
		eo.ItemID = opts.ID
		rec := e.GetTable(table, eo)
		if rec == nil {
			return fmt.Errorf("no record %q in table %s", opts.ID, table)
		}
		return out.Record(rec)
	}

	t := e.GetTable(table, eo)
	if t == nil {
		t = record.Table{}
	}
	return out.Table(t)
}
