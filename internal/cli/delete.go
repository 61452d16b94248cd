package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tablesync/internal/engine"
	"github.com/roach88/tablesync/internal/record"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Prefix string
	Item   string
	ID     string
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <table>",
		Short: "Delete a record or a whole table scope",
		Long: `Delete a record or a whole table scope.

With --id only that record is removed. Without --id the whole scoped
table is dropped: one clear for an unscoped table, per-record deletes
for a prefixed scope sharing its collection with other prefixes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "table prefix scope")
	cmd.Flags().StringVar(&opts.Item, "item", "", "item scope within a prefixed table")
	cmd.Flags().StringVar(&opts.ID, "id", "", "delete a single record by key")

	return cmd
}

func runDelete(opts *DeleteOptions, table string, cmd *cobra.Command) error {
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

	if opts.ID != "" {
		change := record.Change{
			Path:      []string{opts.ID},
			PathTypes: []record.ContainerType{record.ContainerObject},
			Value:     nil,
		}
		return e.Set(ctx, table, []record.Change{change}, eo)
	}
	return e.DeleteTable(ctx, table, eo)
}
