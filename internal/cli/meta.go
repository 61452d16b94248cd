package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tablesync/internal/engine"
	"github.com/roach88/tablesync/internal/record"
)

// MetaOptions holds flags for the meta command.
type MetaOptions struct {
	*RootOptions
	Prefix string
	Item   string
	Update string
}

// NewMetaCommand creates the meta command.
func NewMetaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MetaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "meta <table>",
		Short: "Read or update table metadata",
		Long: `Read or update the metadata record of a table scope.

Without --update the current metadata is printed. With --update the
given JSON is shallow-merged into the existing metadata: listed fields
overwrite, unlisted fields survive.

Example:
  tablesync meta contacts --db sync.db
  tablesync meta contacts --update '{"lastSync":1693286400}'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeta(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "table prefix scope")
	cmd.Flags().StringVar(&opts.Item, "item", "", "item scope within a prefixed table")
	cmd.Flags().StringVar(&opts.Update, "update", "", "partial metadata as JSON to merge in")

	return cmd
}

func runMeta(opts *MetaOptions, table string, cmd *cobra.Command) error {
	e, s, err := opts.openEngine(table)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := e.Initialize(ctx); err != nil {
		return err
	}

	eo := engine.Options{PrefixID: opts.Prefix, ItemID: opts.Item}

	if opts.Update != "" {
		var md record.Record
		if err := json.Unmarshal([]byte(opts.Update), &md); err != nil {
			return fmt.Errorf("invalid --update JSON: %w", err)
		}
		if err := e.UpdateMetadata(ctx, table, md, eo); err != nil {
			return err
		}
	}

	md := e.GetMetadata(table, eo)
	if md == nil {
		md = record.Record{}
	}
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return out.Record(md)
}
