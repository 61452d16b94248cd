package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/tablesync/internal/engine"
	"github.com/roach88/tablesync/internal/record"
)

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	Prefix string
	Item   string
	ID     string
	Data   string
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <table>",
		Short: "Write one record",
		Long: `Write one record into a table.

The record body is JSON. Without --id a UUIDv7 key is generated, so
record keys created here sort by creation time.

Example:
  tablesync set contacts --db sync.db --data '{"name":"Ada"}'
  tablesync set docs --prefix u1 --id doc1 --data '{"title":"Notes"}'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "table prefix scope")
	cmd.Flags().StringVar(&opts.Item, "item", "", "item scope within a prefixed table")
	cmd.Flags().StringVar(&opts.ID, "id", "", "record key (generated when omitted)")
	cmd.Flags().StringVar(&opts.Data, "data", "", "record body as JSON")
	cmd.MarkFlagRequired("data")

	return cmd
}

func runSet(opts *SetOptions, table string, cmd *cobra.Command) error {
	var rec record.Record
	if err := json.Unmarshal([]byte(opts.Data), &rec); err != nil {
		return fmt.Errorf("invalid --data JSON: %w", err)
	}

	key := opts.ID
	if key == "" {
		key = uuid.Must(uuid.NewV7()).String()
	}
	if _, ok := rec["id"]; !ok {
		rec["id"] = key
	}

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

	change := record.Change{
		Path:      []string{key},
		PathTypes: []record.ContainerType{record.ContainerObject},
		Value:     rec,
	}
	if err := e.Set(ctx, table, []record.Change{change}, eo); err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return out.JSON(map[string]any{"id": key})
	}
	fmt.Fprintln(cmd.OutOrStdout(), key)
	return nil
}
