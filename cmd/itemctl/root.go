package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kasuganosora/smitebuilder/server/resource"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	itemsPath string
	godsPath  string
	asJSON    bool
}

func (o *rootOptions) load() (*resource.Catalog, error) {
	return resource.NewLoader(o.itemsPath, o.godsPath).Load()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "itemctl",
		Short: "Inspect a SMITE item catalog and run eligibility queries offline",
		Long: `itemctl loads the items and gods dumps used by the server and runs the
same filtering pipelines against them.

Examples:
  itemctl eligible --role Warrior --damage-type Physical --items-only
  itemctl eligible --god Ratatoskr --equipped 7526,7527
  itemctl tree 7526
  itemctl validate`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.itemsPath, "items", "./data/items.json", "path to the items dump")
	flags.StringVar(&opts.godsPath, "gods", "./data/gods.json", "path to the gods dump")
	flags.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")

	cmd.AddCommand(
		newEligibleCmd(opts),
		newTreeCmd(opts),
		newValidateCmd(opts),
	)
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printItems(w io.Writer, items []resource.Item) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIER\tTYPE\tNAME")
	for i := range items {
		it := &items[i]
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", it.ID, it.Tier, it.Type, it.Name)
	}
	return tw.Flush()
}
