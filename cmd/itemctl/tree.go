package main

import (
	"fmt"
	"strconv"

	"github.com/kasuganosora/smitebuilder/server/game/item"
	"github.com/kasuganosora/smitebuilder/server/resource"
	"github.com/spf13/cobra"
)

func newTreeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [root-id]",
		Short: "Show the upgrade tree rooted at an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid root id %q", args[0])
			}
			catalog, err := root.load()
			if err != nil {
				return err
			}
			tree := item.BuildTree(catalog.Items(), rootID)
			if root.asJSON {
				return printJSON(cmd.OutOrStdout(), tree)
			}
			out := cmd.OutOrStdout()
			for i, tier := range [][]resource.Item{tree.Tier1, tree.Tier2, tree.Tier3} {
				fmt.Fprintf(out, "Tier %d:\n", i+1)
				for _, it := range tier {
					fmt.Fprintf(out, "  %d\t%s\n", it.ID, it.Name)
				}
			}
			return nil
		},
	}
}
