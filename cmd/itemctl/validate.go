package main

import (
	"errors"
	"fmt"

	"github.com/kasuganosora/smitebuilder/server/game/item"
	"github.com/kasuganosora/smitebuilder/server/resource"
	"github.com/spf13/cobra"
)

// errCatalogWarnings is returned by validate --strict when any check fails.
var errCatalogWarnings = errors.New("catalog has warnings")

type catalogReport struct {
	Fingerprint string   `json:"fingerprint"`
	Items       int      `json:"items"`
	Active      int      `json:"active"`
	Consumables int      `json:"consumables"`
	Relics      int      `json:"relics"`
	Gods        int      `json:"gods"`
	Warnings    []string `json:"warnings"`
}

// checkCatalog counts listings and flags records the pipelines treat
// leniently: active items outside tiers 1..3 never appear in a tree, items
// rooted at a missing id form orphan trees, and gods without a damage type
// get no affinity filtering.
func checkCatalog(c *resource.Catalog) catalogReport {
	items := c.Items()
	rep := catalogReport{
		Fingerprint: c.Fingerprint(),
		Items:       len(items),
		Active:      len(item.ActivePipeline.Filter(items, item.Query{})),
		Consumables: len(item.ConsumablesPipeline.Filter(items, item.Query{})),
		Relics:      len(item.RelicsPipeline.Filter(items, item.Query{})),
		Gods:        len(c.Gods()),
		Warnings:    []string{},
	}
	for i := range items {
		it := &items[i]
		if !it.IsActive() {
			continue
		}
		if it.Tier < 1 || it.Tier > 3 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("item %d (%s): tier %d outside 1..3", it.ID, it.Name, it.Tier))
		}
		if _, ok := c.ItemByID(it.RootItemID); !ok {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("item %d (%s): root %d not in catalog", it.ID, it.Name, it.RootItemID))
		}
	}
	for _, g := range c.Gods() {
		if g.DamageType() == "" {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("god %d (%s): no damage type in %q", g.ID, g.Name, g.Type))
		}
	}
	return rep
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report counts and suspicious records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := root.load()
			if err != nil {
				return err
			}
			rep := checkCatalog(catalog)

			out := cmd.OutOrStdout()
			if root.asJSON {
				if err := printJSON(out, rep); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "fingerprint  %s\n", rep.Fingerprint)
				fmt.Fprintf(out, "items        %d (active %d, consumables %d, relics %d)\n",
					rep.Items, rep.Active, rep.Consumables, rep.Relics)
				fmt.Fprintf(out, "gods         %d\n", rep.Gods)
				for _, w := range rep.Warnings {
					fmt.Fprintf(out, "warning: %s\n", w)
				}
			}
			if strict && len(rep.Warnings) > 0 {
				return fmt.Errorf("%w: %d", errCatalogWarnings, len(rep.Warnings))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any warning is reported")
	return cmd
}
