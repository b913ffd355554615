package main

import (
	"fmt"
	"strings"

	"github.com/kasuganosora/smitebuilder/server/game/item"
	"github.com/kasuganosora/smitebuilder/server/resource"
	"github.com/spf13/cobra"
)

type eligibleOptions struct {
	god             string
	role            string
	damageType      string
	basicAttackType string
	itemsOnly       bool
	special         bool
	equipped        []int
}

func newEligibleCmd(root *rootOptions) *cobra.Command {
	opts := &eligibleOptions{}

	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "List the items a character may equip",
		Long: `Runs the eligibility pipeline. Either describe the character with
--role/--damage-type/... or name a god with --god, in which case the query is
derived from the god record (regular items only).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := root.load()
			if err != nil {
				return err
			}
			q, err := opts.query(cmd, catalog)
			if err != nil {
				return err
			}
			items := item.FilterEligibleItems(catalog.Items(), q)
			if root.asJSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d eligible items for %s\n", len(items), q.CacheKey())
			return printItems(cmd.OutOrStdout(), items)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.god, "god", "", "derive the query from this god (case-insensitive name)")
	f.StringVar(&opts.role, "role", "", "character role, e.g. Warrior")
	f.StringVar(&opts.damageType, "damage-type", "", "Physical or Magical")
	f.StringVar(&opts.basicAttackType, "basic-attack", "", "Melee or Ranged")
	f.BoolVar(&opts.itemsOnly, "items-only", false, "exclude consumables and relics")
	f.BoolVar(&opts.special, "special", false, "character may use the acorn tree")
	f.IntSliceVar(&opts.equipped, "equipped", nil, "ids already equipped, comma separated")
	cmd.MarkFlagsMutuallyExclusive("god", "role")
	return cmd
}

func (o *eligibleOptions) query(cmd *cobra.Command, catalog *resource.Catalog) (item.Query, error) {
	var equipped item.ItemSet
	if cmd.Flags().Changed("equipped") {
		equipped = item.NewItemSet(o.equipped...)
	}

	if o.god != "" {
		for _, g := range catalog.Gods() {
			if strings.EqualFold(g.Name, o.god) {
				return item.QueryForGod(&g, equipped), nil
			}
		}
		return item.Query{}, fmt.Errorf("god %q not found", o.god)
	}

	if o.role == "" {
		return item.Query{}, fmt.Errorf("either --god or --role is required")
	}
	return item.Query{
		Role:               o.role,
		DamageType:         o.damageType,
		BasicAttackType:    o.basicAttackType,
		ItemsOnly:          o.itemsOnly,
		IsSpecialCharacter: o.special,
		Equipped:           equipped,
	}, nil
}
