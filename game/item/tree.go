package item

import (
	"github.com/kasuganosora/smitebuilder/server/resource"
)

// Tree is an item upgrade tree split by tier.
type Tree struct {
	Tier1 []resource.Item `json:"tier1"`
	Tier2 []resource.Item `json:"tier2"`
	Tier3 []resource.Item `json:"tier3"`
}

// Len returns the number of items across all tiers.
func (t Tree) Len() int {
	return len(t.Tier1) + len(t.Tier2) + len(t.Tier3)
}

// BuildTree collects the active items rooted at rootID into tier buckets, in
// catalog order. Items with a tier outside 1..3 are left out.
func BuildTree(items []resource.Item, rootID int) Tree {
	t := Tree{
		Tier1: []resource.Item{},
		Tier2: []resource.Item{},
		Tier3: []resource.Item{},
	}
	for i := range items {
		it := &items[i]
		if !it.IsActive() || it.RootItemID != rootID {
			continue
		}
		switch it.Tier {
		case 1:
			t.Tier1 = append(t.Tier1, *it)
		case 2:
			t.Tier2 = append(t.Tier2, *it)
		case 3:
			t.Tier3 = append(t.Tier3, *it)
		}
	}
	return t
}
