package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kasuganosora/smitebuilder/server/cache"
	"github.com/kasuganosora/smitebuilder/server/resource"
	"github.com/stretchr/testify/require"
)

func stats(kv ...string) *resource.ItemDescription {
	d := &resource.ItemDescription{}
	for i := 0; i+1 < len(kv); i += 2 {
		d.Menuitems = append(d.Menuitems, resource.StatEntry{Description: kv[i], Value: kv[i+1]})
	}
	return d
}

// FixtureItems returns a small catalog covering every pipeline stage:
//
//	1,2,3     physical tree rooted at 1 (tiers 1..3)
//	10,11     magical tree rooted at 10
//	20        starting item listing both damage stats
//	30        restricted for Guardian and Mage
//	31        "Guardian, Mage": the space keeps the Mage entry from matching
//	10662     physical-only override, no damage stats
//	18703     acorn root
//	40        consumable, 50 relic
//	60        inactive
func FixtureItems() []resource.Item {
	return []resource.Item{
		{ID: 1, RootItemID: 1, Tier: 1, Name: "Cudgel", Type: resource.TypeItem, ActiveFlag: "y", Price: 700,
			ItemDescription: stats("Physical Power", "+10")},
		{ID: 2, RootItemID: 1, Tier: 2, Name: "Heavy Mace", Type: resource.TypeItem, ActiveFlag: "y", Price: 1100,
			ItemDescription: stats("Physical Power", "+20")},
		{ID: 3, RootItemID: 1, Tier: 3, Name: "Jotunn's Wrath", Type: resource.TypeItem, ActiveFlag: "y", Price: 2300,
			ItemDescription: stats("Physical Power", "+40", "Physical Penetration", "10")},
		{ID: 10, RootItemID: 10, Tier: 1, Name: "Spellbook", Type: resource.TypeItem, ActiveFlag: "y", Price: 650,
			ItemDescription: stats("Magical Power", "+20")},
		{ID: 11, RootItemID: 10, Tier: 3, Name: "Book of Thoth", Type: resource.TypeItem, ActiveFlag: "y", Price: 2800,
			ItemDescription: stats("Magical Power", "+100", "Mana", "+200")},
		{ID: 20, RootItemID: 20, Tier: 1, Name: "Bumba's Dagger", Type: resource.TypeItem, ActiveFlag: "y", StartingItem: true, Price: 500,
			ItemDescription: stats("Physical Power", "+10", "Magical Power", "+15")},
		{ID: 30, RootItemID: 30, Tier: 1, Name: "Warrior's Axe", Type: resource.TypeItem, ActiveFlag: "y", RestrictedRoles: "Guardian,mage",
			ItemDescription: stats("Physical Power", "+12")},
		{ID: 31, RootItemID: 31, Tier: 1, Name: "Spiked Gauntlet", Type: resource.TypeItem, ActiveFlag: "y", RestrictedRoles: "Guardian, Mage",
			ItemDescription: stats("Health", "+100")},
		{ID: 10662, RootItemID: 10662, Tier: 3, Name: "Odysseus' Bow", Type: resource.TypeItem, ActiveFlag: "y",
			ItemDescription: stats("Attack Speed", "+40%")},
		{ID: 18703, RootItemID: 18703, Tier: 1, Name: "Acorn of Yggdrasil", Type: resource.TypeItem, ActiveFlag: "y"},
		{ID: 40, RootItemID: 40, Tier: 1, Name: "Healing Potion", Type: resource.TypeConsumable, ActiveFlag: "y", Price: 50},
		{ID: 50, RootItemID: 50, Tier: 1, Name: "Purification Beads", Type: resource.TypeActive, ActiveFlag: "y"},
		{ID: 60, RootItemID: 60, Tier: 3, Name: "Retired Blade", Type: resource.TypeItem, ActiveFlag: "n",
			ItemDescription: stats("Physical Power", "+50")},
	}
}

// FixtureGods pairs with FixtureItems.
func FixtureGods() []resource.God {
	return []resource.God{
		{ID: 1, Name: "Ares", Roles: "Guardian", Type: "Melee, Magical", Pantheon: "Greek"},
		{ID: 2, Name: "Ratatoskr", Roles: "Assassin", Type: "Melee, Physical", Pantheon: "Norse"},
		{ID: 3, Name: "Anubis", Roles: "Mage", Type: "Ranged, Magical", Pantheon: "Egyptian"},
		{ID: 4, Name: "Achilles", Roles: "Warrior", Type: "Melee, Physical", Pantheon: "Greek"},
	}
}

// SetupTestCatalog returns a Catalog built from the fixtures.
func SetupTestCatalog(t *testing.T) *resource.Catalog {
	t.Helper()
	return resource.NewCatalog(FixtureItems(), FixtureGods())
}

// WriteCatalogFiles writes the fixtures as upstream JSON dumps and returns
// the items and gods paths.
func WriteCatalogFiles(t *testing.T) (itemsPath, godsPath string) {
	t.Helper()
	dir := t.TempDir()
	itemsPath = filepath.Join(dir, "items.json")
	godsPath = filepath.Join(dir, "gods.json")

	for path, v := range map[string]interface{}{itemsPath: FixtureItems(), godsPath: FixtureGods()} {
		raw, err := json.Marshal(v)
		require.NoError(t, err, "WriteCatalogFiles: marshal")
		require.NoError(t, os.WriteFile(path, raw, 0644), "WriteCatalogFiles: write")
	}
	return itemsPath, godsPath
}

// SetupTestCache creates a LocalCache (no Redis required) closed at cleanup.
func SetupTestCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewCache(cache.CacheConfig{})
	require.NoError(t, err, "SetupTestCache: NewCache")
	t.Cleanup(func() { _ = c.Close() })
	return c
}
