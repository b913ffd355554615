package item

import (
	"testing"

	"github.com/kasuganosora/smitebuilder/server/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []resource.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// testCatalog covers every stage: retired, consumable, relic, role
// restricted, both damage types, override list, acorn tree and a starting item.
func testCatalog() []resource.Item {
	return []resource.Item{
		{ID: 1, RootItemID: 1, Tier: 1, Type: resource.TypeItem, ActiveFlag: "y", StartingItem: true,
			ItemDescription: stats("Magical Power")},
		{ID: 2, RootItemID: 2, Tier: 1, Type: resource.TypeItem, ActiveFlag: "n"},
		{ID: 3, RootItemID: 3, Tier: 1, Type: resource.TypeConsumable, ActiveFlag: "y"},
		{ID: 4, RootItemID: 4, Tier: 1, Type: resource.TypeActive, ActiveFlag: "y"},
		{ID: 5, RootItemID: 5, Tier: 2, Type: resource.TypeItem, ActiveFlag: "y", RestrictedRoles: "Warrior,Guardian"},
		{ID: 6, RootItemID: 6, Tier: 2, Type: resource.TypeItem, ActiveFlag: "y", ItemDescription: stats("Physical Power")},
		{ID: 7, RootItemID: 7, Tier: 2, Type: resource.TypeItem, ActiveFlag: "y", ItemDescription: stats("Magical Penetration")},
		{ID: 10662, RootItemID: 10662, Tier: 3, Type: resource.TypeItem, ActiveFlag: "y", ItemDescription: stats("Attack Speed")},
		{ID: 18703, RootItemID: AcornTreeRootID, Tier: 1, Type: resource.TypeItem, ActiveFlag: "y", StartingItem: true},
		{ID: 18704, RootItemID: AcornTreeRootID, Tier: 2, Type: resource.TypeItem, ActiveFlag: "y"},
		{ID: 9, RootItemID: 9, Tier: 3, Type: resource.TypeItem, ActiveFlag: "y", ItemDescription: stats("Health")},
	}
}

func TestFilterEligibleItems_WorkedExample(t *testing.T) {
	catalog := []resource.Item{
		{ID: 1, RootItemID: 1, Tier: 1, Type: resource.TypeItem, ActiveFlag: "y", RestrictedRoles: "Mage",
			StartingItem: true, ItemDescription: &resource.ItemDescription{}},
		{ID: 2, RootItemID: 1, Tier: 2, Type: resource.TypeItem, ActiveFlag: "y", RestrictedRoles: "",
			ItemDescription: stats("Magical Power")},
		{ID: 3, RootItemID: 2, Tier: 1, Type: resource.TypeConsumable, ActiveFlag: "y", RestrictedRoles: ""},
	}
	q := Query{Role: "Warrior", DamageType: DamagePhysical, ItemsOnly: true, IsSpecialCharacter: false, Equipped: NewItemSet()}

	got := FilterEligibleItems(catalog, q)
	assert.Equal(t, []int{1}, ids(got))
}

func TestFilterEligibleItems_PhysicalWarrior(t *testing.T) {
	q := Query{Role: "Warrior", DamageType: DamagePhysical, ItemsOnly: false}
	got := FilterEligibleItems(testCatalog(), q)
	// 2 retired, 5 role restricted, 7 magical stat, acorn tree not special.
	assert.Equal(t, []int{1, 3, 4, 6, 10662, 9}, ids(got))
}

func TestFilterEligibleItems_MagicalMage(t *testing.T) {
	q := Query{Role: "Mage", DamageType: DamageMagical, ItemsOnly: true}
	got := FilterEligibleItems(testCatalog(), q)
	// 6 physical stat, 10662 override list, 3/4 not regular items.
	assert.Equal(t, []int{1, 5, 7, 9}, ids(got))
}

func TestFilterEligibleItems_InactiveNeverReturned(t *testing.T) {
	queries := []Query{
		{},
		{Role: "Warrior", DamageType: DamagePhysical},
		{Role: "Mage", DamageType: DamageMagical, ItemsOnly: true, IsSpecialCharacter: true},
		{DamageType: "Hybrid", Equipped: NewItemSet(1)},
	}
	for _, q := range queries {
		for _, it := range FilterEligibleItems(testCatalog(), q) {
			assert.Equal(t, "y", it.ActiveFlag, "query %+v returned inactive item %d", q, it.ID)
		}
	}
}

func TestFilterEligibleItems_ItemsOnly(t *testing.T) {
	for _, dt := range []string{DamagePhysical, DamageMagical, ""} {
		got := FilterEligibleItems(testCatalog(), Query{DamageType: dt, ItemsOnly: true, IsSpecialCharacter: true})
		for _, it := range got {
			assert.Equal(t, resource.TypeItem, it.Type)
		}
	}
}

func TestFilterEligibleItems_StartingItemStillFacesLaterStages(t *testing.T) {
	catalog := []resource.Item{
		// Magical starting item on the physical-only override list.
		{ID: 10662, RootItemID: 10662, Type: resource.TypeItem, ActiveFlag: "y", StartingItem: true,
			ItemDescription: stats("Magical Power")},
		// Starting item in the acorn tree.
		{ID: 18703, RootItemID: AcornTreeRootID, Type: resource.TypeItem, ActiveFlag: "y", StartingItem: true,
			ItemDescription: stats("Magical Power")},
	}

	got := FilterEligibleItems(catalog, Query{DamageType: DamagePhysical, IsSpecialCharacter: true})
	assert.Equal(t, []int{10662, 18703}, ids(got), "affinity exemption applies")

	got = FilterEligibleItems(catalog, Query{DamageType: DamageMagical, IsSpecialCharacter: true})
	assert.Equal(t, []int{18703}, ids(got), "override list still applies")

	got = FilterEligibleItems(catalog, Query{DamageType: DamagePhysical, IsSpecialCharacter: false})
	assert.Equal(t, []int{10662}, ids(got), "character exception still applies")
}

func TestFilterEligibleItems_OverrideByIDWithoutStatSignal(t *testing.T) {
	catalog := []resource.Item{
		{ID: 10662, RootItemID: 10662, Type: resource.TypeItem, ActiveFlag: "y"},
		{ID: 30000, RootItemID: 10662, Type: resource.TypeItem, ActiveFlag: "y"},
	}
	got := FilterEligibleItems(catalog, Query{DamageType: DamageMagical})
	assert.Empty(t, got)
}

func TestFilterEligibleItems_AcornTree(t *testing.T) {
	for _, q := range []Query{
		{Role: "Assassin", DamageType: DamagePhysical},
		{Role: "Mage", DamageType: DamageMagical},
		{Role: "", DamageType: ""},
	} {
		got := FilterEligibleItems(testCatalog(), q)
		assert.NotContains(t, ids(got), 18703)
		assert.NotContains(t, ids(got), 18704)

		q.IsSpecialCharacter = true
		got = FilterEligibleItems(testCatalog(), q)
		assert.Contains(t, ids(got), 18703)
		assert.Contains(t, ids(got), 18704)
	}
}

func TestFilterEligibleItems_EquippedRemoved(t *testing.T) {
	q := Query{Role: "Hunter", DamageType: DamagePhysical}
	without := FilterEligibleItems(testCatalog(), q)
	require.Contains(t, ids(without), 6)

	q.Equipped = NewItemSet(6)
	with := FilterEligibleItems(testCatalog(), q)
	assert.NotContains(t, ids(with), 6)
	assert.Len(t, with, len(without)-1)
}

func TestFilterEligibleItems_UnknownDamageType(t *testing.T) {
	got := FilterEligibleItems(testCatalog(), Query{Role: "Hunter", DamageType: "Hybrid"})
	// Affinity and override stages are no-ops; only retired and acorn items go.
	assert.Equal(t, []int{1, 3, 4, 5, 6, 7, 10662, 9}, ids(got))
}

func TestFilterEligibleItems_Idempotent(t *testing.T) {
	catalog := testCatalog()
	q := Query{Role: "Warrior", DamageType: DamagePhysical, ItemsOnly: true, Equipped: NewItemSet(9)}
	first := FilterEligibleItems(catalog, q)
	second := FilterEligibleItems(catalog, q)
	assert.Equal(t, first, second)
}

func TestFilterEligibleItems_InputUntouched(t *testing.T) {
	catalog := testCatalog()
	snapshot := testCatalog()
	_ = FilterEligibleItems(catalog, Query{Role: "Warrior", DamageType: DamagePhysical, ItemsOnly: true})
	assert.Equal(t, snapshot, catalog)
}

func TestFilterEligibleItems_EmptyCatalog(t *testing.T) {
	got := FilterEligibleItems(nil, Query{DamageType: DamagePhysical})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDefaultPipeline_StageOrder(t *testing.T) {
	assert.Equal(t, []string{
		"active_flag",
		"category",
		"role_restriction",
		"damage_affinity",
		"override_list",
		"equipped_exclusion",
		"character_exception",
	}, DefaultPipeline.Stages())
}

func TestListingPipelines(t *testing.T) {
	catalog := testCatalog()
	assert.Equal(t, []int{1, 3, 4, 5, 6, 7, 10662, 18703, 18704, 9}, ids(ActivePipeline.Filter(catalog, Query{})))
	assert.Equal(t, []int{3}, ids(ConsumablesPipeline.Filter(catalog, Query{})))
	assert.Equal(t, []int{4}, ids(RelicsPipeline.Filter(catalog, Query{})))
}

type recordingObserver struct {
	drops    map[string]int
	order    []string
	pipeline string
	kept     int
}

func (r *recordingObserver) StageDropped(stage string, dropped int) {
	if r.drops == nil {
		r.drops = map[string]int{}
	}
	r.drops[stage] = dropped
	r.order = append(r.order, stage)
}

func (r *recordingObserver) PipelineDone(pipeline string, kept int) {
	r.pipeline = pipeline
	r.kept = kept
}

func TestPipeline_Observer(t *testing.T) {
	obs := &recordingObserver{}
	q := Query{Role: "Warrior", DamageType: DamagePhysical, ItemsOnly: true}
	got := DefaultPipeline.FilterObserved(testCatalog(), q, obs)

	assert.Equal(t, DefaultPipeline.Stages(), obs.order)
	assert.Equal(t, 1, obs.drops["active_flag"])
	assert.Equal(t, 2, obs.drops["category"])
	assert.Equal(t, 1, obs.drops["role_restriction"])
	assert.Equal(t, 1, obs.drops["damage_affinity"])
	assert.Equal(t, 0, obs.drops["override_list"])
	assert.Equal(t, 0, obs.drops["equipped_exclusion"])
	assert.Equal(t, 2, obs.drops["character_exception"])
	assert.Equal(t, "eligible", obs.pipeline)
	assert.Equal(t, len(got), obs.kept)
}

func TestNewPipeline_CopiesStages(t *testing.T) {
	stages := []Stage{ActiveFlagStage{}}
	p := NewPipeline("p", stages...)
	stages[0] = CategoryStage{}
	assert.Equal(t, []string{"active_flag"}, p.Stages())
	assert.Equal(t, "p", p.Name())
}
