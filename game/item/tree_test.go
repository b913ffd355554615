package item

import (
	"encoding/json"
	"testing"

	"github.com/kasuganosora/smitebuilder/server/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treeCatalog() []resource.Item {
	return []resource.Item{
		{ID: 7, RootItemID: 7, Tier: 1, ActiveFlag: "y"},
		{ID: 8, RootItemID: 7, Tier: 2, ActiveFlag: "y"},
		{ID: 100, RootItemID: 100, Tier: 1, ActiveFlag: "y"},
		{ID: 9, RootItemID: 7, Tier: 3, ActiveFlag: "y"},
		{ID: 10, RootItemID: 7, Tier: 3, ActiveFlag: "y"},
		{ID: 11, RootItemID: 7, Tier: 2, ActiveFlag: "n"},
		{ID: 12, RootItemID: 7, Tier: 4, ActiveFlag: "y"},
		{ID: 13, RootItemID: 7, Tier: 0, ActiveFlag: "y"},
	}
}

func TestBuildTree(t *testing.T) {
	tree := BuildTree(treeCatalog(), 7)
	assert.Equal(t, []int{7}, ids(tree.Tier1))
	assert.Equal(t, []int{8}, ids(tree.Tier2))
	assert.Equal(t, []int{9, 10}, ids(tree.Tier3))
	assert.Equal(t, 4, tree.Len())
}

func TestBuildTree_BucketsMatchTier(t *testing.T) {
	tree := BuildTree(treeCatalog(), 7)
	for tier, bucket := range [][]resource.Item{tree.Tier1, tree.Tier2, tree.Tier3} {
		for _, it := range bucket {
			assert.Equal(t, tier+1, it.Tier)
			assert.Equal(t, 7, it.RootItemID)
			assert.True(t, it.IsActive())
		}
	}
}

func TestBuildTree_OutOfRangeTierDropped(t *testing.T) {
	tree := BuildTree(treeCatalog(), 7)
	all := append(append(ids(tree.Tier1), ids(tree.Tier2)...), ids(tree.Tier3)...)
	assert.NotContains(t, all, 12)
	assert.NotContains(t, all, 13)
}

func TestBuildTree_UnknownRoot(t *testing.T) {
	tree := BuildTree(treeCatalog(), 999)
	assert.Equal(t, 0, tree.Len())
	assert.NotNil(t, tree.Tier1)
	assert.NotNil(t, tree.Tier2)
	assert.NotNil(t, tree.Tier3)
}

func TestBuildTree_JSONShape(t *testing.T) {
	data, err := json.Marshal(BuildTree(nil, 1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier1":[],"tier2":[],"tier3":[]}`, string(data))
}

func TestBuildTree_Idempotent(t *testing.T) {
	catalog := treeCatalog()
	assert.Equal(t, BuildTree(catalog, 7), BuildTree(catalog, 7))
}
