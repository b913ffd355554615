package rest_test

import (
	"net/http"
	"testing"

	"github.com/kasuganosora/smitebuilder/server/game/item"
	"github.com/kasuganosora/smitebuilder/server/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItems_Listings(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	assert.Equal(t, []int{1, 2, 3, 10, 11, 20, 30, 31, 10662, 18703, 40, 50}, itemIDs(t, s.get("/api/items")))
	assert.Equal(t, []int{40}, itemIDs(t, s.get("/api/items/consumables")))
	assert.Equal(t, []int{50}, itemIDs(t, s.get("/api/items/relics")))
}

func TestItems_Get(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	w := s.get("/api/items/3")
	require.Equal(t, http.StatusOK, w.Code)
	var it resource.Item
	decode(t, w, &it)
	assert.Equal(t, "Jotunn's Wrath", it.Name)
	assert.Equal(t, 3, it.Tier)

	// Inactive items are still addressable by id.
	assert.Equal(t, http.StatusOK, s.get("/api/items/60").Code)

	w = s.get("/api/items/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "item not found", failureMessage(t, w))

	w = s.get("/api/items/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid id", failureMessage(t, w))
}

func TestItems_Tree(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	w := s.get("/api/items/1/tree")
	require.Equal(t, http.StatusOK, w.Code)
	var tree item.Tree
	decode(t, w, &tree)
	require.Len(t, tree.Tier1, 1)
	require.Len(t, tree.Tier2, 1)
	require.Len(t, tree.Tier3, 1)
	assert.Equal(t, 1, tree.Tier1[0].ID)
	assert.Equal(t, 2, tree.Tier2[0].ID)
	assert.Equal(t, 3, tree.Tier3[0].ID)
}

func TestItems_Tree_UnknownRootIsEmptyNotNull(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	w := s.get("/api/items/12345/tree")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Success","resData":{"tier1":[],"tier2":[],"tier3":[]}}`, w.Body.String())
}

func TestItems_EligibleByPath(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	cases := []struct {
		name string
		path string
		want []int
	}{
		{"physical warrior", "/api/items/eligible/Warrior/Physical/Melee/true/false", []int{1, 2, 3, 20, 30, 31, 10662}},
		{"magical guardian", "/api/items/eligible/guardian/Magical/Melee/true/false", []int{10, 11, 20}},
		{"special character", "/api/items/eligible/Assassin/Physical/Melee/true/true", []int{1, 2, 3, 20, 30, 31, 10662, 18703}},
		{"all categories", "/api/items/eligible/Warrior/Physical/Melee/false/false", []int{1, 2, 3, 20, 30, 31, 10662, 40, 50}},
		{"unknown damage type keeps both trees", "/api/items/eligible/Warrior/Hybrid/Melee/true/false", []int{1, 2, 3, 10, 11, 20, 30, 31, 10662}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, itemIDs(t, s.get(tc.path)))
		})
	}
}

func TestItems_EligibleByPath_BadFlags(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	w := s.get("/api/items/eligible/Warrior/Physical/Melee/yes/false")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid itemsOnly flag", failureMessage(t, w))

	w = s.get("/api/items/eligible/Warrior/Physical/Melee/true/maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid isSpecial flag", failureMessage(t, w))
}

func TestItems_EligibleByBody(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	w := s.postJSON("/api/items/eligible", map[string]interface{}{
		"role":            "Mage",
		"damageType":      "Magical",
		"basicAttackType": "Ranged",
		"itemsOnly":       true,
		"equippedItemIds": []int{11},
	})
	// 30 lists "mage"; 31 lists " mage", which does not match.
	assert.Equal(t, []int{10, 20, 31}, itemIDs(t, w))
}

func TestItems_EligibleByBody_Invalid(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	w := s.postJSON("/api/items/eligible", map[string]interface{}{"damageType": "Magical"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	failureMessage(t, w)
}
