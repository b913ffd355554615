package item

import (
	"strings"

	"github.com/kasuganosora/smitebuilder/server/resource"
)

// Stage is one filtering rule of an eligibility pipeline. Keep must be a pure
// predicate: it may not modify the item or depend on anything but its
// arguments.
type Stage interface {
	Name() string
	Keep(it *resource.Item, q Query) bool
}

// ActiveFlagStage keeps catalog-visible items.
type ActiveFlagStage struct{}

func (ActiveFlagStage) Name() string { return "active_flag" }

func (ActiveFlagStage) Keep(it *resource.Item, _ Query) bool {
	return it.IsActive()
}

// CategoryStage keeps only regular items when the query asks for them.
type CategoryStage struct{}

func (CategoryStage) Name() string { return "category" }

func (CategoryStage) Keep(it *resource.Item, q Query) bool {
	return !q.ItemsOnly || it.Type == resource.TypeItem
}

// TypeStage keeps items of one fixed type regardless of the query. It backs
// the consumable and relic listings.
type TypeStage struct {
	Type resource.ItemType
}

func (s TypeStage) Name() string { return "type_" + strings.ToLower(string(s.Type)) }

func (s TypeStage) Keep(it *resource.Item, _ Query) bool {
	return it.Type == s.Type
}

// RoleRestrictionStage drops items whose RestrictedRoles list the query role.
// Entries are split on commas and lower-cased, nothing else: "Guardian, Mage"
// yields " mage", which a Mage does not match. Blank entries never match.
type RoleRestrictionStage struct{}

func (RoleRestrictionStage) Name() string { return "role_restriction" }

func (RoleRestrictionStage) Keep(it *resource.Item, q Query) bool {
	if it.RestrictedRoles == "" {
		return true
	}
	role := strings.ToLower(q.Role)
	for _, r := range strings.Split(it.RestrictedRoles, ",") {
		r = strings.ToLower(r)
		if r != "" && r == role {
			return false
		}
	}
	return true
}

// DamageAffinityStage drops items whose stat block lists a stat of the
// opposing damage type. Starting items are exempt. For a damage type other
// than Physical or Magical nothing is dropped.
type DamageAffinityStage struct{}

func (DamageAffinityStage) Name() string { return "damage_affinity" }

func (DamageAffinityStage) Keep(it *resource.Item, q Query) bool {
	if it.StartingItem {
		return true
	}
	opposing := opposingStatKeys(q.DamageType)
	for _, e := range it.StatEntries() {
		if opposing.Has(e.Description) {
			return false
		}
	}
	return true
}

// OverrideListStage drops items named in the override list of the opposing
// damage type, by ID or by root ID. Starting items get no exemption here.
type OverrideListStage struct{}

func (OverrideListStage) Name() string { return "override_list" }

func (OverrideListStage) Keep(it *resource.Item, q Query) bool {
	ids := opposingOverrideIDs(q.DamageType)
	return !ids.Has(it.ID) && !ids.Has(it.RootItemID)
}

// EquippedExclusionStage drops items already equipped. It is inert when the
// query carries no loadout.
type EquippedExclusionStage struct{}

func (EquippedExclusionStage) Name() string { return "equipped_exclusion" }

func (EquippedExclusionStage) Keep(it *resource.Item, q Query) bool {
	if q.Equipped == nil {
		return true
	}
	return !q.Equipped.Has(it.ID)
}

// CharacterExceptionStage reserves the Acorn tree for the special character.
type CharacterExceptionStage struct{}

func (CharacterExceptionStage) Name() string { return "character_exception" }

func (CharacterExceptionStage) Keep(it *resource.Item, q Query) bool {
	if it.RootItemID == AcornTreeRootID {
		return q.IsSpecialCharacter
	}
	return true
}
