package item

// Stat descriptions that mark an item as built for one damage type. A
// character of the other type may not equip an item listing any of them.
var (
	magicalStatKeys  = NewItemKeySet("Magical Power", "Magical Penetration", "Magical Lifesteal")
	physicalStatKeys = NewItemKeySet("Physical Power", "Physical Penetration", "Physical Lifesteal")
)

// Items whose stat block does not reveal their damage type. Matched against
// both ItemId and RootItemId.
var (
	// Odysseus' Bow tree.
	PhysicalOnlyIDs = NewItemSet(10662)
	MagicalOnlyIDs  = NewItemSet()
)

// AcornTreeRootID is the root of Ratatoskr's acorn upgrade tree.
const AcornTreeRootID = 18703

// ItemKeySet is a set of stat descriptions.
type ItemKeySet map[string]struct{}

// NewItemKeySet builds an ItemKeySet.
func NewItemKeySet(keys ...string) ItemKeySet {
	s := make(ItemKeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether key is in the set.
func (s ItemKeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// opposingStatKeys returns the stat descriptions forbidden for damageType, or
// nil when the damage type is neither Physical nor Magical.
func opposingStatKeys(damageType string) ItemKeySet {
	switch damageType {
	case DamagePhysical:
		return magicalStatKeys
	case DamageMagical:
		return physicalStatKeys
	}
	return nil
}

// opposingOverrideIDs returns the override list forbidden for damageType.
func opposingOverrideIDs(damageType string) ItemSet {
	switch damageType {
	case DamagePhysical:
		return MagicalOnlyIDs
	case DamageMagical:
		return PhysicalOnlyIDs
	}
	return nil
}
