package item

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kasuganosora/smitebuilder/server/resource"
)

// Damage types understood by the affinity and override stages.
const (
	DamagePhysical = "Physical"
	DamageMagical  = "Magical"
)

// SpecialCharacterName is the god allowed to equip the Acorn tree.
const SpecialCharacterName = "Ratatoskr"

// ItemSet is a set of item IDs.
type ItemSet map[int]struct{}

// NewItemSet builds an ItemSet from ids.
func NewItemSet(ids ...int) ItemSet {
	s := make(ItemSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set contains nothing.
func (s ItemSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in ascending order.
func (s ItemSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Query holds the character attributes an eligibility run filters against.
// It is built per request and never stored.
type Query struct {
	Role            string
	DamageType      string
	BasicAttackType string // carried through; no stage reads it
	ItemsOnly       bool
	// IsSpecialCharacter unlocks the Acorn tree.
	IsSpecialCharacter bool
	// Equipped is nil when the caller did not supply a loadout.
	Equipped ItemSet
}

// keyEscaper keeps free-text fields from forging a field separator.
var keyEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`)

// CacheKey renders the query as a stable string. Role is lower-cased because
// role matching is case-insensitive; damage type is kept verbatim because the
// affinity stages compare it exactly. Backslash and '|' in either are escaped.
func (q Query) CacheKey() string {
	var b strings.Builder
	b.WriteString(keyEscaper.Replace(strings.ToLower(q.Role)))
	b.WriteByte('|')
	b.WriteString(keyEscaper.Replace(q.DamageType))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(q.ItemsOnly))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(q.IsSpecialCharacter))
	b.WriteByte('|')
	if q.Equipped == nil {
		b.WriteByte('-')
	} else {
		for i, id := range q.Equipped.IDs() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(id))
		}
	}
	return b.String()
}

// QueryForGod derives a Query from a god record: primary role, damage and
// basic attack type from God.Type, regular items only.
func QueryForGod(g *resource.God, equipped ItemSet) Query {
	return Query{
		Role:               g.PrimaryRole(),
		DamageType:         g.DamageType(),
		BasicAttackType:    g.BasicAttackType(),
		ItemsOnly:          true,
		IsSpecialCharacter: g.Name == SpecialCharacterName,
		Equipped:           equipped,
	}
}
