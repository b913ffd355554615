package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ---- SMITE Data Structures ----

// ItemType is the upstream category of a catalog entry.
type ItemType string

const (
	TypeItem       ItemType = "Item"
	TypeConsumable ItemType = "Consumable"
	TypeActive     ItemType = "Active" // shown to players as "relic"
)

// ActiveFlagYes marks an item as visible and usable.
const ActiveFlagYes = "y"

// StatEntry is one line of an item's stat block, e.g. {"Magical Power", "+40"}.
type StatEntry struct {
	Description string `json:"Description"`
	Value       string `json:"Value"`
}

type ItemDescription struct {
	Description          string      `json:"Description"`
	SecondaryDescription string      `json:"SecondaryDescription"`
	Menuitems            []StatEntry `json:"Menuitems"`
}

// Item is a catalog entry as published by the SMITE API.
type Item struct {
	ID              int              `json:"ItemId"`
	RootItemID      int              `json:"RootItemId"`
	ChildItemID     int              `json:"ChildItemId"`
	Tier            int              `json:"ItemTier"`
	Name            string           `json:"DeviceName"`
	Type            ItemType         `json:"Type"`
	ActiveFlag      string           `json:"ActiveFlag"`
	RestrictedRoles string           `json:"RestrictedRoles"`
	StartingItem    bool             `json:"StartingItem"`
	IconID          int              `json:"IconId"`
	Price           int              `json:"Price"`
	ItemDescription *ItemDescription `json:"ItemDescription,omitempty"`
}

// StatEntries returns the item's stat block. A missing description yields nil.
func (it *Item) StatEntries() []StatEntry {
	if it.ItemDescription == nil {
		return nil
	}
	return it.ItemDescription.Menuitems
}

// Clone returns a deep copy; the stat block is not shared with it.
func (it Item) Clone() Item {
	if it.ItemDescription != nil {
		d := *it.ItemDescription
		d.Menuitems = slices.Clone(d.Menuitems)
		it.ItemDescription = &d
	}
	return it
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// IsActive reports whether the item is visible in the catalog.
func (it *Item) IsActive() bool {
	return it.ActiveFlag == ActiveFlagYes
}

// God is a playable character.
// Type holds the basic attack and damage type, e.g. "Ranged, Magical".
type God struct {
	ID       int    `json:"id"`
	Name     string `json:"Name"`
	Roles    string `json:"Roles"`
	Type     string `json:"Type"`
	Pantheon string `json:"Pantheon"`
	Title    string `json:"Title"`
}

// typeParts splits God.Type into trimmed components.
func (g *God) typeParts() []string {
	parts := strings.Split(g.Type, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// DamageType returns "Physical" or "Magical" if present in Type, else "".
func (g *God) DamageType() string {
	for _, p := range g.typeParts() {
		if strings.EqualFold(p, "Physical") {
			return "Physical"
		}
		if strings.EqualFold(p, "Magical") {
			return "Magical"
		}
	}
	return ""
}

// BasicAttackType returns "Melee" or "Ranged" if present in Type, else "".
func (g *God) BasicAttackType() string {
	for _, p := range g.typeParts() {
		if strings.EqualFold(p, "Melee") {
			return "Melee"
		}
		if strings.EqualFold(p, "Ranged") {
			return "Ranged"
		}
	}
	return ""
}

// PrimaryRole returns the first entry of Roles, trimmed.
func (g *God) PrimaryRole() string {
	role, _, _ := strings.Cut(g.Roles, ",")
	return strings.TrimSpace(role)
}

// ---- Catalog ----

// ErrEmptyCatalog is returned when a data file parses to zero records.
var ErrEmptyCatalog = errors.New("resource: empty catalog")

// Catalog is the immutable item and god data for one process lifetime.
// All accessors are safe for concurrent use. Records go in and come out as
// deep copies, so nothing a caller does to them reaches the catalog or
// invalidates its fingerprint.
type Catalog struct {
	items       []Item
	gods        []God
	itemIndex   map[int]int
	godIndex    map[int]int
	fingerprint uint64
}

// NewCatalog builds a Catalog from already decoded records.
// The records are deep-copied; later changes by the caller are not observed.
func NewCatalog(items []Item, gods []God) *Catalog {
	c := &Catalog{
		items:     cloneItems(items),
		gods:      slices.Clone(gods),
		itemIndex: make(map[int]int, len(items)),
		godIndex:  make(map[int]int, len(gods)),
	}
	// First occurrence wins, matching a linear scan.
	for i := range c.items {
		if _, dup := c.itemIndex[c.items[i].ID]; !dup {
			c.itemIndex[c.items[i].ID] = i
		}
	}
	for i := range c.gods {
		if _, dup := c.godIndex[c.gods[i].ID]; !dup {
			c.godIndex[c.gods[i].ID] = i
		}
	}
	if raw, err := json.Marshal(struct {
		Items []Item
		Gods  []God
	}{c.items, c.gods}); err == nil {
		c.fingerprint = xxhash.Sum64(raw)
	}
	return c
}

// Items returns a copy of every item in load order.
func (c *Catalog) Items() []Item {
	return cloneItems(c.items)
}

// Gods returns a copy of every god in load order.
func (c *Catalog) Gods() []God {
	return slices.Clone(c.gods)
}

// ItemByID returns a copy of the item with the given ID.
func (c *Catalog) ItemByID(id int) (*Item, bool) {
	i, ok := c.itemIndex[id]
	if !ok {
		return nil, false
	}
	it := c.items[i].Clone()
	return &it, true
}

// GodByID returns a copy of the god with the given ID.
func (c *Catalog) GodByID(id int) (*God, bool) {
	i, ok := c.godIndex[id]
	if !ok {
		return nil, false
	}
	g := c.gods[i]
	return &g, true
}

// Fingerprint identifies the catalog contents. Two catalogs built from the
// same records share a fingerprint.
func (c *Catalog) Fingerprint() string {
	return fmt.Sprintf("%016x", c.fingerprint)
}

// ---- Loader ----

// Loader reads the SMITE data dumps from disk.
type Loader struct {
	ItemsPath string
	GodsPath  string
}

// NewLoader creates a Loader for the given item and god files.
func NewLoader(itemsPath, godsPath string) *Loader {
	return &Loader{ItemsPath: itemsPath, GodsPath: godsPath}
}

// Load reads both data files. Any read or parse failure, or an empty file,
// is returned as an error; callers must not serve a partial catalog.
func (l *Loader) Load() (*Catalog, error) {
	items, err := loadJSONArray[Item](l.ItemsPath)
	if err != nil {
		return nil, err
	}
	gods, err := loadJSONArray[God](l.GodsPath)
	if err != nil {
		return nil, err
	}
	return NewCatalog(items, gods), nil
}

func loadJSONArray[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resource: read %s: %w", path, err)
	}
	var arr []*T
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, fmt.Errorf("resource: parse %s: %w", path, err)
	}
	// Dumps sometimes carry null placeholders.
	out := make([]T, 0, len(arr))
	for _, v := range arr {
		if v != nil {
			out = append(out, *v)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, path)
	}
	return out, nil
}
