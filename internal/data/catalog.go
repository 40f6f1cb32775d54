package data

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// MoveCategory is the physical/special/status split.
type MoveCategory uint8

const (
	CategoryPhysical MoveCategory = iota
	CategorySpecial
	CategoryStatus
)

func (c MoveCategory) String() string {
	switch c {
	case CategoryPhysical:
		return "Physical"
	case CategorySpecial:
		return "Special"
	case CategoryStatus:
		return "Status"
	}
	return fmt.Sprintf("MoveCategory(%d)", c)
}

// ParseMoveCategory resolves a move category name.
func ParseMoveCategory(s string) (MoveCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical":
		return CategoryPhysical, nil
	case "special":
		return CategorySpecial, nil
	case "status":
		return CategoryStatus, nil
	}
	return 0, fmt.Errorf("unknown move category %q", s)
}

// VariablePower selects a base-power family computed from battle state.
type VariablePower uint8

const (
	PowerFixed        VariablePower = iota
	PowerWeightRatio                // user weight / target weight
	PowerTargetWeight               // target weight only
	PowerSpeedRatio                 // user speed / target speed
	PowerInverseSpeed               // target speed / user speed
)

// ParseVariablePower resolves a variable-power family name. Empty is PowerFixed.
func ParseVariablePower(s string) (VariablePower, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed":
		return PowerFixed, nil
	case "weight_ratio":
		return PowerWeightRatio, nil
	case "target_weight":
		return PowerTargetWeight, nil
	case "speed_ratio":
		return PowerSpeedRatio, nil
	case "inverse_speed":
		return PowerInverseSpeed, nil
	}
	return 0, fmt.Errorf("unknown variable power %q", s)
}

// MoveFlag marks a move property that the damage estimator reacts to.
// Flags can be added or removed by move modifiers.
type MoveFlag string

const (
	FlagContact          MoveFlag = "Contact"
	FlagMultihit2        MoveFlag = "Multihit 2"
	FlagMultihit3        MoveFlag = "Multihit 3"
	FlagMultihit2to5     MoveFlag = "Multihit 2-5"
	FlagGatedMultihit3   MoveFlag = "Gated Multihit 3"
	FlagGatedMultihit10  MoveFlag = "Gated Multihit 10"
	FlagMaxHits          MoveFlag = "Max Hits"
	FlagUseTargetAttack  MoveFlag = "Use Target Attack"
	FlagUseOwnDefense    MoveFlag = "Use Own Defense"
	FlagSwapDefense      MoveFlag = "Swap Defense"
	FlagIgnoresImmunity  MoveFlag = "Ignores Immunity"
	FlagDoublesResisted  MoveFlag = "Doubles Resisted"
	FlagFixedDamage      MoveFlag = "Fixed Damage"
	FlagAlwaysCrits      MoveFlag = "Always Crits"
	forcedSEFlagPrefix            = "Forced SE:"
)

// ForcedSEFlag returns the flag that makes a move super effective against t.
func ForcedSEFlag(t Type) MoveFlag {
	return MoveFlag(forcedSEFlagPrefix + t.String())
}

// FlagSet is a set of move flags.
type FlagSet map[MoveFlag]struct{}

// NewFlagSet builds a set from flags.
func NewFlagSet(flags ...MoveFlag) FlagSet {
	s := make(FlagSet, len(flags))
	for _, f := range flags {
		s[f] = struct{}{}
	}
	return s
}

func (s FlagSet) Has(f MoveFlag) bool {
	_, ok := s[f]
	return ok
}

// Clone returns an independent copy.
func (s FlagSet) Clone() FlagSet {
	out := make(FlagSet, len(s))
	for f := range s {
		out[f] = struct{}{}
	}
	return out
}

// Union adds every member of other to s.
func (s FlagSet) Union(other FlagSet) {
	for f := range other {
		s[f] = struct{}{}
	}
}

// ForcedSE returns the type the set forces super-effectiveness against, or TypeNone.
// With several such flags the lowest type wins.
func (s FlagSet) ForcedSE() Type {
	forced := TypeNone
	for f := range s {
		name, ok := strings.CutPrefix(string(f), forcedSEFlagPrefix)
		if !ok {
			continue
		}
		if t, err := ParseType(name); err == nil && (forced == TypeNone || t < forced) {
			forced = t
		}
	}
	return forced
}

// Species is a catalog entry for a creature species.
type Species struct {
	Name         string
	Types        TypePair
	BaseStats    [StatCount]int
	Weight       float64 // kg
	HasEvolution bool
	Abilities    []string
	Learnset     []string
}

// Tag returns the species tag.
func (s *Species) Tag() Tag { return SpeciesTag(s.Name) }

// Move is a catalog entry for a move.
type Move struct {
	Name        string
	Type        Type
	Category    MoveCategory
	BasePower   int
	Accuracy    float64 // 0..1, 0 means the move never misses
	Flags       FlagSet
	FixedDamage int
	Power       VariablePower
}

// Tag returns the move tag.
func (m *Move) Tag() Tag { return MoveTag(m.Name) }

// Damaging reports whether the move deals damage.
func (m *Move) Damaging() bool { return m.Category != CategoryStatus }

// Ability is a catalog entry for an ability. Flags are Effect tags.
type Ability struct {
	Name  string
	Flags []Tag
}

// Tag returns the ability tag.
func (a *Ability) Tag() Tag { return AbilityTag(a.Name) }

// HasFlag reports whether the ability carries flag.
func (a *Ability) HasFlag(flag Tag) bool { return slices.Contains(a.Flags, flag) }

// ItemKind separates stat-investment items from held battle items.
type ItemKind uint8

const (
	ItemMod    ItemKind = iota // stat investment: EV spread, nature
	ItemBattle                 // held item
)

func (k ItemKind) String() string {
	if k == ItemMod {
		return "Mod"
	}
	return "Battle"
}

// ParseItemKind resolves "mod" or "battle".
func ParseItemKind(s string) (ItemKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mod":
		return ItemMod, nil
	case "battle", "":
		return ItemBattle, nil
	}
	return 0, fmt.Errorf("unknown item kind %q", s)
}

// Item is a catalog entry for an item. Flags are ItemFlag tags.
type Item struct {
	Name  string
	Kind  ItemKind
	Flags []Tag
}

// Tag returns the item tag.
func (i *Item) Tag() Tag { return ItemTag(i.Name) }

// Catalog indexes species, moves, abilities and items by case-folded name.
type Catalog struct {
	species   map[string]*Species
	moves     map[string]*Move
	abilities map[string]*Ability
	items     map[string]*Item
}

// catalogKey case-folds a name. Casers are stateful, so each call gets its own.
func catalogKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		species:   make(map[string]*Species),
		moves:     make(map[string]*Move),
		abilities: make(map[string]*Ability),
		items:     make(map[string]*Item),
	}
}

func (c *Catalog) AddSpecies(s *Species) { c.species[catalogKey(s.Name)] = s }
func (c *Catalog) AddMove(m *Move)       { c.moves[catalogKey(m.Name)] = m }
func (c *Catalog) AddAbility(a *Ability) { c.abilities[catalogKey(a.Name)] = a }
func (c *Catalog) AddItem(i *Item)       { c.items[catalogKey(i.Name)] = i }

// Species returns nil if not found.
func (c *Catalog) Species(name string) *Species { return c.species[catalogKey(name)] }

// Move returns nil if not found.
func (c *Catalog) Move(name string) *Move { return c.moves[catalogKey(name)] }

// Ability returns nil if not found.
func (c *Catalog) Ability(name string) *Ability { return c.abilities[catalogKey(name)] }

// Item returns nil if not found.
func (c *Catalog) Item(name string) *Item { return c.items[catalogKey(name)] }

// AllSpecies returns species sorted by name.
func (c *Catalog) AllSpecies() []*Species {
	out := make([]*Species, 0, len(c.species))
	for _, s := range c.species {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Species) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// AllMoves returns moves sorted by name.
func (c *Catalog) AllMoves() []*Move {
	out := make([]*Move, 0, len(c.moves))
	for _, m := range c.moves {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b *Move) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// AllAbilities returns abilities sorted by name.
func (c *Catalog) AllAbilities() []*Ability {
	out := make([]*Ability, 0, len(c.abilities))
	for _, a := range c.abilities {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *Ability) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// ItemsOfKind returns items of kind sorted by name.
func (c *Catalog) ItemsOfKind(kind ItemKind) []*Item {
	var out []*Item
	for _, it := range c.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b *Item) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Counts returns the number of species, moves, abilities and items.
func (c *Catalog) Counts() (species, moves, abilities, items int) {
	return len(c.species), len(c.moves), len(c.abilities), len(c.items)
}
