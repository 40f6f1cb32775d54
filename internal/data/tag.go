package data

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnknownCategory is returned when a tag string names a category the engine does not model.
	ErrUnknownCategory = errors.New("unknown tag category")
	// ErrUnknownTag is returned when a tag string cannot be split into category and name.
	ErrUnknownTag = errors.New("malformed tag")
)

// Category classifies a tagged element.
type Category uint8

const (
	CategorySpecies Category = iota
	CategorySpeciesType
	CategoryHasEvolution
	CategoryAbility
	CategoryMove
	CategoryMoveCategory
	CategoryAnyDamagingMove
	CategoryMoveOfType
	CategoryHeldItem
	CategoryItemFlag
	CategoryStrategy
	CategoryEffect // derived-effect flag, also used for ability flags
)

var categoryNames = [...]string{
	CategorySpecies:         "Species",
	CategorySpeciesType:     "Type",
	CategoryHasEvolution:    "Evolution",
	CategoryAbility:         "Ability",
	CategoryMove:            "Move",
	CategoryMoveCategory:    "MoveCategory",
	CategoryAnyDamagingMove: "AnyDamagingMove",
	CategoryMoveOfType:      "MoveType",
	CategoryHeldItem:        "Item",
	CategoryItemFlag:        "ItemFlag",
	CategoryStrategy:        "Strategy",
	CategoryEffect:          "Effect",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", c)
}

// ParseCategory resolves the textual category prefix of a tag.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Tag is a (category, name) key identifying any element of the modifier graph.
// Tags are comparable and used directly as map keys.
type Tag struct {
	Category Category
	Name     string
}

// NewTag builds a tag with a canonical display name.
func NewTag(c Category, name string) Tag {
	return Tag{Category: c, Name: strings.TrimSpace(name)}
}

func (t Tag) String() string {
	return t.Category.String() + ":" + t.Name
}

// IsZero reports whether t is the zero tag.
func (t Tag) IsZero() bool {
	return t == Tag{}
}

// ParseTag parses "Category:Name". Called once at load time; the engine only compares typed tags.
func ParseTag(s string) (Tag, error) {
	cat, name, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return Tag{}, fmt.Errorf("%w: %q", ErrUnknownTag, s)
	}
	c, err := ParseCategory(strings.TrimSpace(cat))
	if err != nil {
		return Tag{}, fmt.Errorf("parsing tag %q: %w", s, err)
	}
	return NewTag(c, name), nil
}

// MustParseTag is ParseTag for literals in code and tests.
func MustParseTag(s string) Tag {
	t, err := ParseTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Well-known tags referenced by the engine.
var (
	TagTrickRoom       = Tag{Category: CategoryStrategy, Name: "Trick Room"}
	TagAnyDamagingMove = Tag{Category: CategoryAnyDamagingMove, Name: "Any"}
	TagHasEvolution    = Tag{Category: CategoryHasEvolution, Name: "Has Evolution"}

	FlagDoublesOnly   = Tag{Category: CategoryEffect, Name: "Doubles Only"}
	FlagGoodFirstSlot = Tag{Category: CategoryEffect, Name: "Good First Slot"}
	FlagGoodLastSlot  = Tag{Category: CategoryEffect, Name: "Good Last Slot"}
	FlagOffensive     = Tag{Category: CategoryEffect, Name: "Offensive"}
	FlagDefensive     = Tag{Category: CategoryEffect, Name: "Defensive"}
	FlagSpeed         = Tag{Category: CategoryEffect, Name: "Speed"}
	FlagHeal          = Tag{Category: CategoryEffect, Name: "Heal"}
)

// SpeciesTag returns the tag of a species.
func SpeciesTag(name string) Tag { return Tag{Category: CategorySpecies, Name: name} }

// TypeTag returns the species-type tag of t.
func TypeTag(t Type) Tag { return Tag{Category: CategorySpeciesType, Name: t.String()} }

// AbilityTag returns the tag of an ability.
func AbilityTag(name string) Tag { return Tag{Category: CategoryAbility, Name: name} }

// MoveTag returns the tag of a move.
func MoveTag(name string) Tag { return Tag{Category: CategoryMove, Name: name} }

// MoveCategoryTag returns the tag of a move category.
func MoveCategoryTag(c MoveCategory) Tag { return Tag{Category: CategoryMoveCategory, Name: c.String()} }

// MoveOfTypeTag returns the move-of-type tag for t.
func MoveOfTypeTag(t Type) Tag { return Tag{Category: CategoryMoveOfType, Name: t.String()} }

// ItemTag returns the tag of a held item.
func ItemTag(name string) Tag { return Tag{Category: CategoryHeldItem, Name: name} }

// StrategyTag returns the tag of a team strategy.
func StrategyTag(name string) Tag { return Tag{Category: CategoryStrategy, Name: name} }

// TagSet is an unordered set of tags.
type TagSet map[Tag]struct{}

// NewTagSet builds a set from tags.
func NewTagSet(tags ...Tag) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

func (s TagSet) Has(t Tag) bool {
	_, ok := s[t]
	return ok
}

func (s TagSet) Add(t Tag) {
	s[t] = struct{}{}
}

// Clone returns an independent copy.
func (s TagSet) Clone() TagSet {
	out := make(TagSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Sorted returns the members ordered by category then name.
// Propagation iterates sets in this order so seeded builds are reproducible.
func (s TagSet) Sorted() []Tag {
	out := make([]Tag, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.SortFunc(out, CompareTags)
	return out
}

// CompareTags orders tags by category, then name.
func CompareTags(a, b Tag) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}
	return strings.Compare(a.Name, b.Name)
}

// RequirementGroup is an OR-list of tags; any one member discharges the group.
type RequirementGroup []Tag

// SatisfiedBy reports whether any member is present in active.
func (g RequirementGroup) SatisfiedBy(active TagSet) bool {
	for _, t := range g {
		if active.Has(t) {
			return true
		}
	}
	return false
}

// Contains reports whether t is one of the group's branches.
func (g RequirementGroup) Contains(t Tag) bool {
	return slices.Contains(g, t)
}
