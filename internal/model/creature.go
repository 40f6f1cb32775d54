package model

import (
	"slices"

	"github.com/udisondev/teambuilder/internal/data"
)

// Creature is one roster member and the partial build the state machine mutates in place.
type Creature struct {
	Slot       int
	Species    *data.Species
	Ability    *data.Ability
	Moves      []*data.Move
	ModItem    *data.Item
	BattleItem *data.Item

	// Fitness scores of the finished build. All 1 without a battle context.
	Offense float64
	Defense float64
	Speed   float64
}

// NewCreature returns an empty build for species in roster slot.
func NewCreature(slot int, species *data.Species) *Creature {
	return &Creature{Slot: slot, Species: species, Offense: 1, Defense: 1, Speed: 1}
}

// Clone returns a copy whose move list can be extended independently.
// Catalog entries are shared; they are immutable.
func (c *Creature) Clone() *Creature {
	cp := *c
	cp.Moves = slices.Clone(c.Moves)
	return &cp
}

// HasMove reports whether the build already contains a move named name.
func (c *Creature) HasMove(name string) bool {
	return slices.ContainsFunc(c.Moves, func(m *data.Move) bool { return m.Name == name })
}

// Items returns the equipped items, mod item first.
func (c *Creature) Items() []*data.Item {
	var out []*data.Item
	if c.ModItem != nil {
		out = append(out, c.ModItem)
	}
	if c.BattleItem != nil {
		out = append(out, c.BattleItem)
	}
	return out
}

// MoveNames returns the names of the chosen moves in pick order.
func (c *Creature) MoveNames() []string {
	out := make([]string, len(c.Moves))
	for i, m := range c.Moves {
		out[i] = m.Name
	}
	return out
}

// AbilityName returns the chosen ability name or "".
func (c *Creature) AbilityName() string {
	if c.Ability == nil {
		return ""
	}
	return c.Ability.Name
}

// ItemName returns the name of it or "".
func ItemName(it *data.Item) string {
	if it == nil {
		return ""
	}
	return it.Name
}
