package modifier

import (
	"fmt"
	"slices"

	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/model"
)

// Rebuild constructs a fresh context from the team context and the creature's partial build.
// Tags are activated in order: species, has-evolution, moves, move categories, any damaging
// move, ability and its flags, items and their flags, then every strategy until no new
// strategy appears. Type tags come last, once ability, item and strategy overrides have
// settled the typing: the tera type alone when set, both working types otherwise.
// A final move pass computes each move's flag set, and requirement groups the build now
// satisfies are dropped.
func Rebuild(rules *data.Ruleset, team TeamContext, c *model.Creature) (*BuildContext, error) {
	ctx := NewBuildContext(team)
	sp := c.Species
	ctx.Types = sp.Types
	ctx.Weight = sp.Weight

	activate := func(t data.Tag) error {
		_, err := Activate(rules, t, ctx)
		return err
	}

	if err := activate(sp.Tag()); err != nil {
		return nil, err
	}

	if sp.HasEvolution {
		if err := activate(data.TagHasEvolution); err != nil {
			return nil, err
		}
	}

	for _, m := range c.Moves {
		if err := activate(m.Tag()); err != nil {
			return nil, err
		}
	}
	damaging := false
	for _, m := range c.Moves {
		if err := activate(data.MoveCategoryTag(m.Category)); err != nil {
			return nil, err
		}
		damaging = damaging || m.Damaging()
	}
	if damaging {
		if err := activate(data.TagAnyDamagingMove); err != nil {
			return nil, err
		}
	}

	if c.Ability != nil {
		if err := activate(c.Ability.Tag()); err != nil {
			return nil, err
		}
		for _, f := range c.Ability.Flags {
			if err := activate(f); err != nil {
				return nil, err
			}
		}
	}

	for _, it := range c.Items() {
		if err := activate(it.Tag()); err != nil {
			return nil, err
		}
		for _, f := range it.Flags {
			if err := activate(f); err != nil {
				return nil, err
			}
		}
	}

	if err := PropagateStrategies(rules, ctx); err != nil {
		return nil, err
	}
	if err := propagateTypes(rules, ctx); err != nil {
		return nil, err
	}

	FinalizeMoveFlags(ctx, c.Moves)
	DropSatisfied(ctx)
	return ctx, nil
}

// propagateTypes activates the display types and the strategies they unlock. A type tag
// may itself retype the creature, so the pass repeats until the display types are all active.
func propagateTypes(rules *data.Ruleset, ctx *BuildContext) error {
	for range maxTypeResolutions {
		progressed := false
		for _, t := range ctx.DisplayTypes() {
			if t == data.TypeNone {
				continue
			}
			fresh, err := Activate(rules, data.TypeTag(t), ctx)
			if err != nil {
				return fmt.Errorf("type %s: %w", t, err)
			}
			progressed = progressed || fresh
		}
		if !progressed {
			return nil
		}
		if err := PropagateStrategies(rules, ctx); err != nil {
			return err
		}
	}
	return nil
}

// PropagateStrategies activates every strategy in the context, repeating until a pass
// unlocks nothing new. Strategies are visited in sorted order.
func PropagateStrategies(rules *data.Ruleset, ctx *BuildContext) error {
	for {
		progressed := false
		for _, s := range ctx.Strategies.Sorted() {
			fresh, err := Activate(rules, s, ctx)
			if err != nil {
				return fmt.Errorf("strategy %s: %w", s, err)
			}
			progressed = progressed || fresh
		}
		if !progressed {
			return nil
		}
	}
}

// DropSatisfied removes requirement groups with at least one branch present in the build.
func DropSatisfied(ctx *BuildContext) {
	ctx.Unresolved = slices.DeleteFunc(ctx.Unresolved, func(g data.RequirementGroup) bool {
		for _, t := range g {
			if ctx.Active.Has(t) || ctx.Strategies.Has(t) {
				return true
			}
		}
		return false
	})
}

// Discharges reports whether activating t would satisfy at least one open requirement group.
func (c *BuildContext) Discharges(t data.Tag) bool {
	for _, g := range c.Unresolved {
		if g.Contains(t) {
			return true
		}
	}
	return false
}
