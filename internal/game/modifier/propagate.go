package modifier

import (
	"errors"
	"fmt"

	"github.com/udisondev/teambuilder/internal/data"
)

var (
	// ErrUnknownModifier marks a modifier kind the engine cannot apply.
	// Validated data never produces one, so it is treated as fatal.
	ErrUnknownModifier = errors.New("unknown modifier kind")
	// ErrMalformedModifier marks a modifier whose operand is out of range for its kind.
	ErrMalformedModifier = errors.New("malformed modifier")
)

// Propagate folds every rule contributed by tag into ctx, in a fixed order:
// enablement, forced requirements, stat modifiers, move modifiers, weight modifiers.
// A tag without rules leaves ctx untouched.
func Propagate(rules *data.Ruleset, tag data.Tag, ctx *BuildContext) error {
	for _, e := range rules.Enables[tag] {
		if e.Target.Category == data.CategoryStrategy {
			ctx.Strategies.Add(e.Target)
			continue
		}
		multiplyWeight(ctx, e.Target, e.Multiplier)
	}

	for _, g := range rules.Forces[tag] {
		ctx.Unresolved = append(ctx.Unresolved, append(data.RequirementGroup(nil), g...))
	}

	for _, m := range rules.StatMods[tag] {
		if err := applyStatMod(ctx, m); err != nil {
			return fmt.Errorf("propagating %s: %w", tag, err)
		}
	}

	for _, m := range rules.MoveMods[tag] {
		if err := applyMoveMod(ctx, m); err != nil {
			return fmt.Errorf("propagating %s: %w", tag, err)
		}
	}

	for _, w := range rules.WeightMods[tag] {
		multiplyWeight(ctx, w.Target, w.Multiplier)
	}
	return nil
}

// Activate propagates tag once; repeated activations of the same tag are no-ops.
// It reports whether the tag was newly activated.
func Activate(rules *data.Ruleset, tag data.Tag, ctx *BuildContext) (bool, error) {
	if ctx.Active.Has(tag) {
		return false, nil
	}
	ctx.Active.Add(tag)
	if err := Propagate(rules, tag, ctx); err != nil {
		return true, err
	}
	return true, nil
}

func multiplyWeight(ctx *BuildContext, t data.Tag, mult float64) {
	w, ok := ctx.EnabledWeight[t]
	if !ok {
		w = 1
	}
	ctx.EnabledWeight[t] = w * mult
}

func applyStatMod(ctx *BuildContext, m data.StatMod) error {
	switch m.Kind {
	case data.StatModMultiplier:
		if int(m.Stat) >= data.StatCount {
			return fmt.Errorf("%w: multiplier on %s", ErrMalformedModifier, m.Stat)
		}
		ctx.Multipliers[m.Stat] *= m.Value
	case data.StatModOpponentMultiplier:
		if int(m.Stat) >= data.StatCount {
			return fmt.Errorf("%w: opponent multiplier on %s", ErrMalformedModifier, m.Stat)
		}
		ctx.OpponentMultipliers[m.Stat] *= m.Value
	case data.StatModPhysicalAccuracy:
		ctx.PhysicalAccuracy *= m.Value
	case data.StatModSpecialAccuracy:
		ctx.SpecialAccuracy *= m.Value
	case data.StatModBoost:
		if int(m.Stat) >= data.BoostSlots {
			return fmt.Errorf("%w: boost on %s", ErrMalformedModifier, m.Stat)
		}
		ctx.Boosts[m.Stat] = data.ClampBoost(ctx.Boosts[m.Stat] + int(m.Value))
	case data.StatModOpponentBoost:
		if int(m.Stat) >= data.BoostSlots {
			return fmt.Errorf("%w: opponent boost on %s", ErrMalformedModifier, m.Stat)
		}
		ctx.OpponentBoosts[m.Stat] = data.ClampBoost(ctx.OpponentBoosts[m.Stat] + int(m.Value))
	case data.StatModEV:
		if int(m.Stat) >= data.StatCount {
			return fmt.Errorf("%w: ev on %s", ErrMalformedModifier, m.Stat)
		}
		ctx.EVs[m.Stat] = min(max(ctx.EVs[m.Stat]+int(m.Value), 0), data.MaxEV)
	case data.StatModNature:
		ctx.Nature = m.Nature
	case data.StatModType1:
		ctx.Types[0] = m.Type
	case data.StatModType2:
		ctx.Types[1] = m.Type
	case data.StatModTeraType:
		ctx.Tera = m.Type
	case data.StatModCritStage:
		ctx.CritStage += int(m.Value)
	case data.StatModWeight:
		ctx.WeightMultiplier *= m.Value
	case data.StatModNullifyType:
		ctx.Received.Nullify[m.Type] = true
	case data.StatModHalveType:
		ctx.Received.Halve[m.Type] = true
	case data.StatModDoubleType:
		ctx.Received.Double[m.Type] = true
	case data.StatModHalveSEType:
		ctx.Received.HalveSE[m.Type] = true
	case data.StatModSEFactor:
		ctx.Received.SEFactor *= m.Value
	case data.StatModNonSEFactor:
		ctx.Received.NonSEFactor *= m.Value
	default:
		return fmt.Errorf("%w: stat modifier %d", ErrUnknownModifier, m.Kind)
	}
	return nil
}

func applyMoveMod(ctx *BuildContext, m data.MoveMod) error {
	switch m.Kind {
	case data.MoveModPower:
		ctx.MovePower[m.Target] = factor(ctx.MovePower, m.Target) * m.Value
	case data.MoveModAccuracy:
		ctx.MoveAccuracy[m.Target] = factor(ctx.MoveAccuracy, m.Target) * m.Value
	case data.MoveModType:
		ctx.MoveType[m.Target] = m.Type
	case data.MoveModAddFlag:
		flagSet(ctx.AddedFlags, m.Target)[m.Flag] = struct{}{}
	case data.MoveModRemoveFlag:
		flagSet(ctx.RemovedFlags, m.Target)[m.Flag] = struct{}{}
	default:
		return fmt.Errorf("%w: move modifier %d", ErrUnknownModifier, m.Kind)
	}
	return nil
}

func factor(table map[data.Tag]float64, t data.Tag) float64 {
	if v, ok := table[t]; ok {
		return v
	}
	return 1
}

func flagSet(table map[data.Tag]data.FlagSet, t data.Tag) data.FlagSet {
	s, ok := table[t]
	if !ok {
		s = data.NewFlagSet()
		table[t] = s
	}
	return s
}
