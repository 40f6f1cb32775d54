package scoring

import (
	"fmt"

	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/model"
)

// ScoreAbility returns the selection weight of equipping a, floored at epsilon.
//
// Doubles-only abilities in singles are floored, as are abilities without the
// matching flag on the first or last roster slot. Otherwise the
// weight of the ability tag and its flags is multiplied by the improvement
// ratios of a hypothetical re-equip. If the ability declares utility flags and
// none of them improves its fitness score by the threshold, the score drops to
// zero before the ratios are applied. Heal abilities also scale by defense.
func ScoreAbility(in Input, a *data.Ability) (float64, error) {
	if forcedFloor(in, a) {
		return in.Config.Epsilon, nil
	}

	score := tagWeight(in.Rules, in.Current, a.Tag(), a.Flags)

	post, err := reequip(in, func(c *model.Creature) { c.Ability = a })
	if err != nil {
		return 0, fmt.Errorf("scoring ability %s: %w", a.Name, err)
	}
	imp := improvement(in.Current, post)

	// Without a battle context every ratio is 1 and no flag could pass the gate.
	if in.Team.HasBattleContext() && !utilityGate(a, imp, in.Config.ImprovementThreshold) {
		score = 0
	}
	score *= imp.Product()

	if a.HasFlag(data.FlagHeal) {
		score *= post.Defense
	}
	return in.floor(score), nil
}

func forcedFloor(in Input, a *data.Ability) bool {
	format := in.Team.Format
	if a.HasFlag(data.FlagDoublesOnly) && !format.Doubles {
		return true
	}
	slot := in.Creature.Slot
	if slot == 0 && !a.HasFlag(data.FlagGoodFirstSlot) {
		return true
	}
	if slot == format.TeamSize-1 && !a.HasFlag(data.FlagGoodLastSlot) {
		return true
	}
	return false
}

// utilityGate passes when the ability declares no utility flag or at least one
// declared flag improved by threshold.
func utilityGate(a *data.Ability, imp Improvement, threshold float64) bool {
	checks := []struct {
		flag  data.Tag
		ratio float64
	}{
		{data.FlagOffensive, imp.Offense},
		{data.FlagDefensive, imp.Defense},
		{data.FlagSpeed, imp.Speed},
	}

	declared := false
	for _, c := range checks {
		if !a.HasFlag(c.flag) {
			continue
		}
		declared = true
		if c.ratio >= 1+threshold {
			return true
		}
	}
	return !declared
}
