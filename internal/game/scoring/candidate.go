package scoring

import (
	"fmt"

	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/model"
)

// ScoreMove returns the selection weight of adding m to the move list.
func ScoreMove(in Input, m *data.Move) (float64, error) {
	score := tagWeight(in.Rules, in.Current, m.Tag(), nil)
	if in.Current.Discharges(m.Tag()) {
		score *= in.Config.RequirementBonus
	}

	post, err := reequip(in, func(c *model.Creature) { c.Moves = append(c.Moves, m) })
	if err != nil {
		return 0, fmt.Errorf("scoring move %s: %w", m.Name, err)
	}
	score *= improvement(in.Current, post).Product()
	return in.floor(score), nil
}

// ScoreItem returns the selection weight of equipping it in its slot.
func ScoreItem(in Input, it *data.Item) (float64, error) {
	score := tagWeight(in.Rules, in.Current, it.Tag(), it.Flags)
	if in.Current.Discharges(it.Tag()) {
		score *= in.Config.RequirementBonus
	}

	post, err := reequip(in, func(c *model.Creature) {
		if it.Kind == data.ItemMod {
			c.ModItem = it
		} else {
			c.BattleItem = it
		}
	})
	if err != nil {
		return 0, fmt.Errorf("scoring item %s: %w", it.Name, err)
	}
	score *= improvement(in.Current, post).Product()
	return in.floor(score), nil
}
