package builder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/looplab/fsm"

	"github.com/udisondev/teambuilder/internal/game/combat"
	"github.com/udisondev/teambuilder/internal/game/modifier"
	"github.com/udisondev/teambuilder/internal/model"
)

// Build states, in order.
const (
	StateChoosingAbility    = "choosing_ability"
	StateChoosingMoves      = "choosing_moves"
	StateChoosingModItem    = "choosing_mod_item"
	StateChoosingBattleItem = "choosing_battle_item"
	StateDone               = "done"

	eventAdvance = "advance"
)

// machine drives one creature through the build stages.
type machine struct {
	b        *Builder
	team     modifier.TeamContext
	creature *model.Creature
	rng      *rand.Rand
	fsm      *fsm.FSM
}

func (b *Builder) newMachine(team modifier.TeamContext, c *model.Creature, rng *rand.Rand) *machine {
	m := &machine{b: b, team: team, creature: c, rng: rng}
	m.fsm = fsm.NewFSM(
		StateChoosingAbility,
		fsm.Events{
			{Name: eventAdvance, Src: []string{StateChoosingAbility}, Dst: StateChoosingMoves},
			{Name: eventAdvance, Src: []string{StateChoosingMoves}, Dst: StateChoosingModItem},
			{Name: eventAdvance, Src: []string{StateChoosingModItem}, Dst: StateChoosingBattleItem},
			{Name: eventAdvance, Src: []string{StateChoosingBattleItem}, Dst: StateDone},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("build stage",
					"creature", c.Species.Name,
					"slot", c.Slot,
					"from", e.Src,
					"to", e.Dst)
			},
		},
	)
	return m
}

// run executes every stage and returns the creature's final context.
// The moves stage repeats until the move list is full or no legal move is left.
func (m *machine) run(ctx context.Context) (*modifier.BuildContext, error) {
	for !m.fsm.Is(StateDone) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		again, err := m.enter(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.fsm.Current(), err)
		}
		if again {
			continue
		}
		if err := m.fsm.Event(ctx, eventAdvance); err != nil {
			return nil, fmt.Errorf("advancing from %s: %w", m.fsm.Current(), err)
		}
	}

	final, err := m.rebuild()
	if err != nil {
		return nil, err
	}
	m.creature.Offense, m.creature.Defense, m.creature.Speed = final.Offense, final.Defense, final.Speed
	return final, nil
}

// rebuild recomputes the context of the partial build and evaluates its fitness.
func (m *machine) rebuild() (*modifier.BuildContext, error) {
	c := m.creature
	bc, err := modifier.Rebuild(m.b.rules, m.team, c)
	if err != nil {
		return nil, err
	}
	combat.Evaluate(m.b.rules, bc, m.team, c.Species, c.Moves)
	return bc, nil
}
