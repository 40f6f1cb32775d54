package builder

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/game/legality"
	"github.com/udisondev/teambuilder/internal/game/scoring"
	"github.com/udisondev/teambuilder/internal/game/selection"
)

// enter runs the current stage: rebuild, filter, score, select, commit.
// It reports whether the same stage should run again.
func (m *machine) enter(ctx context.Context) (bool, error) {
	cur, err := m.rebuild()
	if err != nil {
		return false, err
	}
	in := scoring.Input{
		Rules:    m.b.rules,
		Team:     m.team,
		Creature: m.creature,
		Current:  cur,
		Config:   m.b.cfg.Scoring,
	}
	lb := legality.Build{
		Rules:    m.b.rules,
		Team:     m.team,
		Creature: m.creature,
		Filter:   m.b.filter,
	}

	c := m.creature
	switch state := m.fsm.Current(); state {
	case StateChoosingAbility:
		candidates, err := legality.Abilities(lb)
		if err != nil {
			return false, err
		}
		a, ok, err := choose(ctx, m, state, candidates, func(a *data.Ability) (float64, error) {
			return scoring.ScoreAbility(in, a)
		})
		if err != nil || !ok {
			return false, err
		}
		c.Ability = a
		m.committed(state, a.Name)
		return false, nil

	case StateChoosingMoves:
		if len(c.Moves) >= m.b.cfg.MaxMoves {
			return false, nil
		}
		candidates, err := legality.Moves(lb)
		if err != nil {
			return false, err
		}
		mv, ok, err := choose(ctx, m, state, candidates, func(mv *data.Move) (float64, error) {
			return scoring.ScoreMove(in, mv)
		})
		if err != nil {
			return false, err
		}
		if !ok {
			if len(c.Moves) == 0 {
				return false, fmt.Errorf("%w: no legal move for %s", ErrNoCandidates, c.Species.Name)
			}
			return false, nil
		}
		c.Moves = append(c.Moves, mv)
		m.committed(state, mv.Name)
		return len(c.Moves) < m.b.cfg.MaxMoves, nil

	case StateChoosingModItem, StateChoosingBattleItem:
		kind := data.ItemBattle
		if state == StateChoosingModItem {
			kind = data.ItemMod
		}
		candidates, err := legality.Items(lb, kind)
		if err != nil {
			return false, err
		}
		it, ok, err := choose(ctx, m, state, candidates, func(it *data.Item) (float64, error) {
			return scoring.ScoreItem(in, it)
		})
		if err != nil || !ok {
			return false, err
		}
		if kind == data.ItemMod {
			c.ModItem = it
		} else {
			c.BattleItem = it
		}
		m.committed(state, it.Name)
		return false, nil
	}
	return false, fmt.Errorf("unexpected state %q", m.fsm.Current())
}

func (m *machine) committed(stage, choice string) {
	slog.Debug("committed choice",
		"creature", m.creature.Species.Name,
		"slot", m.creature.Slot,
		"stage", stage,
		"choice", choice)
}

// choose scores every candidate and picks one. It reports false when there is
// nothing to choose from.
func choose[T any](ctx context.Context, m *machine, stage string, cands []T, score func(T) (float64, error)) (T, bool, error) {
	var zero T
	if len(cands) == 0 {
		slog.Debug("no candidates", "creature", m.creature.Species.Name, "stage", stage)
		return zero, false, nil
	}

	weights, err := scoreAll(ctx, m.b.cfg.Workers, cands, score)
	if err != nil {
		return zero, false, err
	}
	idx, err := selection.PickWeighted(weights, m.rng, m.b.cfg.Power)
	if err != nil {
		return zero, false, fmt.Errorf("%s: %w", stage, err)
	}
	return cands[idx], true, nil
}

// scoreAll scores candidates concurrently. Every score call works on its own
// clone of the build, so results only depend on the candidate.
func scoreAll[T any](ctx context.Context, workers int, cands []T, score func(T) (float64, error)) ([]float64, error) {
	out := make([]float64, len(cands))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, cand := range cands {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := score(cand)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
