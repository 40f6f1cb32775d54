package legality

import (
	"log/slog"

	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/game/modifier"
	"github.com/udisondev/teambuilder/internal/model"
)

// Build is the partial build a stage enumerates candidates for.
type Build struct {
	Rules    *data.Ruleset
	Team     modifier.TeamContext
	Creature *model.Creature
	Filter   *Filter
}

func (b Build) env(stage, name string) CandidateEnv {
	c := b.Creature
	env := CandidateEnv{
		Stage:    stage,
		Name:     name,
		Species:  c.Species.Name,
		Slot:     c.Slot,
		TeamSize: b.Team.Format.TeamSize,
		Doubles:  b.Team.Format.Doubles,
		Ability:  c.AbilityName(),
		Moves:    c.MoveNames(),
	}
	for _, t := range c.Species.Types {
		if t != data.TypeNone {
			env.Types = append(env.Types, t.String())
		}
	}
	for _, s := range b.Team.Strategies.Sorted() {
		env.Strategies = append(env.Strategies, s.Name)
	}
	return env
}

func (b Build) allowed(env CandidateEnv) (bool, error) {
	rule, banned, err := b.Filter.Banned(env)
	if err != nil {
		return false, err
	}
	if banned {
		slog.Debug("candidate banned", "stage", env.Stage, "candidate", env.Name, "rule", rule)
		return false, nil
	}
	return true, nil
}

// Abilities returns the species' abilities present in the catalog and not banned.
func Abilities(b Build) ([]*data.Ability, error) {
	var out []*data.Ability
	for _, name := range b.Creature.Species.Abilities {
		a := b.Rules.Catalog.Ability(name)
		if a == nil {
			slog.Debug("ability not in catalog", "species", b.Creature.Species.Name, "ability", name)
			continue
		}
		env := b.env(StageAbility, a.Name)
		env.Flags = tagNames(a.Flags)
		ok, err := b.allowed(env)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// Moves returns learnable moves present in the catalog that are not already
// chosen and not banned.
func Moves(b Build) ([]*data.Move, error) {
	var out []*data.Move
	seen := make(map[string]struct{})
	for _, name := range b.Creature.Species.Learnset {
		m := b.Rules.Catalog.Move(name)
		if m == nil {
			continue
		}
		if _, dup := seen[m.Name]; dup || b.Creature.HasMove(m.Name) {
			continue
		}
		seen[m.Name] = struct{}{}

		env := b.env(StageMove, m.Name)
		env.Category = m.Category.String()
		env.MoveType = m.Type.String()
		env.BasePower = m.BasePower
		for f := range m.Flags {
			env.Flags = append(env.Flags, string(f))
		}
		ok, err := b.allowed(env)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// Items returns the catalog items of kind that are not banned.
func Items(b Build, kind data.ItemKind) ([]*data.Item, error) {
	stage := StageBattleItem
	if kind == data.ItemMod {
		stage = StageModItem
	}
	var out []*data.Item
	for _, it := range b.Rules.Catalog.ItemsOfKind(kind) {
		env := b.env(stage, it.Name)
		env.Category = kind.String()
		env.Flags = tagNames(it.Flags)
		ok, err := b.allowed(env)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func tagNames(tags []data.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Name
	}
	return out
}
