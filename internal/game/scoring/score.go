// Package scoring turns a candidate choice into a positive selection weight.
package scoring

import (
	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/game/combat"
	"github.com/udisondev/teambuilder/internal/game/modifier"
	"github.com/udisondev/teambuilder/internal/model"
)

// minFitness keeps improvement ratios finite when a pre-equip score is (near) zero.
const minFitness = 1e-3

// Config holds the scoring knobs.
type Config struct {
	Epsilon              float64 // floor of every score
	ImprovementThreshold float64 // relative gain a declared utility flag must deliver
	RequirementBonus     float64 // multiplier for candidates that discharge an open requirement
}

// DefaultConfig returns the stock scoring knobs.
func DefaultConfig() Config {
	return Config{
		Epsilon:              1e-4,
		ImprovementThreshold: 0.10,
		RequirementBonus:     4,
	}
}

// Input is everything a scoring call reads. Nothing in it is mutated.
type Input struct {
	Rules    *data.Ruleset
	Team     modifier.TeamContext
	Creature *model.Creature        // partial build so far
	Current  *modifier.BuildContext // rebuilt context of Creature with fitness already evaluated
	Config   Config
}

// reequip applies equip to a clone of the partial build and evaluates the result
// on a fresh context.
func reequip(in Input, equip func(*model.Creature)) (combat.Fitness, error) {
	c := in.Creature.Clone()
	equip(c)
	ctx, err := modifier.Rebuild(in.Rules, in.Team, c)
	if err != nil {
		return combat.Fitness{}, err
	}
	return combat.Evaluate(in.Rules, ctx, in.Team, c.Species, c.Moves), nil
}

// Improvement is the post/pre ratio of each fitness score.
type Improvement struct {
	Offense float64
	Defense float64
	Speed   float64
}

func improvement(pre *modifier.BuildContext, post combat.Fitness) Improvement {
	return Improvement{
		Offense: ratio(pre.Offense, post.Offense),
		Defense: ratio(pre.Defense, post.Defense),
		Speed:   ratio(pre.Speed, post.Speed),
	}
}

// Product multiplies the three ratios.
func (i Improvement) Product() float64 {
	return i.Offense * i.Defense * i.Speed
}

func ratio(pre, post float64) float64 {
	return max(post, minFitness) / max(pre, minFitness)
}

// tagWeight is the weight product of t and its flags. If positive, the flat
// bonuses of t and every flag are added.
func tagWeight(rules *data.Ruleset, ctx *modifier.BuildContext, t data.Tag, flags []data.Tag) float64 {
	w := ctx.EffectiveWeight(rules, t)
	for _, f := range flags {
		w *= ctx.EffectiveWeight(rules, f)
	}
	if w <= 0 {
		return 0
	}
	w += rules.Flat(t)
	for _, f := range flags {
		w += rules.Flat(f)
	}
	return w
}

func (in Input) floor(score float64) float64 {
	return max(score, in.Config.Epsilon)
}
