package combat

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/game/modifier"
)

// referencePower is the base power of the generic hit used for the defense score.
const referencePower = 80

// Fitness is the normalized offense/defense/speed of a build against the opponent profile.
type Fitness struct {
	Offense float64
	Defense float64
	Speed   float64
}

// Neutral is the fitness reported without a battle context.
var Neutral = Fitness{Offense: 1, Defense: 1, Speed: 1}

// Evaluate computes the fitness of a build and stores it on ctx.
//
//	offense = P(opponent HP <= avg damage · best-case coverage)
//	defense = P(incoming 80-BP hit <= own HP)
//	speed   = P(opponent speed <= own speed), inverted under Trick Room
//
// Without an opponent profile all three stay at 1.
func Evaluate(rules *data.Ruleset, ctx *modifier.BuildContext, team modifier.TeamContext,
	sp *data.Species, moves []*data.Move) Fitness {
	if team.Opponent == nil {
		ctx.Offense, ctx.Defense, ctx.Speed = 1, 1, 1
		return Neutral
	}

	own := ComputeStats(ctx, team, sp, false)
	opp := ComputeStats(ctx, team, sp, true)

	f := Fitness{
		Offense: offense(rules, ctx, team.Opponent, moves, own, opp),
		Defense: defense(rules, ctx, team.Opponent, own, opp),
		Speed:   normalCDF(opp.Stats[data.StatSpe], opp.Variance[data.StatSpe], own.Stats[data.StatSpe]),
	}
	if ctx.HasStrategy(data.TagTrickRoom) {
		f.Speed = 1 - f.Speed
	}
	ctx.Offense, ctx.Defense, ctx.Speed = f.Offense, f.Defense, f.Speed
	return f
}

func offense(rules *data.Ruleset, ctx *modifier.BuildContext, p *data.OpponentProfile,
	moves []*data.Move, own, opp Side) float64 {
	var total float64
	var n int
	best := make([]float64, len(p.Types))
	for _, m := range moves {
		if !m.Damaging() {
			continue
		}
		total += MoveDamage(ctx, m, own, opp).Mean
		n++

		flags := ctx.Flags(m)
		cov := OffensiveTypeCoverage(rules.TypeChart, modifier.ResolveMoveType(ctx, m), p.Types,
			flags.Has(data.FlagIgnoresImmunity), flags.Has(data.FlagDoublesResisted), flags.ForcedSE())
		for i, c := range cov {
			best[i] = max(best[i], c)
		}
	}
	if n == 0 {
		return 0
	}

	coverage := 1.0
	if len(best) > 0 {
		coverage = 0
		for _, c := range best {
			coverage += c
		}
		coverage /= float64(len(best))
	}

	dmg := total / float64(n) * coverage
	return normalCDF(opp.Stats[data.StatHP], opp.Variance[data.StatHP], dmg)
}

func defense(rules *data.Ruleset, ctx *modifier.BuildContext, p *data.OpponentProfile, own, opp Side) float64 {
	physical := referenceHit(opp.Stats[data.StatAtk], opp.Variance[data.StatAtk], own.Stats[data.StatDef])
	special := referenceHit(opp.Stats[data.StatSpA], opp.Variance[data.StatSpA], own.Stats[data.StatSpD])

	stab := DefensiveStabCoverage(rules.TypeChart, ctx.DisplayTypes(), p.Types, ctx.Received)
	hit := Estimate{
		Mean:     (physical.Mean + special.Mean) / 2,
		Variance: (physical.Variance + special.Variance) / 4,
	}.scale(stab)

	return normalCDF(hit.Mean, hit.Variance, own.Stats[data.StatHP])
}

// referenceHit is an 80-BP hit with the average roll and no other multipliers.
func referenceHit(atk, atkVar, def float64) Estimate {
	if def <= 0 {
		return Estimate{}
	}
	d := 42 * referencePower / (def * 50)
	return Estimate{
		Mean:     42*atk*(referencePower/(def*50)) + 2,
		Variance: d * d * atkVar,
	}.scale(avgRoll)
}

// normalCDF returns P(X <= x) for X ~ N(mean, variance).
// Zero variance degenerates to a step at the mean.
func normalCDF(mean, variance, x float64) float64 {
	if variance <= 0 {
		if x >= mean {
			return 1
		}
		return 0
	}
	return distuv.Normal{Mu: mean, Sigma: math.Sqrt(variance)}.CDF(x)
}
