package combat

import (
	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/game/modifier"
)

// Level-100 stat formula constants.
// stat = base*2 + ivTerm + floor(ev/4) + (HP ? hpTerm : otherTerm)
const (
	ivTerm    = 31
	hpTerm    = 105
	otherTerm = 5
)

// Side is one combatant's final stats with their variances.
// Own stats are deterministic and carry zero variance; the opponent side is
// derived from the population profile.
type Side struct {
	Stats    data.StatArray
	Variance data.StatArray
	Weight   float64
}

// ComputeStats returns the final stats of the built creature, or of the
// average opponent when opponent is true.
//
// Per stat: base*2 + 31 + floor(ev/4) + (105 for HP, 5 otherwise), times the
// stat multiplier. The opponent's base is the profile mean, its variance
// 4·var(base)·mult². The highest-stat boost slot lands on the highest non-HP
// stat, ordinary boosts are added, the sum is clamped to [-6, 6] and converted
// with (2+max(b,0))/(2+max(-b,0)).
//
// Returns a zero Side when opponent is requested without a profile.
func ComputeStats(ctx *modifier.BuildContext, team modifier.TeamContext, sp *data.Species, opponent bool) Side {
	var s Side
	var boosts [data.BoostSlots]int

	switch {
	case opponent:
		if team.Opponent == nil {
			return Side{}
		}
		p := team.Opponent
		for i := range data.StatCount {
			mult := ctx.OpponentMultipliers[i]
			s.Stats[i] = (p.BaseMean[i]*2 + ivTerm + flatTerm(data.Stat(i))) * mult
			s.Variance[i] = 4 * p.BaseVariance[i] * mult * mult
		}
		s.Weight = p.Weight
		boosts = ctx.OpponentBoosts
	default:
		for i := range data.StatCount {
			st := data.Stat(i)
			mult := ctx.Multipliers[i] * ctx.Nature.Multiplier(st)
			base := float64(sp.BaseStats[i]*2 + ivTerm + ctx.EVs[i]/4)
			s.Stats[i] = (base + flatTerm(st)) * mult
		}
		s.Weight = ctx.EffectiveWeightKg()
		boosts = ctx.Boosts
	}

	highest := HighestStat(s.Stats)
	for i := data.StatAtk; i < data.StatCount; i++ {
		b := boosts[i]
		if i == highest {
			b += boosts[data.BoostHighest]
		}
		m := BoostMultiplier(data.ClampBoost(b))
		s.Stats[i] *= m
		s.Variance[i] *= m * m
	}
	return s
}

func flatTerm(st data.Stat) float64 {
	if st == data.StatHP {
		return hpTerm
	}
	return otherTerm
}

// HighestStat returns the highest non-HP stat; ties go to the lower index.
func HighestStat(stats data.StatArray) data.Stat {
	best := data.StatAtk
	for i := data.StatDef; i < data.StatCount; i++ {
		if stats[i] > stats[best] {
			best = i
		}
	}
	return best
}

// BoostMultiplier converts a boost stage to a stat multiplier.
func BoostMultiplier(b int) float64 {
	return float64(2+max(b, 0)) / float64(2+max(-b, 0))
}
