package combat

import (
	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/game/modifier"
)

const forcedSEMultiplier = 2

// OffensiveTypeCoverage returns one effectiveness multiplier per defender pair.
// The two sub-type lookups are multiplied, TypeNone counting as neutral.
// A sub-type equal to forcedSE counts as super effective. ignoresImmunity turns
// an exact 0 into 1; doublesResisted doubles a combined multiplier below 1.
func OffensiveTypeCoverage(chart *data.TypeChart, attack data.Type, defenders []data.TypePair,
	ignoresImmunity, doublesResisted bool, forcedSE data.Type) []float64 {
	out := make([]float64, len(defenders))
	for i, pair := range defenders {
		mult := 1.0
		for _, sub := range pair {
			if forcedSE != data.TypeNone && sub == forcedSE {
				mult *= forcedSEMultiplier
				continue
			}
			mult *= chart.Multiplier(attack, sub)
		}
		if ignoresImmunity && mult == 0 {
			mult = 1
		}
		if doublesResisted && mult < 1 {
			mult *= 2
		}
		out[i] = mult
	}
	return out
}

// DefensiveStabCoverage averages the STAB-weighted multiplier of every attacking
// sub-type against defender, after received-damage adjustments.
//
// Super-effective hits take the halve-SE override and the SE factor; others take
// the non-SE factor. Nullify, halve and double then apply in that order.
// Returns the neutral STAB multiplier when attackers is empty.
func DefensiveStabCoverage(chart *data.TypeChart, defender data.TypePair, attackers []data.TypePair,
	adj modifier.ReceivedAdjustments) float64 {
	var sum float64
	var n int
	for _, pair := range attackers {
		for _, t := range pair {
			if t == data.TypeNone {
				continue
			}
			eff := chart.Effectiveness(t, defender)
			mult := stabBonus * eff
			if eff > 1 {
				if adj.HalveSE[t] {
					mult *= 0.5
				}
				mult *= adj.SEFactor
			} else {
				mult *= adj.NonSEFactor
			}

			if adj.Nullify[t] {
				mult = 0
			}
			if adj.Halve[t] {
				mult *= 0.5
			}
			if adj.Double[t] {
				mult *= 2
			}
			sum += mult
			n++
		}
	}
	if n == 0 {
		return stabBonus
	}
	return sum / float64(n)
}
