package combat

import (
	"math"
	"strings"

	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/game/modifier"
)

const (
	defaultBasePower = 60
	avgRoll          = 1.85 // mean of the 0.85..1.00 damage roll times the level-100 factor
	stabBonus        = 1.5
	teraStabBonus    = 2.0
	critDamage       = 0.5 // extra damage on a critical hit

	skyDropName        = "Sky Drop"
	skyDropWeightLimit = 200 // kg
)

// critChance by crit stage; stage 3 and above always crits.
var critChance = [...]float64{1.0 / 24, 1.0 / 8, 1.0 / 2, 1}

// Estimate is the mean and variance of a damage quantity.
type Estimate struct {
	Mean     float64
	Variance float64
}

func (e Estimate) scale(s float64) Estimate {
	return Estimate{Mean: e.Mean * s, Variance: e.Variance * s * s}
}

// MoveDamage estimates the damage of m from attacker against defender.
//
//	dmg = ((42·atk)·(bp/(def·50)) + 2) · crit · stab · 1.85 · hits
//
// Variance starts from the first-order contribution of the attacking and
// defending stat variances and is scaled by the square of every multiplier
// after that. Status moves, Sky Drop against a target of 200 kg or more and
// an empty stat line deal nothing. Fixed-damage moves return the declared value
// with zero variance.
func MoveDamage(ctx *modifier.BuildContext, m *data.Move, attacker, defender Side) Estimate {
	if !m.Damaging() {
		return Estimate{}
	}
	flags := ctx.Flags(m)
	if flags.Has(data.FlagFixedDamage) {
		return Estimate{Mean: float64(m.FixedDamage)}
	}
	if strings.EqualFold(m.Name, skyDropName) && defender.Weight >= skyDropWeightLimit {
		return Estimate{}
	}

	moveType := modifier.ResolveMoveType(ctx, m)
	keys := modifier.MoveKeys(m, moveType)

	bp := float64(BasePower(m, attacker, defender)) * ctx.PowerFactor(keys)
	acc := accuracy(ctx, m, keys)

	atk, atkVar := attackingStat(m, flags, attacker, defender)
	def, defVar := defendingStat(m, flags, defender)
	if def <= 0 {
		return Estimate{}
	}

	// Partial derivatives of the core term with respect to atk and def.
	dAtk := 42 * bp / (def * 50)
	dDef := -42 * atk * bp / (def * def * 50)
	est := Estimate{
		Mean:     42*atk*(bp/(def*50)) + 2,
		Variance: dAtk*dAtk*atkVar + dDef*dDef*defVar,
	}

	est = est.scale(critMultiplier(ctx, flags))
	est = est.scale(stabMultiplier(ctx, moveType))
	est = est.scale(avgRoll)

	hits, gated := expectedHits(flags, acc)
	est = est.scale(hits)
	if !gated {
		est = est.scale(acc)
	}

	est.Variance = max(est.Variance, 0)
	return est
}

// BasePower returns the move's base power after variable-power ladders.
// Zero base power defaults to 60.
func BasePower(m *data.Move, attacker, defender Side) int {
	switch m.Power {
	case data.PowerWeightRatio:
		return weightRatioPower(attacker.Weight, defender.Weight)
	case data.PowerTargetWeight:
		return targetWeightPower(defender.Weight)
	case data.PowerSpeedRatio:
		return speedRatioPower(attacker.Stats[data.StatSpe], defender.Stats[data.StatSpe])
	case data.PowerInverseSpeed:
		return inverseSpeedPower(attacker.Stats[data.StatSpe], defender.Stats[data.StatSpe])
	}
	if m.BasePower == 0 {
		return defaultBasePower
	}
	return m.BasePower
}

func weightRatioPower(user, target float64) int {
	if target <= 0 {
		return 120
	}
	r := user / target
	switch {
	case r >= 5:
		return 120
	case r >= 4:
		return 100
	case r >= 3:
		return 80
	case r >= 2:
		return 60
	}
	return 40
}

func targetWeightPower(target float64) int {
	switch {
	case target >= 200:
		return 120
	case target >= 100:
		return 100
	case target >= 50:
		return 80
	case target >= 25:
		return 60
	case target >= 10:
		return 40
	}
	return 20
}

func speedRatioPower(user, target float64) int {
	if target <= 0 {
		return 150
	}
	r := user / target
	switch {
	case r >= 4:
		return 150
	case r >= 3:
		return 120
	case r >= 2:
		return 80
	case r >= 1:
		return 60
	}
	return 40
}

func inverseSpeedPower(user, target float64) int {
	if user <= 0 {
		return 150
	}
	return min(150, int(math.Floor(25*target/user))+1)
}

// accuracy is the hit chance clamped to [0, 1]. Moves that never miss start at 1.
func accuracy(ctx *modifier.BuildContext, m *data.Move, keys []data.Tag) float64 {
	acc := m.Accuracy
	if acc <= 0 {
		acc = 1
	}
	acc *= ctx.AccuracyFactor(keys)
	switch m.Category {
	case data.CategoryPhysical:
		acc *= ctx.PhysicalAccuracy
	case data.CategorySpecial:
		acc *= ctx.SpecialAccuracy
	}
	return min(max(acc, 0), 1)
}

// attackingStat picks the target's attack, then the user's defense, then the
// category's attacking stat.
func attackingStat(m *data.Move, flags data.FlagSet, attacker, defender Side) (float64, float64) {
	switch {
	case flags.Has(data.FlagUseTargetAttack):
		st := offensiveStat(m.Category)
		return defender.Stats[st], defender.Variance[st]
	case flags.Has(data.FlagUseOwnDefense):
		return attacker.Stats[data.StatDef], attacker.Variance[data.StatDef]
	}
	st := offensiveStat(m.Category)
	return attacker.Stats[st], attacker.Variance[st]
}

func defendingStat(m *data.Move, flags data.FlagSet, defender Side) (float64, float64) {
	physical := m.Category == data.CategoryPhysical
	if flags.Has(data.FlagSwapDefense) {
		physical = !physical
	}
	st := data.StatSpD
	if physical {
		st = data.StatDef
	}
	return defender.Stats[st], defender.Variance[st]
}

func offensiveStat(c data.MoveCategory) data.Stat {
	if c == data.CategorySpecial {
		return data.StatSpA
	}
	return data.StatAtk
}

func critMultiplier(ctx *modifier.BuildContext, flags data.FlagSet) float64 {
	stage := ctx.CritStage
	if flags.Has(data.FlagAlwaysCrits) {
		stage = len(critChance) - 1
	}
	stage = min(max(stage, 0), len(critChance)-1)
	return 1 + critDamage*critChance[stage]
}

// stabMultiplier is 1.5 when the move shares a type with the user, 2 when the
// tera type matches both the move and one of the original types.
func stabMultiplier(ctx *modifier.BuildContext, moveType data.Type) float64 {
	if moveType == data.TypeNone {
		return 1
	}
	if ctx.Tera != data.TypeNone && moveType == ctx.Tera {
		if ctx.Types.Has(ctx.Tera) {
			return teraStabBonus
		}
		return stabBonus
	}
	if ctx.Types.Has(moveType) {
		return stabBonus
	}
	return 1
}

// expectedHits returns the expected hit multiplier and whether accuracy is
// already folded into it.
func expectedHits(flags data.FlagSet, acc float64) (float64, bool) {
	maxHits := flags.Has(data.FlagMaxHits)
	switch {
	case flags.Has(data.FlagMultihit2):
		return 2, false
	case flags.Has(data.FlagMultihit3):
		return 3, false
	case flags.Has(data.FlagMultihit2to5):
		if maxHits {
			return 4.5, false
		}
		return 3.1, false
	case flags.Has(data.FlagGatedMultihit3):
		if maxHits {
			return 6, true
		}
		return GatedTripleHits(acc), true
	case flags.Has(data.FlagGatedMultihit10):
		if maxHits {
			return 7, true
		}
		return GatedTenHits(acc), true
	}
	return 1, false
}

// GatedTripleHits is the expected power multiple of a three-hit move whose hits
// escalate and stop at the first miss: p + 2p² + 3p³.
func GatedTripleHits(p float64) float64 {
	return p + 2*p*p + 3*p*p*p
}

// GatedTenHits is the expected hit count of a ten-hit move that stops at the
// first miss: Σ_{k=1..9} k·pᵏ·(1−p) + 10·p¹⁰.
func GatedTenHits(p float64) float64 {
	var e float64
	pk := 1.0
	for k := 1; k <= 9; k++ {
		pk *= p
		e += float64(k) * pk * (1 - p)
	}
	return e + 10*pk*p
}
