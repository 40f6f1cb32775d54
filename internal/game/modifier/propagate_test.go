package modifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/teambuilder/internal/data"
)

func newTestContext() *BuildContext {
	return NewBuildContext(NewTeamContext(nil, Format{TeamSize: 6}))
}

func TestPropagate_NoRulesLeavesContextUnchanged(t *testing.T) {
	rules := data.NewRuleset()
	ctx := newTestContext()
	ctx.Types = data.TypePair{data.TypeFire, data.TypeFlying}
	ctx.Boosts[data.StatAtk] = 2
	ctx.EnabledWeight[data.AbilityTag("Blaze")] = 3

	before := ctx.Clone()
	require.NoError(t, Propagate(rules, data.AbilityTag("Nothing Special"), ctx))
	assert.Equal(t, before, ctx)
}

func TestPropagate_Enablement(t *testing.T) {
	rules := data.NewRuleset()
	src := data.AbilityTag("Drought")
	sun := data.StrategyTag("Sun")
	solar := data.MoveTag("Solar Beam")
	rules.Enables[src] = []data.Enablement{
		{Target: sun, Multiplier: 1},
		{Target: solar, Multiplier: 3},
		{Target: solar, Multiplier: 2},
	}

	ctx := newTestContext()
	require.NoError(t, Propagate(rules, src, ctx))

	assert.True(t, ctx.HasStrategy(sun))
	assert.NotContains(t, ctx.EnabledWeight, sun, "strategies go to the strategy set only")
	assert.InDelta(t, 6.0, ctx.EnabledWeight[solar], 1e-9)
}

func TestPropagate_ForcedRequirementsAppendVerbatim(t *testing.T) {
	rules := data.NewRuleset()
	src := data.MoveTag("Belly Drum")
	group := data.RequirementGroup{data.ItemTag("Sitrus Berry"), data.AbilityTag("Unburden")}
	rules.Forces[src] = []data.RequirementGroup{group}

	ctx := newTestContext()
	require.NoError(t, Propagate(rules, src, ctx))
	require.NoError(t, Propagate(rules, src, ctx))

	require.Len(t, ctx.Unresolved, 2, "groups are never deduplicated")
	assert.Equal(t, group, ctx.Unresolved[0])
	assert.Equal(t, group, ctx.Unresolved[1])

	ctx.Unresolved[0][0] = data.ItemTag("Changed")
	assert.Equal(t, data.ItemTag("Sitrus Berry"), rules.Forces[src][0][0], "ruleset must not alias context state")
}

func TestPropagate_StatModifiers(t *testing.T) {
	rules := data.NewRuleset()
	src := data.ItemTag("Kitchen Sink")
	adamant, err := data.ParseNature("Adamant")
	require.NoError(t, err)
	rules.StatMods[src] = []data.StatMod{
		{Kind: data.StatModMultiplier, Stat: data.StatAtk, Value: 1.5},
		{Kind: data.StatModOpponentMultiplier, Stat: data.StatSpe, Value: 0.5},
		{Kind: data.StatModPhysicalAccuracy, Value: 1.1},
		{Kind: data.StatModSpecialAccuracy, Value: 0.8},
		{Kind: data.StatModBoost, Stat: data.BoostHighest, Value: 1},
		{Kind: data.StatModOpponentBoost, Stat: data.StatDef, Value: -2},
		{Kind: data.StatModEV, Stat: data.StatSpe, Value: 300},
		{Kind: data.StatModNature, Nature: adamant},
		{Kind: data.StatModType1, Type: data.TypeWater},
		{Kind: data.StatModType2, Type: data.TypeGround},
		{Kind: data.StatModTeraType, Type: data.TypeFairy},
		{Kind: data.StatModCritStage, Value: 2},
		{Kind: data.StatModWeight, Value: 2},
		{Kind: data.StatModNullifyType, Type: data.TypeGround},
		{Kind: data.StatModHalveType, Type: data.TypeFire},
		{Kind: data.StatModDoubleType, Type: data.TypeIce},
		{Kind: data.StatModHalveSEType, Type: data.TypeRock},
		{Kind: data.StatModSEFactor, Value: 0.75},
		{Kind: data.StatModNonSEFactor, Value: 0.5},
	}

	ctx := newTestContext()
	require.NoError(t, Propagate(rules, src, ctx))

	assert.InDelta(t, 1.5, ctx.Multipliers[data.StatAtk], 1e-9)
	assert.InDelta(t, 0.5, ctx.OpponentMultipliers[data.StatSpe], 1e-9)
	assert.InDelta(t, 1.1, ctx.PhysicalAccuracy, 1e-9)
	assert.InDelta(t, 0.8, ctx.SpecialAccuracy, 1e-9)
	assert.Equal(t, 1, ctx.Boosts[data.BoostHighest])
	assert.Equal(t, -2, ctx.OpponentBoosts[data.StatDef])
	assert.Equal(t, data.MaxEV, ctx.EVs[data.StatSpe], "EVs are capped")
	assert.Equal(t, adamant, ctx.Nature)
	assert.Equal(t, data.TypePair{data.TypeWater, data.TypeGround}, ctx.Types)
	assert.Equal(t, data.TypeFairy, ctx.Tera)
	assert.Equal(t, 2, ctx.CritStage)
	assert.InDelta(t, 2.0, ctx.WeightMultiplier, 1e-9)
	assert.True(t, ctx.Received.Nullify[data.TypeGround])
	assert.True(t, ctx.Received.Halve[data.TypeFire])
	assert.True(t, ctx.Received.Double[data.TypeIce])
	assert.True(t, ctx.Received.HalveSE[data.TypeRock])
	assert.InDelta(t, 0.75, ctx.Received.SEFactor, 1e-9)
	assert.InDelta(t, 0.5, ctx.Received.NonSEFactor, 1e-9)
}

func TestPropagate_BoostClamp(t *testing.T) {
	boost := func(delta float64) data.StatMod {
		return data.StatMod{Kind: data.StatModBoost, Stat: data.StatAtk, Value: delta}
	}

	tests := []struct {
		name     string
		prior    int
		d1, d2   int
		combined int // clamp(prior+d1+d2)
		stepwise int // clamp(clamp(prior+d1)+d2)
	}{
		{name: "within range", prior: 0, d1: 2, d2: 2, combined: 4, stepwise: 4},
		{name: "saturates high", prior: 4, d1: 2, d2: 2, combined: 6, stepwise: 6},
		{name: "saturates low", prior: -5, d1: -3, d2: -1, combined: -6, stepwise: -6},
		// Non-associative: the intermediate clamp discards part of d1 before d2 lands.
		{name: "intermediate clamp truncates", prior: 5, d1: 4, d2: -4, combined: 5, stepwise: 2},
		{name: "intermediate clamp truncates low", prior: -5, d1: -3, d2: 3, combined: -5, stepwise: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.combined, data.ClampBoost(tt.prior+tt.d1+tt.d2))

			rules := data.NewRuleset()
			first, second := data.AbilityTag("First"), data.AbilityTag("Second")
			rules.StatMods[first] = []data.StatMod{boost(float64(tt.d1))}
			rules.StatMods[second] = []data.StatMod{boost(float64(tt.d2))}

			ctx := newTestContext()
			ctx.Boosts[data.StatAtk] = tt.prior
			require.NoError(t, Propagate(rules, first, ctx))
			require.NoError(t, Propagate(rules, second, ctx))
			assert.Equal(t, tt.stepwise, ctx.Boosts[data.StatAtk])

			// Both deltas from one tag are still applied one update at a time.
			rules.StatMods[first] = []data.StatMod{boost(float64(tt.d1)), boost(float64(tt.d2))}
			ctx = newTestContext()
			ctx.Boosts[data.StatAtk] = tt.prior
			require.NoError(t, Propagate(rules, first, ctx))
			assert.Equal(t, tt.stepwise, ctx.Boosts[data.StatAtk])
		})
	}
}

func TestPropagate_UnknownModifierIsFatal(t *testing.T) {
	rules := data.NewRuleset()
	src := data.AbilityTag("Corrupt")
	rules.StatMods[src] = []data.StatMod{{Kind: data.StatModKind(200)}}

	err := Propagate(rules, src, newTestContext())
	require.ErrorIs(t, err, ErrUnknownModifier)

	rules = data.NewRuleset()
	rules.MoveMods[src] = []data.MoveMod{{Target: data.TagAnyDamagingMove, Kind: data.MoveModKind(99)}}
	err = Propagate(rules, src, newTestContext())
	require.ErrorIs(t, err, ErrUnknownModifier)
}

func TestPropagate_MalformedStatIndex(t *testing.T) {
	rules := data.NewRuleset()
	src := data.AbilityTag("Broken")
	rules.StatMods[src] = []data.StatMod{{Kind: data.StatModMultiplier, Stat: data.BoostHighest, Value: 2}}

	err := Propagate(rules, src, newTestContext())
	require.ErrorIs(t, err, ErrMalformedModifier)
}

func TestPropagate_MoveModifiersStack(t *testing.T) {
	rules := data.NewRuleset()
	band := data.ItemTag("Choice Band")
	physical := data.MoveCategoryTag(data.CategoryPhysical)
	rules.MoveMods[band] = []data.MoveMod{
		{Target: physical, Kind: data.MoveModPower, Value: 1.5},
		{Target: physical, Kind: data.MoveModAccuracy, Value: 0.9},
		{Target: physical, Kind: data.MoveModAddFlag, Flag: data.FlagContact},
		{Target: physical, Kind: data.MoveModRemoveFlag, Flag: data.FlagMaxHits},
		{Target: data.MoveTag("Tackle"), Kind: data.MoveModType, Type: data.TypeFire},
	}
	sword := data.ItemTag("Sword")
	rules.MoveMods[sword] = []data.MoveMod{{Target: physical, Kind: data.MoveModPower, Value: 2}}

	ctx := newTestContext()
	require.NoError(t, Propagate(rules, band, ctx))
	require.NoError(t, Propagate(rules, sword, ctx))

	assert.InDelta(t, 3.0, ctx.MovePower[physical], 1e-9)
	assert.InDelta(t, 0.9, ctx.MoveAccuracy[physical], 1e-9)
	assert.True(t, ctx.AddedFlags[physical].Has(data.FlagContact))
	assert.True(t, ctx.RemovedFlags[physical].Has(data.FlagMaxHits))
	assert.Equal(t, data.TypeFire, ctx.MoveType[data.MoveTag("Tackle")])
}

func TestPropagate_WeightModifiersShareEnabledTable(t *testing.T) {
	rules := data.NewRuleset()
	src := data.StrategyTag("Rain")
	swift := data.AbilityTag("Swift Swim")
	rules.Enables[src] = []data.Enablement{{Target: swift, Multiplier: 2}}
	rules.WeightMods[src] = []data.WeightMod{{Target: swift, Multiplier: 5}}
	rules.DisabledByDefault.Add(swift)

	ctx := newTestContext()
	assert.Zero(t, ctx.EffectiveWeight(rules, swift), "disabled tag without enablement")

	require.NoError(t, Propagate(rules, src, ctx))
	assert.InDelta(t, 10.0, ctx.EnabledWeight[swift], 1e-9)
	assert.InDelta(t, 10.0, ctx.EffectiveWeight(rules, swift), 1e-9)
}

func TestActivate_OnlyOnce(t *testing.T) {
	rules := data.NewRuleset()
	src := data.MoveCategoryTag(data.CategoryPhysical)
	rules.StatMods[src] = []data.StatMod{{Kind: data.StatModBoost, Stat: data.StatAtk, Value: 1}}

	ctx := newTestContext()
	fresh, err := Activate(rules, src, ctx)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = Activate(rules, src, ctx)
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Equal(t, 1, ctx.Boosts[data.StatAtk])
}

func TestTeamContext_AbsorbReturnsNewValue(t *testing.T) {
	team := NewTeamContext(nil, Format{TeamSize: 6})
	team.Unresolved = []data.RequirementGroup{{data.MoveTag("Protect")}}

	ctx := NewBuildContext(team)
	ctx.Strategies.Add(data.TagTrickRoom)
	ctx.Unresolved = nil

	next := team.Absorb(ctx)

	assert.True(t, next.Strategies.Has(data.TagTrickRoom))
	assert.Empty(t, next.Unresolved)
	assert.False(t, team.Strategies.Has(data.TagTrickRoom), "receiver must stay untouched")
	assert.Len(t, team.Unresolved, 1)
}

func TestBuildContext_CloneIsIndependent(t *testing.T) {
	ctx := newTestContext()
	ctx.AddedFlags[data.TagAnyDamagingMove] = data.NewFlagSet(data.FlagContact)
	ctx.MoveFlags["Tackle"] = data.NewFlagSet(data.FlagContact)
	ctx.Unresolved = []data.RequirementGroup{{data.MoveTag("Protect")}}

	cp := ctx.Clone()
	cp.AddedFlags[data.TagAnyDamagingMove][data.FlagMaxHits] = struct{}{}
	cp.MoveFlags["Tackle"][data.FlagMaxHits] = struct{}{}
	cp.Unresolved[0][0] = data.MoveTag("Detect")
	cp.Strategies.Add(data.TagTrickRoom)
	cp.Boosts[data.StatSpe] = 3

	assert.False(t, ctx.AddedFlags[data.TagAnyDamagingMove].Has(data.FlagMaxHits))
	assert.False(t, ctx.MoveFlags["Tackle"].Has(data.FlagMaxHits))
	assert.Equal(t, data.MoveTag("Protect"), ctx.Unresolved[0][0])
	assert.False(t, ctx.HasStrategy(data.TagTrickRoom))
	assert.Zero(t, ctx.Boosts[data.StatSpe])
}
