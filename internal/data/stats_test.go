package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeChart_Standard(t *testing.T) {
	c := StandardTypeChart()

	tests := []struct {
		attack Type
		def    TypePair
		want   float64
	}{
		{TypeFire, TypePair{TypeGrass}, 2},
		{TypeWater, TypePair{TypeFire, TypeGround}, 4},
		{TypeGround, TypePair{TypeFire, TypeFlying}, 0},
		{TypeElectric, TypePair{TypeWater, TypeFlying}, 4},
		{TypeGrass, TypePair{TypeDragon, TypeSteel}, 0.25},
		{TypeDragon, TypePair{TypeFairy}, 0},
		{TypeNormal, TypePair{TypeNormal}, 1},
		{TypeNone, TypePair{TypeGhost}, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, c.Effectiveness(tt.attack, tt.def), 1e-12, "%s vs %s", tt.attack, tt.def)
		assert.InDelta(t, c.Effectiveness(tt.attack, tt.def), c.Effectiveness(tt.attack, tt.def.Swapped()), 1e-12)
	}

	c.Set(TypeDragon, TypeFairy, 0.5)
	assert.InDelta(t, 0.5, c.Multiplier(TypeDragon, TypeFairy), 1e-12)
	assert.InDelta(t, 0.0, StandardTypeChart().Multiplier(TypeDragon, TypeFairy), 1e-12, "charts are independent")
}

func TestParseType(t *testing.T) {
	got, err := ParseType(" fairy ")
	require.NoError(t, err)
	assert.Equal(t, TypeFairy, got)

	got, err = ParseType("")
	require.NoError(t, err)
	assert.Equal(t, TypeNone, got)

	_, err = ParseType("Sound")
	require.Error(t, err)

	assert.Len(t, AllTypes(), 18)
	assert.NotContains(t, AllTypes(), TypeNone)
}

func TestNature(t *testing.T) {
	modest, err := ParseNature("modest")
	require.NoError(t, err)
	assert.InDelta(t, 1.1, modest.Multiplier(StatSpA), 1e-12)
	assert.InDelta(t, 0.9, modest.Multiplier(StatAtk), 1e-12)
	assert.InDelta(t, 1.0, modest.Multiplier(StatSpe), 1e-12)

	hardy, err := ParseNature("Hardy")
	require.NoError(t, err)
	assert.True(t, hardy.Neutral())
	for s := range Stat(StatCount) {
		assert.InDelta(t, 1.0, hardy.Multiplier(s), 1e-12)
	}

	_, err = ParseNature("Grumpy")
	require.Error(t, err)
}

func TestParseStat(t *testing.T) {
	s, err := ParseStat("spe")
	require.NoError(t, err)
	assert.Equal(t, StatSpe, s)

	s, err = ParseStat("Highest")
	require.NoError(t, err)
	assert.Equal(t, Stat(BoostHighest), s)

	_, err = ParseStat("Luck")
	require.Error(t, err)
}

func TestClampBoost(t *testing.T) {
	assert.Equal(t, 6, ClampBoost(9))
	assert.Equal(t, -6, ClampBoost(-7))
	assert.Equal(t, 3, ClampBoost(3))
}
