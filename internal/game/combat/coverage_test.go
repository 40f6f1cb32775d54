package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/game/modifier"
)

func TestOffensiveTypeCoverage_TypeOrderIrrelevant(t *testing.T) {
	chart := data.StandardTypeChart()
	var pairs, swapped []data.TypePair
	for _, a := range data.AllTypes() {
		for _, b := range data.AllTypes() {
			pairs = append(pairs, data.TypePair{a, b})
			swapped = append(swapped, data.TypePair{a, b}.Swapped())
		}
	}

	for _, attack := range data.AllTypes() {
		for _, flags := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
			got := OffensiveTypeCoverage(chart, attack, pairs, flags[0], flags[1], data.TypeWater)
			want := OffensiveTypeCoverage(chart, attack, swapped, flags[0], flags[1], data.TypeWater)
			require.Equal(t, want, got, attack.String())
		}
	}
}

func TestOffensiveTypeCoverage(t *testing.T) {
	chart := data.StandardTypeChart()

	tests := []struct {
		name            string
		attack          data.Type
		defender        data.TypePair
		ignoresImmunity bool
		doublesResisted bool
		forcedSE        data.Type
		want            float64
	}{
		{name: "neutral", attack: data.TypeNormal, defender: data.TypePair{data.TypeWater}, want: 1},
		{name: "double super effective", attack: data.TypeIce, defender: data.TypePair{data.TypeGround, data.TypeFlying}, want: 4},
		{name: "immune", attack: data.TypeGround, defender: data.TypePair{data.TypeFlying, data.TypeFire}, want: 0},
		{name: "ignores immunity", attack: data.TypeGround, defender: data.TypePair{data.TypeFlying, data.TypeFire}, ignoresImmunity: true, want: 1},
		{name: "doubles resisted", attack: data.TypeFire, defender: data.TypePair{data.TypeWater}, doublesResisted: true, want: 1},
		{name: "doubles resisted leaves neutral", attack: data.TypeFire, defender: data.TypePair{data.TypeNormal}, doublesResisted: true, want: 1},
		{name: "forced super effective", attack: data.TypeIce, defender: data.TypePair{data.TypeWater, data.TypeGround}, forcedSE: data.TypeWater, want: 4},
		{name: "no type is neutral", attack: data.TypeFire, defender: data.TypePair{data.TypeNone, data.TypeNone}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OffensiveTypeCoverage(chart, tt.attack, []data.TypePair{tt.defender},
				tt.ignoresImmunity, tt.doublesResisted, tt.forcedSE)
			require.Len(t, got, 1)
			assert.InDelta(t, tt.want, got[0], 1e-12)
		})
	}
}

func neutralAdjustments() modifier.ReceivedAdjustments {
	return modifier.ReceivedAdjustments{SEFactor: 1, NonSEFactor: 1}
}

func TestDefensiveStabCoverage(t *testing.T) {
	chart := data.StandardTypeChart()
	grass := data.TypePair{data.TypeGrass}
	fire := []data.TypePair{{data.TypeFire}}

	tests := []struct {
		name   string
		adjust func(*modifier.ReceivedAdjustments)
		want   float64
	}{
		{name: "plain super effective", want: 3},
		{name: "halve super effective", adjust: func(a *modifier.ReceivedAdjustments) { a.HalveSE[data.TypeFire] = true }, want: 1.5},
		{name: "se factor", adjust: func(a *modifier.ReceivedAdjustments) { a.SEFactor = 0.75 }, want: 2.25},
		{name: "non-se factor ignored on se hit", adjust: func(a *modifier.ReceivedAdjustments) { a.NonSEFactor = 0 }, want: 3},
		{name: "nullify", adjust: func(a *modifier.ReceivedAdjustments) { a.Nullify[data.TypeFire] = true }, want: 0},
		{name: "halve applied once", adjust: func(a *modifier.ReceivedAdjustments) { a.Halve[data.TypeFire] = true }, want: 1.5},
		{name: "double", adjust: func(a *modifier.ReceivedAdjustments) { a.Double[data.TypeFire] = true }, want: 6},
		{
			name: "halve then double",
			adjust: func(a *modifier.ReceivedAdjustments) {
				a.Halve[data.TypeFire] = true
				a.Double[data.TypeFire] = true
				a.HalveSE[data.TypeFire] = true
			},
			want: 1.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := neutralAdjustments()
			if tt.adjust != nil {
				tt.adjust(&adj)
			}
			assert.InDelta(t, tt.want, DefensiveStabCoverage(chart, grass, fire, adj), 1e-12)
		})
	}
}

func TestDefensiveStabCoverage_NonSuperEffective(t *testing.T) {
	chart := data.StandardTypeChart()
	adj := neutralAdjustments()
	adj.NonSEFactor = 0.5
	adj.SEFactor = 10

	// Water resists fire; normal is neutral against water.
	attackers := []data.TypePair{{data.TypeFire, data.TypeNormal}}
	got := DefensiveStabCoverage(chart, data.TypePair{data.TypeWater}, attackers, adj)
	assert.InDelta(t, (1.5*0.5*0.5+1.5*0.5)/2, got, 1e-12)

	assert.InDelta(t, 1.5, DefensiveStabCoverage(chart, data.TypePair{data.TypeWater}, nil, adj), 1e-12)
}
