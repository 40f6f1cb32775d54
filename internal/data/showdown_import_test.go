package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	showdownPokedex = `{
  "pelipper": {"name": "Pelipper", "types": ["Water", "Flying"],
    "baseStats": {"hp": 60, "atk": 50, "def": 100, "spa": 95, "spd": 70, "spe": 65},
    "abilities": {"0": "Keen Eye", "1": "Drizzle", "H": "Rain Dish"}, "weightkg": 28},
  "wingull": {"name": "Wingull", "types": ["Water", "Flying"],
    "baseStats": {"hp": 40, "atk": 30, "def": 30, "spa": 55, "spd": 30, "spe": 85},
    "abilities": {"0": "Keen Eye"}, "weightkg": 9.5, "evos": ["Pelipper"]}
}`
	showdownMoves = `{
  "hurricane": {"name": "Hurricane", "type": "Flying", "category": "Special", "basePower": 110, "accuracy": 70},
  "aerialace": {"name": "Aerial Ace", "type": "Flying", "category": "Physical", "basePower": 60, "accuracy": true, "flags": {"contact": 1}},
  "seismictoss": {"name": "Seismic Toss", "type": "Fighting", "category": "Physical", "basePower": 0, "accuracy": 100, "damage": "level"},
  "bonemerang": {"name": "Bonemerang", "type": "Ground", "category": "Physical", "basePower": 50, "accuracy": 90, "multihit": 2},
  "bulletseed": {"name": "Bullet Seed", "type": "Grass", "category": "Physical", "basePower": 25, "accuracy": 100, "multihit": [2, 5]},
  "triplekick": {"name": "Triple Kick", "type": "Fighting", "category": "Physical", "basePower": 10, "accuracy": 90, "multihit": 3, "multiaccuracy": true},
  "populationbomb": {"name": "Population Bomb", "type": "Normal", "category": "Physical", "basePower": 20, "accuracy": 90, "multihit": 10, "multiaccuracy": true},
  "foulplay": {"name": "Foul Play", "type": "Dark", "category": "Physical", "basePower": 95, "accuracy": 100, "overrideOffensivePokemon": "target"},
  "bodypress": {"name": "Body Press", "type": "Fighting", "category": "Physical", "basePower": 80, "accuracy": 100, "overrideOffensiveStat": "def"},
  "psyshock": {"name": "Psyshock", "type": "Psychic", "category": "Special", "basePower": 80, "accuracy": 100, "overrideDefensiveStat": "def"},
  "freezedry": {"name": "Freeze-Dry", "type": "Ice", "category": "Special", "basePower": 70, "accuracy": 100},
  "heavyslam": {"name": "Heavy Slam", "type": "Steel", "category": "Physical", "basePower": 0, "accuracy": 100},
  "struggle": {"name": "Struggle", "type": "???", "category": "Physical", "basePower": 50, "accuracy": true},
  "roost": {"name": "Roost", "type": "Flying", "category": "Status", "basePower": 0, "accuracy": true}
}`
	showdownLearnsets = `{
  "pelipper": {"learnset": {"hurricane": ["9M"], "roost": ["9L1"], "notamove": ["9M"]}}
}`
)

func TestImportShowdown(t *testing.T) {
	c, err := ImportShowdown(ShowdownSources{
		Pokedex:   []byte(showdownPokedex),
		Moves:     []byte(showdownMoves),
		Learnsets: []byte(showdownLearnsets),
	})
	require.NoError(t, err)

	pelipper := c.Species("Pelipper")
	require.NotNil(t, pelipper)
	assert.Equal(t, TypePair{TypeWater, TypeFlying}, pelipper.Types)
	assert.Equal(t, [StatCount]int{60, 50, 100, 95, 70, 65}, pelipper.BaseStats)
	assert.Equal(t, []string{"Keen Eye", "Drizzle", "Rain Dish"}, pelipper.Abilities)
	assert.ElementsMatch(t, []string{"Hurricane", "Roost"}, pelipper.Learnset)
	assert.False(t, pelipper.HasEvolution)
	assert.True(t, c.Species("Wingull").HasEvolution)
	assert.Empty(t, c.Species("Wingull").Learnset)

	assert.NotNil(t, c.Ability("Rain Dish"), "abilities are created from species")
	_, _, abilities, _ := c.Counts()
	assert.Equal(t, 3, abilities)

	hurricane := c.Move("Hurricane")
	assert.InDelta(t, 0.7, hurricane.Accuracy, 1e-12)
	assert.Equal(t, CategorySpecial, hurricane.Category)
	assert.Zero(t, c.Move("Aerial Ace").Accuracy, "accuracy true never misses")

	flags := []struct {
		move string
		flag MoveFlag
	}{
		{"Aerial Ace", FlagContact},
		{"Seismic Toss", FlagFixedDamage},
		{"Bonemerang", FlagMultihit2},
		{"Bullet Seed", FlagMultihit2to5},
		{"Triple Kick", FlagGatedMultihit3},
		{"Population Bomb", FlagGatedMultihit10},
		{"Foul Play", FlagUseTargetAttack},
		{"Body Press", FlagUseOwnDefense},
		{"Psyshock", FlagSwapDefense},
		{"Freeze-Dry", ForcedSEFlag(TypeWater)},
	}
	for _, f := range flags {
		m := c.Move(f.move)
		require.NotNil(t, m, f.move)
		assert.True(t, m.Flags.Has(f.flag), "%s should carry %s", f.move, f.flag)
	}
	assert.Equal(t, 100, c.Move("Seismic Toss").FixedDamage)
	assert.Equal(t, TypeWater, c.Move("Freeze-Dry").Flags.ForcedSE())
	assert.Equal(t, PowerWeightRatio, c.Move("Heavy Slam").Power)
	assert.Equal(t, TypeNone, c.Move("Struggle").Type)
}

func TestImportShowdown_Invalid(t *testing.T) {
	_, err := ImportShowdown(ShowdownSources{Pokedex: []byte("{"), Moves: []byte("{}")})
	require.Error(t, err)

	_, err = ImportShowdown(ShowdownSources{Pokedex: []byte("{}"), Moves: []byte("nope")})
	require.Error(t, err)

	_, err = ImportShowdown(ShowdownSources{
		Pokedex: []byte(`{"x": {"name": "X", "types": ["Sound"], "baseStats": {}}}`),
		Moves:   []byte("{}"),
	})
	require.Error(t, err)
}

func TestProfileFromCatalog(t *testing.T) {
	assert.Nil(t, ProfileFromCatalog(NewCatalog()))

	c := NewCatalog()
	c.AddSpecies(&Species{Name: "A", Types: TypePair{TypeWater, TypeFlying}, BaseStats: [StatCount]int{50, 50, 50, 50, 50, 50}, Weight: 10})
	c.AddSpecies(&Species{Name: "B", Types: TypePair{TypeFlying, TypeWater}, BaseStats: [StatCount]int{100, 150, 50, 50, 50, 50}, Weight: 30})
	c.AddSpecies(&Species{Name: "C", Types: TypePair{TypeFire}, BaseStats: [StatCount]int{150, 100, 50, 50, 50, 50}, Weight: 20})

	p := ProfileFromCatalog(c)
	require.NotNil(t, p)
	assert.InDelta(t, 100.0, p.BaseMean[StatHP], 1e-9)
	assert.InDelta(t, 100.0, p.BaseMean[StatAtk], 1e-9)
	assert.InDelta(t, 5000.0/3, p.BaseVariance[StatHP], 1e-9)
	assert.InDelta(t, 0.0, p.BaseVariance[StatDef], 1e-9)
	assert.InDelta(t, 20.0, p.Weight, 1e-9)
	assert.ElementsMatch(t, []TypePair{{TypeWater, TypeFlying}, {TypeFire, TypeNone}}, p.Types, "swapped pairs collapse")
}
