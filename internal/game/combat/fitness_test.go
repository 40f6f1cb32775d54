package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/game/modifier"
)

func testProfile() *data.OpponentProfile {
	p := &data.OpponentProfile{
		Weight: 60,
		Types:  []data.TypePair{{data.TypeNormal}, {data.TypeWater, data.TypeGround}, {data.TypeGrass}},
	}
	for i := range data.StatCount {
		p.BaseMean[i] = 85
		p.BaseVariance[i] = 500
	}
	return p
}

func TestEvaluate_NoBattleContext(t *testing.T) {
	rules := data.NewRuleset()
	team := noBattle()
	ctx := modifier.NewBuildContext(team)
	ctx.Offense, ctx.Defense, ctx.Speed = 0.3, 0.3, 0.3

	f := Evaluate(rules, ctx, team, flatSpecies(100), []*data.Move{physical("Hit", 80)})

	assert.Equal(t, Neutral, f)
	assert.Equal(t, 1.0, ctx.Offense)
	assert.Equal(t, 1.0, ctx.Defense)
	assert.Equal(t, 1.0, ctx.Speed)
}

func TestEvaluate_RangeAndMonotonicity(t *testing.T) {
	rules := data.NewRuleset()
	team := modifier.NewTeamContext(testProfile(), modifier.Format{TeamSize: 6})
	moves := []*data.Move{physical("Hit", 80)}

	weak := Evaluate(rules, modifier.NewBuildContext(team), team, flatSpecies(60), moves)
	strong := Evaluate(rules, modifier.NewBuildContext(team), team, flatSpecies(130), moves)

	for _, f := range []Fitness{weak, strong} {
		for _, v := range []float64{f.Offense, f.Defense, f.Speed} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	assert.Greater(t, strong.Offense, weak.Offense)
	assert.Greater(t, strong.Defense, weak.Defense)
	assert.Greater(t, strong.Speed, weak.Speed)
}

func TestEvaluate_TrickRoomInvertsSpeed(t *testing.T) {
	rules := data.NewRuleset()
	team := modifier.NewTeamContext(testProfile(), modifier.Format{TeamSize: 6})
	sp := flatSpecies(100)

	normal := Evaluate(rules, modifier.NewBuildContext(team), team, sp, nil)

	ctx := modifier.NewBuildContext(team)
	ctx.Strategies.Add(data.TagTrickRoom)
	inverted := Evaluate(rules, ctx, team, sp, nil)

	assert.InDelta(t, 1-normal.Speed, inverted.Speed, 1e-12)
	assert.InDelta(t, inverted.Speed, ctx.Speed, 1e-12)
}

func TestEvaluate_StatusOnlyHasNoOffense(t *testing.T) {
	rules := data.NewRuleset()
	team := modifier.NewTeamContext(testProfile(), modifier.Format{TeamSize: 6})
	status := &data.Move{Name: "Recover", Type: data.TypeNormal, Category: data.CategoryStatus}

	f := Evaluate(rules, modifier.NewBuildContext(team), team, flatSpecies(100), []*data.Move{status})
	assert.Zero(t, f.Offense)
}

func TestEvaluate_ImmunityRaisesDefense(t *testing.T) {
	rules := data.NewRuleset()
	team := modifier.NewTeamContext(testProfile(), modifier.Format{TeamSize: 6})
	sp := flatSpecies(80)

	plain := Evaluate(rules, modifier.NewBuildContext(team), team, sp, nil)

	ctx := modifier.NewBuildContext(team)
	ctx.Received.Nullify[data.TypeWater] = true
	ctx.Received.Nullify[data.TypeGround] = true
	immune := Evaluate(rules, ctx, team, sp, nil)

	require.Greater(t, immune.Defense, plain.Defense)
}

func TestNormalCDF(t *testing.T) {
	assert.Equal(t, 1.0, normalCDF(10, 0, 10))
	assert.Equal(t, 0.0, normalCDF(10, 0, 9.99))
	assert.InDelta(t, 0.5, normalCDF(10, 4, 10), 1e-12)
	assert.InDelta(t, 0.8413447, normalCDF(0, 1, 1), 1e-6)
}
