package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/teambuilder/internal/model"
	"github.com/udisondev/teambuilder/internal/testutil"
)

func fixtureRoster(t *testing.T) *model.Roster {
	t.Helper()
	cat := testutil.FixtureRuleset(t).Catalog

	pelipper := model.NewCreature(0, cat.Species("Pelipper"))
	pelipper.Ability = cat.Ability("Drizzle")
	pelipper.Moves = append(pelipper.Moves, cat.Move("Hurricane"), cat.Move("Scald"), cat.Move("Protect"))
	pelipper.ModItem = cat.Item("Bold Bulk Spread")
	pelipper.BattleItem = cat.Item("Damp Rock")
	pelipper.Offense, pelipper.Defense, pelipper.Speed = 0.61, 0.74, 0.32

	kingdra := model.NewCreature(1, cat.Species("Kingdra"))
	kingdra.Ability = cat.Ability("Swift Swim")
	kingdra.Moves = append(kingdra.Moves, cat.Move("Draco Meteor"), cat.Move("Hydro Pump"))

	return &model.Roster{
		Seed:       1<<63 + 5,
		Attempt:    2,
		Creatures:  []*model.Creature{pelipper, kingdra},
		Strategies: []string{"Rain"},
		Unresolved: 1,
		CreatedAt:  time.Now().Truncate(time.Millisecond),
	}
}

func TestRowFromRoster(t *testing.T) {
	row := RowFromRoster(fixtureRoster(t))

	assert.Equal(t, uint64(1<<63+5), row.Seed)
	require.Len(t, row.Creatures, 2)
	assert.Equal(t, CreatureRow{
		Slot:       0,
		Species:    "Pelipper",
		Ability:    "Drizzle",
		Moves:      []string{"Hurricane", "Scald", "Protect"},
		ModItem:    "Bold Bulk Spread",
		BattleItem: "Damp Rock",
		Offense:    0.61,
		Defense:    0.74,
		Speed:      0.32,
	}, row.Creatures[0])
	assert.Empty(t, row.Creatures[1].ModItem)
	assert.Empty(t, row.Creatures[1].BattleItem)
}

func TestRosterRepository_SaveAndGet(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewRosterRepository(pool)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	want := RowFromRoster(fixtureRoster(t))
	id, err := repo.SaveRoster(ctx, want)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := repo.GetRoster(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, want.Seed, got.Seed, "seed survives the signed column")
	assert.Equal(t, want.Attempt, got.Attempt)
	assert.Equal(t, want.Strategies, got.Strategies)
	assert.Equal(t, want.Unresolved, got.Unresolved)
	assert.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Millisecond)
	assert.Equal(t, want.Creatures, got.Creatures)
}

func TestRosterRepository_GetMissing(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewRosterRepository(pool)

	_, err := repo.GetRoster(testutil.ContextWithTimeout(t, 30*time.Second), 999)
	require.ErrorIs(t, err, ErrRosterNotFound)
}

func TestRosterRepository_ListNewestFirst(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewRosterRepository(pool)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
	var ids []int64
	for i := range 3 {
		id, err := repo.SaveRoster(ctx, RosterRow{Seed: uint64(i), Attempt: 1, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	list, err := repo.ListRosters(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
	assert.Empty(t, list[0].Strategies)
	assert.Nil(t, list[0].Creatures)
}
