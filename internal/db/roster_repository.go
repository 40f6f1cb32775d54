package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/teambuilder/internal/model"
)

// ErrRosterNotFound is returned when no roster has the requested id.
var ErrRosterNotFound = errors.New("roster not found")

// RosterRow is a persisted roster. Catalog entries are stored by name.
type RosterRow struct {
	ID         int64
	Seed       uint64
	Attempt    int
	Strategies []string
	Unresolved int
	CreatedAt  time.Time
	Creatures  []CreatureRow
}

// CreatureRow is one persisted roster slot.
type CreatureRow struct {
	Slot       int
	Species    string
	Ability    string
	Moves      []string
	ModItem    string
	BattleItem string
	Offense    float64
	Defense    float64
	Speed      float64
}

// RowFromRoster flattens a built roster into its stored form.
func RowFromRoster(r *model.Roster) RosterRow {
	row := RosterRow{
		ID:         r.ID,
		Seed:       r.Seed,
		Attempt:    r.Attempt,
		Strategies: r.Strategies,
		Unresolved: r.Unresolved,
		CreatedAt:  r.CreatedAt,
	}
	for _, c := range r.Creatures {
		row.Creatures = append(row.Creatures, CreatureRow{
			Slot:       c.Slot,
			Species:    c.Species.Name,
			Ability:    c.AbilityName(),
			Moves:      c.MoveNames(),
			ModItem:    model.ItemName(c.ModItem),
			BattleItem: model.ItemName(c.BattleItem),
			Offense:    c.Offense,
			Defense:    c.Defense,
			Speed:      c.Speed,
		})
	}
	return row
}

// RosterRepository stores built rosters in PostgreSQL.
type RosterRepository struct {
	pool *pgxpool.Pool
}

// NewRosterRepository creates a repository over pool.
func NewRosterRepository(pool *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{pool: pool}
}

// SaveRoster inserts the roster and its creatures in one transaction and returns the new id.
func (r *RosterRepository) SaveRoster(ctx context.Context, row RosterRow) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	strategies := row.Strategies
	if strategies == nil {
		strategies = []string{}
	}
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO rosters (seed, attempt, strategies, unresolved, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		int64(row.Seed), row.Attempt, strategies, row.Unresolved, createdAt,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("inserting roster: %w", err)
	}

	if len(row.Creatures) > 0 {
		rows := make([][]any, 0, len(row.Creatures))
		for _, c := range row.Creatures {
			moves := c.Moves
			if moves == nil {
				moves = []string{}
			}
			rows = append(rows, []any{id, c.Slot, c.Species, c.Ability, moves, c.ModItem, c.BattleItem, c.Offense, c.Defense, c.Speed})
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"roster_creatures"},
			[]string{"roster_id", "slot", "species", "ability", "moves", "mod_item", "battle_item", "offense", "defense", "speed"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return 0, fmt.Errorf("inserting creatures of roster %d: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing roster %d: %w", id, err)
	}

	slog.Debug("saved roster", "id", id, "creatures", len(row.Creatures))
	return id, nil
}

// GetRoster loads a roster with its creatures ordered by slot.
func (r *RosterRepository) GetRoster(ctx context.Context, id int64) (*RosterRow, error) {
	var (
		row  RosterRow
		seed int64
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, seed, attempt, strategies, unresolved, created_at
		 FROM rosters WHERE id = $1`, id,
	).Scan(&row.ID, &seed, &row.Attempt, &row.Strategies, &row.Unresolved, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrRosterNotFound, id)
		}
		return nil, fmt.Errorf("querying roster %d: %w", id, err)
	}
	row.Seed = uint64(seed)

	rows, err := r.pool.Query(ctx,
		`SELECT slot, species, ability, moves, mod_item, battle_item, offense, defense, speed
		 FROM roster_creatures WHERE roster_id = $1 ORDER BY slot`, id)
	if err != nil {
		return nil, fmt.Errorf("querying creatures of roster %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c CreatureRow
		if err := rows.Scan(&c.Slot, &c.Species, &c.Ability, &c.Moves, &c.ModItem, &c.BattleItem, &c.Offense, &c.Defense, &c.Speed); err != nil {
			return nil, fmt.Errorf("scanning creature of roster %d: %w", id, err)
		}
		row.Creatures = append(row.Creatures, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating creatures of roster %d: %w", id, err)
	}
	return &row, nil
}

// ListRosters returns the newest rosters first, without creatures.
func (r *RosterRepository) ListRosters(ctx context.Context, limit int) ([]RosterRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, seed, attempt, strategies, unresolved, created_at
		 FROM rosters ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing rosters: %w", err)
	}
	defer rows.Close()

	var out []RosterRow
	for rows.Next() {
		var (
			row  RosterRow
			seed int64
		)
		if err := rows.Scan(&row.ID, &seed, &row.Attempt, &row.Strategies, &row.Unresolved, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning roster: %w", err)
		}
		row.Seed = uint64(seed)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rosters: %w", err)
	}
	return out, nil
}
