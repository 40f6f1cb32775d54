// Package builder assembles rosters one creature at a time.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/game/legality"
	"github.com/udisondev/teambuilder/internal/game/modifier"
	"github.com/udisondev/teambuilder/internal/game/scoring"
	"github.com/udisondev/teambuilder/internal/model"
)

var (
	// ErrNoCandidates is returned when a mandatory stage has nothing legal to choose.
	ErrNoCandidates = errors.New("no legal candidates")
	// ErrUnresolved is returned when a finished roster still has open requirement groups
	// and the builder is configured to reject such rosters.
	ErrUnresolved = errors.New("unresolved requirements")
	// ErrUnknownSpecies is returned when a requested species is not in the catalog.
	ErrUnknownSpecies = errors.New("unknown species")
	// ErrAttemptsExhausted wraps the last failure after every retry failed.
	ErrAttemptsExhausted = errors.New("all build attempts failed")
)

// MaxMoves is the size of a full move list.
const MaxMoves = 4

// Config tunes the builder.
type Config struct {
	Power           float64 // selection sharpness, 1 keeps raw scores
	Workers         int     // concurrent candidate scorers
	MaxMoves        int
	RequireResolved bool // reject rosters with open requirement groups
	Scoring         scoring.Config
}

// DefaultConfig returns the stock builder settings.
func DefaultConfig() Config {
	return Config{
		Power:    1,
		Workers:  4,
		MaxMoves: MaxMoves,
		Scoring:  scoring.DefaultConfig(),
	}
}

// Builder builds creatures and rosters against one immutable ruleset.
// It holds no per-build state and is safe for concurrent use.
type Builder struct {
	rules  *data.Ruleset
	filter *legality.Filter
	cfg    Config
}

// New returns a Builder. filter may be nil.
func New(rules *data.Ruleset, filter *legality.Filter, cfg Config) *Builder {
	if cfg.MaxMoves <= 0 || cfg.MaxMoves > MaxMoves {
		cfg.MaxMoves = MaxMoves
	}
	if cfg.Power <= 0 {
		cfg.Power = 1
	}
	return &Builder{rules: rules, filter: filter, cfg: cfg}
}

// BuildCreature runs the stage machine for c, mutating it in place, and returns
// its final context. team is read, never modified.
func (b *Builder) BuildCreature(ctx context.Context, team modifier.TeamContext, c *model.Creature, rng *rand.Rand) (*modifier.BuildContext, error) {
	return b.newMachine(team, c, rng).run(ctx)
}

// BuildRoster builds one creature per species, strictly in order. Each finished
// creature is absorbed into the team context the next one starts from.
func (b *Builder) BuildRoster(ctx context.Context, species []*data.Species, team modifier.TeamContext, rng *rand.Rand) (*model.Roster, modifier.TeamContext, error) {
	roster := &model.Roster{CreatedAt: time.Now()}
	for slot, sp := range species {
		c := model.NewCreature(slot, sp)
		final, err := b.BuildCreature(ctx, team, c, rng)
		if err != nil {
			return nil, team, fmt.Errorf("creature %d (%s): %w", slot, sp.Name, err)
		}
		team = team.Absorb(final)
		roster.Creatures = append(roster.Creatures, c)

		slog.Info("creature built",
			"slot", slot,
			"species", sp.Name,
			"ability", c.AbilityName(),
			"moves", c.MoveNames(),
			"mod_item", model.ItemName(c.ModItem),
			"battle_item", model.ItemName(c.BattleItem),
			"offense", c.Offense,
			"defense", c.Defense,
			"speed", c.Speed)
	}

	for _, s := range team.Strategies.Sorted() {
		roster.Strategies = append(roster.Strategies, s.Name)
	}
	roster.Unresolved = len(team.Unresolved)
	return roster, team, nil
}

// Request describes the roster to build.
type Request struct {
	Species  []string // requested species by name; remaining slots are drawn from the catalog
	Opponent *data.OpponentProfile
	Format   modifier.Format
}

// BuildWithRetry builds a roster, reseeding and starting from an empty team
// context after every failed attempt. Attempt i uses seed+i. Errors other than
// ErrNoCandidates and ErrUnresolved abort immediately.
func (b *Builder) BuildWithRetry(ctx context.Context, req Request, seed uint64, attempts int) (*model.Roster, error) {
	attempts = max(attempts, 1)
	var lastErr error
	for attempt := range attempts {
		s := seed + uint64(attempt)
		rng := rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))

		species, err := PickSpecies(b.rules.Catalog, req.Species, req.Format.TeamSize, rng)
		if err != nil {
			return nil, err
		}

		team := modifier.NewTeamContext(req.Opponent, req.Format)
		roster, final, err := b.BuildRoster(ctx, species, team, rng)
		if err == nil && b.cfg.RequireResolved && len(final.Unresolved) > 0 {
			err = fmt.Errorf("%w: %d open groups", ErrUnresolved, len(final.Unresolved))
		}
		if err == nil {
			roster.Seed = s
			roster.Attempt = attempt + 1
			return roster, nil
		}
		if !retryable(err) {
			return nil, err
		}

		slog.Warn("build attempt failed", "attempt", attempt+1, "seed", s, "err", err)
		lastErr = err
	}
	return nil, fmt.Errorf("%w (%d): %w", ErrAttemptsExhausted, attempts, lastErr)
}

func retryable(err error) bool {
	return errors.Is(err, ErrNoCandidates) || errors.Is(err, ErrUnresolved)
}

// PickSpecies resolves requested species and fills the remaining slots with
// distinct random species from the catalog.
func PickSpecies(cat *data.Catalog, requested []string, size int, rng *rand.Rand) ([]*data.Species, error) {
	if size <= 0 {
		size = len(requested)
	}
	out := make([]*data.Species, 0, size)
	for _, name := range requested {
		if len(out) == size {
			break
		}
		sp := cat.Species(name)
		if sp == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
		}
		out = append(out, sp)
	}

	pool := slices.DeleteFunc(cat.AllSpecies(), func(sp *data.Species) bool {
		return slices.Contains(out, sp)
	})
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, sp := range pool {
		if len(out) == size {
			break
		}
		out = append(out, sp)
	}
	if len(out) < size {
		return nil, fmt.Errorf("%w: catalog has %d species, roster needs %d", ErrNoCandidates, len(out), size)
	}
	return out, nil
}
