package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/udisondev/teambuilder/internal/config"
	"github.com/udisondev/teambuilder/internal/data"
	"github.com/udisondev/teambuilder/internal/db"
	"github.com/udisondev/teambuilder/internal/game/builder"
	"github.com/udisondev/teambuilder/internal/game/legality"
	"github.com/udisondev/teambuilder/internal/game/modifier"
	"github.com/udisondev/teambuilder/internal/game/scoring"
	"github.com/udisondev/teambuilder/internal/model"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// run builds one roster and prints it to out. The roster is printed before it is
// persisted, so a storage failure still leaves the result on screen.
func run(ctx context.Context, out io.Writer) error {
	cfgPath := config.Path()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("teambuilder starting", "config", cfgPath, "log_level", cfg.LogLevel, "seed", cfg.Seed)

	rules, err := data.LoadRuleset(cfg.Ruleset)
	if err != nil {
		return fmt.Errorf("loading ruleset: %w", err)
	}

	filter, err := legality.Compile(cfg.BanRules)
	if err != nil {
		return fmt.Errorf("compiling ban rules: %w", err)
	}
	slog.Info("ban rules compiled", "count", filter.Len())

	var opponent *data.OpponentProfile
	if cfg.BattleContext {
		opponent = data.ProfileFromCatalog(rules.Catalog)
		if opponent == nil {
			slog.Warn("catalog has no species, building without battle context")
		}
	}

	b := builder.New(rules, filter, builder.Config{
		Power:           cfg.Power,
		Workers:         cfg.Workers,
		MaxMoves:        builder.MaxMoves,
		RequireResolved: cfg.RequireResolved,
		Scoring: scoring.Config{
			Epsilon:              cfg.Epsilon,
			ImprovementThreshold: cfg.ImprovementThreshold,
			RequirementBonus:     cfg.RequirementBonus,
		},
	})

	req := builder.Request{
		Species:  cfg.Species,
		Opponent: opponent,
		Format: modifier.Format{
			Doubles:  cfg.Format.Doubles,
			TeamSize: cfg.Format.TeamSize,
		},
	}
	roster, err := b.BuildWithRetry(ctx, req, cfg.Seed, cfg.Attempts)
	if err != nil {
		return fmt.Errorf("building roster: %w", err)
	}

	printRoster(out, roster)

	if cfg.Database.Enabled {
		if err := persist(ctx, cfg.Database, roster); err != nil {
			return err
		}
	}
	return nil
}

func persist(ctx context.Context, dbCfg config.DatabaseConfig, roster *model.Roster) error {
	database, err := db.New(ctx, dbCfg.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, dbCfg.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	id, err := db.NewRosterRepository(database.Pool()).SaveRoster(ctx, db.RowFromRoster(roster))
	if err != nil {
		return fmt.Errorf("saving roster: %w", err)
	}
	roster.ID = id
	slog.Info("roster saved", "id", id)
	return nil
}

func printRoster(w io.Writer, r *model.Roster) {
	slog.Info("roster built",
		"seed", r.Seed,
		"attempt", r.Attempt,
		"size", r.Size(),
		"strategies", strings.Join(r.Strategies, ","),
		"unresolved", r.Unresolved)

	for _, c := range r.Creatures {
		fmt.Fprintf(w, "%d. %s @ %s [%s]\n", c.Slot+1, c.Species.Name, model.ItemName(c.BattleItem), model.ItemName(c.ModItem))
		fmt.Fprintf(w, "   Ability: %s\n", c.AbilityName())
		for _, m := range c.MoveNames() {
			fmt.Fprintf(w, "   - %s\n", m)
		}
		fmt.Fprintf(w, "   offense=%.3f defense=%.3f speed=%.3f\n", c.Offense, c.Defense, c.Speed)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
