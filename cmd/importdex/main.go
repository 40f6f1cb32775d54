// Importdex converts Showdown data exports into a ruleset catalog.
//
// Usage:
//
//	go run ./cmd/importdex -pokedex pokedex.json -moves moves.json [-learnsets learnsets.json] [-out data/catalog.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/udisondev/teambuilder/internal/data"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("importdex", flag.ContinueOnError)
	pokedex := fs.String("pokedex", "", "Showdown pokedex.json")
	moves := fs.String("moves", "", "Showdown moves.json")
	learnsets := fs.String("learnsets", "", "Showdown learnsets.json (optional)")
	out := fs.String("out", "", "output file, stdout when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pokedex == "" || *moves == "" {
		fs.Usage()
		return fmt.Errorf("-pokedex and -moves are required")
	}

	var src data.ShowdownSources
	var err error
	if src.Pokedex, err = os.ReadFile(*pokedex); err != nil {
		return fmt.Errorf("reading pokedex: %w", err)
	}
	if src.Moves, err = os.ReadFile(*moves); err != nil {
		return fmt.Errorf("reading moves: %w", err)
	}
	if *learnsets != "" {
		if src.Learnsets, err = os.ReadFile(*learnsets); err != nil {
			return fmt.Errorf("reading learnsets: %w", err)
		}
	}

	cat, err := data.ImportShowdown(src)
	if err != nil {
		return fmt.Errorf("importing: %w", err)
	}
	doc, err := data.MarshalCatalog(cat)
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = os.Stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(*out, doc, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	slog.Info("catalog written", "path", *out, "bytes", len(doc))
	return nil
}
