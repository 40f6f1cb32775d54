package data

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
)

// Showdown data ships variable-power moves as callbacks; these ids map them onto power families.
var showdownVariablePower = map[string]VariablePower{
	"heavyslam":   PowerWeightRatio,
	"heatcrash":   PowerWeightRatio,
	"lowkick":     PowerTargetWeight,
	"grassknot":   PowerTargetWeight,
	"electroball": PowerSpeedRatio,
	"gyroball":    PowerInverseSpeed,
}

var showdownForcedSE = map[string]Type{
	"freezedry": TypeWater,
}

var showdownStatOrder = [StatCount]string{"hp", "atk", "def", "spa", "spd", "spe"}

// ShowdownSources holds the raw JSON documents exported by a Showdown data build
// (pokedex.json, moves.json, learnsets.json). Learnsets may be empty.
type ShowdownSources struct {
	Pokedex   []byte
	Moves     []byte
	Learnsets []byte
}

// ImportShowdown converts Showdown JSON documents into a catalog.
// Abilities are created flagless; rule data has to be authored separately.
func ImportShowdown(src ShowdownSources) (*Catalog, error) {
	if !gjson.ValidBytes(src.Pokedex) {
		return nil, errors.New("pokedex: invalid json")
	}
	if !gjson.ValidBytes(src.Moves) {
		return nil, errors.New("moves: invalid json")
	}

	c := NewCatalog()
	moveNames := make(map[string]string) // showdown id -> display name

	var importErr error
	gjson.ParseBytes(src.Moves).ForEach(func(id, v gjson.Result) bool {
		m, err := showdownMove(id.String(), v)
		if err != nil {
			importErr = err
			return false
		}
		moveNames[id.String()] = m.Name
		c.AddMove(m)
		return true
	})
	if importErr != nil {
		return nil, importErr
	}

	learnsets := gjson.ParseBytes(src.Learnsets)
	gjson.ParseBytes(src.Pokedex).ForEach(func(id, v gjson.Result) bool {
		s, err := showdownSpecies(v)
		if err != nil {
			importErr = fmt.Errorf("species %s: %w", id.String(), err)
			return false
		}
		learnsets.Get(id.String() + ".learnset").ForEach(func(moveID, _ gjson.Result) bool {
			if name, ok := moveNames[moveID.String()]; ok {
				s.Learnset = append(s.Learnset, name)
			}
			return true
		})
		for _, a := range s.Abilities {
			if c.Ability(a) == nil {
				c.AddAbility(&Ability{Name: a})
			}
		}
		c.AddSpecies(s)
		return true
	})
	if importErr != nil {
		return nil, importErr
	}

	species, moves, abilities, _ := c.Counts()
	slog.Info("imported showdown data", "species", species, "moves", moves, "abilities", abilities)
	return c, nil
}

func showdownSpecies(v gjson.Result) (*Species, error) {
	s := &Species{
		Name:         v.Get("name").String(),
		Weight:       v.Get("weightkg").Float(),
		HasEvolution: len(v.Get("evos").Array()) > 0,
	}
	types := v.Get("types").Array()
	if len(types) == 0 || len(types) > 2 {
		return nil, fmt.Errorf("want 1 or 2 types, got %d", len(types))
	}
	for i, t := range types {
		pt, err := ParseType(t.String())
		if err != nil {
			return nil, err
		}
		s.Types[i] = pt
	}
	for i, key := range showdownStatOrder {
		s.BaseStats[i] = int(v.Get("baseStats." + key).Int())
	}
	// Ability slots are "0", "1", "H", "S"; ForEach keeps document order.
	v.Get("abilities").ForEach(func(_, a gjson.Result) bool {
		s.Abilities = append(s.Abilities, a.String())
		return true
	})
	return s, nil
}

func showdownMove(id string, v gjson.Result) (*Move, error) {
	typeName := v.Get("type").String()
	if typeName == "???" {
		typeName = ""
	}
	t, err := ParseType(typeName)
	if err != nil {
		return nil, fmt.Errorf("move %s: %w", id, err)
	}
	cat, err := ParseMoveCategory(v.Get("category").String())
	if err != nil {
		return nil, fmt.Errorf("move %s: %w", id, err)
	}
	m := &Move{
		Name:      v.Get("name").String(),
		Type:      t,
		Category:  cat,
		BasePower: int(v.Get("basePower").Int()),
		Flags:     NewFlagSet(),
		Power:     showdownVariablePower[id],
	}

	// accuracy: true means the move cannot miss.
	if acc := v.Get("accuracy"); acc.Type == gjson.Number {
		m.Accuracy = acc.Float() / 100
	}

	if v.Get("flags.contact").Exists() {
		m.Flags[FlagContact] = struct{}{}
	}
	if v.Get("willCrit").Bool() {
		m.Flags[FlagAlwaysCrits] = struct{}{}
	}
	if v.Get("overrideOffensivePokemon").String() == "target" {
		m.Flags[FlagUseTargetAttack] = struct{}{}
	}
	if v.Get("overrideOffensiveStat").String() == "def" {
		m.Flags[FlagUseOwnDefense] = struct{}{}
	}
	if def := v.Get("overrideDefensiveStat").String(); def == "def" && cat == CategorySpecial {
		m.Flags[FlagSwapDefense] = struct{}{}
	}
	if forced, ok := showdownForcedSE[id]; ok {
		m.Flags[ForcedSEFlag(forced)] = struct{}{}
	}

	switch dmg := v.Get("damage"); {
	case dmg.Type == gjson.Number:
		m.FixedDamage = int(dmg.Int())
	case strings.EqualFold(dmg.String(), "level"):
		m.FixedDamage = 100
	}
	if m.FixedDamage > 0 {
		m.Flags[FlagFixedDamage] = struct{}{}
	}

	gated := v.Get("multiaccuracy").Bool()
	hits := v.Get("multihit")
	switch {
	case hits.IsArray():
		m.Flags[FlagMultihit2to5] = struct{}{}
	case hits.Int() == 2:
		m.Flags[FlagMultihit2] = struct{}{}
	case hits.Int() == 3 && gated:
		m.Flags[FlagGatedMultihit3] = struct{}{}
	case hits.Int() == 3:
		m.Flags[FlagMultihit3] = struct{}{}
	case hits.Int() == 10 && gated:
		m.Flags[FlagGatedMultihit10] = struct{}{}
	}
	return m, nil
}
