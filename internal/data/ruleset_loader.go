package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Raw YAML shapes. Tag strings are parsed exactly once, in buildRuleset.

type rawRuleset struct {
	TypeOverrides []rawTypeOverride `yaml:"type_overrides,omitempty"`
	Species       []rawSpecies      `yaml:"species,omitempty"`
	Moves         []rawMove         `yaml:"moves,omitempty"`
	Abilities     []rawAbility      `yaml:"abilities,omitempty"`
	Items         []rawItem         `yaml:"items,omitempty"`
	Rules         []rawRule         `yaml:"rules,omitempty"`
}

type rawTypeOverride struct {
	Attack     string  `yaml:"attack,omitempty"`
	Defend     string  `yaml:"defend,omitempty"`
	Multiplier float64 `yaml:"multiplier,omitempty"`
}

type rawSpecies struct {
	Name         string   `yaml:"name,omitempty"`
	Types        []string `yaml:"types,omitempty"`
	BaseStats    []int    `yaml:"base_stats,omitempty"`
	Weight       float64  `yaml:"weight,omitempty"`
	HasEvolution bool     `yaml:"has_evolution,omitempty"`
	Abilities    []string `yaml:"abilities,omitempty"`
	Learnset     []string `yaml:"learnset,omitempty"`
}

type rawMove struct {
	Name        string   `yaml:"name,omitempty"`
	Type        string   `yaml:"type,omitempty"`
	Category    string   `yaml:"category,omitempty"`
	BasePower   int      `yaml:"base_power,omitempty"`
	Accuracy    float64  `yaml:"accuracy,omitempty"`
	Flags       []string `yaml:"flags,omitempty"`
	FixedDamage int      `yaml:"fixed_damage,omitempty"`
	Power       string   `yaml:"power,omitempty"`
}

type rawAbility struct {
	Name  string   `yaml:"name,omitempty"`
	Flags []string `yaml:"flags,omitempty"`
}

type rawItem struct {
	Name  string   `yaml:"name,omitempty"`
	Kind  string   `yaml:"kind,omitempty"`
	Flags []string `yaml:"flags,omitempty"`
}

type rawRule struct {
	Tag        string          `yaml:"tag"`
	Enables    []rawTargetMult `yaml:"enables"`
	Forces     [][]string      `yaml:"forces"`
	StatMods   []rawStatMod    `yaml:"stat_mods"`
	MoveMods   []rawMoveMod    `yaml:"move_mods"`
	WeightMods []rawTargetMult `yaml:"weight_mods"`
	Flat       float64         `yaml:"flat"`
	Weight     *float64        `yaml:"weight"`
	Disabled   bool            `yaml:"disabled"`
}

type rawTargetMult struct {
	Target     string   `yaml:"target"`
	Multiplier *float64 `yaml:"multiplier"`
}

type rawStatMod struct {
	Kind   string  `yaml:"kind"`
	Stat   string  `yaml:"stat"`
	Value  float64 `yaml:"value"`
	Type   string  `yaml:"type"`
	Nature string  `yaml:"nature"`
}

type rawMoveMod struct {
	Target string  `yaml:"target"`
	Kind   string  `yaml:"kind"`
	Value  float64 `yaml:"value"`
	Type   string  `yaml:"type"`
	Flag   string  `yaml:"flag"`
}

// LoadRuleset reads a YAML ruleset file.
func LoadRuleset(path string) (*Ruleset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset %s: %w", path, err)
	}
	rs, err := ParseRuleset(b)
	if err != nil {
		return nil, fmt.Errorf("parsing ruleset %s: %w", path, err)
	}
	species, moves, abilities, items := rs.Catalog.Counts()
	slog.Info("loaded ruleset",
		"path", path,
		"species", species,
		"moves", moves,
		"abilities", abilities,
		"items", items,
		"rules", rs.RuleCount())
	return rs, nil
}

// ParseRuleset decodes a YAML ruleset document.
func ParseRuleset(b []byte) (*Ruleset, error) {
	var raw rawRuleset
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	return buildRuleset(&raw)
}

func buildRuleset(raw *rawRuleset) (*Ruleset, error) {
	rs := NewRuleset()

	for _, o := range raw.TypeOverrides {
		atk, err := ParseType(o.Attack)
		if err != nil {
			return nil, err
		}
		def, err := ParseType(o.Defend)
		if err != nil {
			return nil, err
		}
		rs.TypeChart.Set(atk, def, o.Multiplier)
	}

	for i := range raw.Species {
		s, err := buildSpecies(&raw.Species[i])
		if err != nil {
			return nil, err
		}
		rs.Catalog.AddSpecies(s)
	}
	for i := range raw.Moves {
		m, err := buildMove(&raw.Moves[i])
		if err != nil {
			return nil, err
		}
		rs.Catalog.AddMove(m)
	}
	for _, a := range raw.Abilities {
		ab := &Ability{Name: a.Name}
		for _, f := range a.Flags {
			ab.Flags = append(ab.Flags, NewTag(CategoryEffect, f))
		}
		rs.Catalog.AddAbility(ab)
	}
	for _, it := range raw.Items {
		kind, err := ParseItemKind(it.Kind)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", it.Name, err)
		}
		item := &Item{Name: it.Name, Kind: kind}
		for _, f := range it.Flags {
			item.Flags = append(item.Flags, NewTag(CategoryItemFlag, f))
		}
		rs.Catalog.AddItem(item)
	}

	for i := range raw.Rules {
		if err := addRule(rs, &raw.Rules[i]); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

func buildSpecies(r *rawSpecies) (*Species, error) {
	s := &Species{
		Name:         r.Name,
		Weight:       r.Weight,
		HasEvolution: r.HasEvolution,
		Abilities:    r.Abilities,
		Learnset:     r.Learnset,
	}
	if len(r.Types) == 0 || len(r.Types) > 2 {
		return nil, fmt.Errorf("species %q: want 1 or 2 types, got %d", r.Name, len(r.Types))
	}
	for i, name := range r.Types {
		t, err := ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("species %q: %w", r.Name, err)
		}
		s.Types[i] = t
	}
	if len(r.BaseStats) != StatCount {
		return nil, fmt.Errorf("species %q: want %d base stats, got %d", r.Name, StatCount, len(r.BaseStats))
	}
	copy(s.BaseStats[:], r.BaseStats)
	return s, nil
}

func buildMove(r *rawMove) (*Move, error) {
	t, err := ParseType(r.Type)
	if err != nil {
		return nil, fmt.Errorf("move %q: %w", r.Name, err)
	}
	cat, err := ParseMoveCategory(r.Category)
	if err != nil {
		return nil, fmt.Errorf("move %q: %w", r.Name, err)
	}
	power, err := ParseVariablePower(r.Power)
	if err != nil {
		return nil, fmt.Errorf("move %q: %w", r.Name, err)
	}
	m := &Move{
		Name:        r.Name,
		Type:        t,
		Category:    cat,
		BasePower:   r.BasePower,
		Accuracy:    r.Accuracy,
		Flags:       NewFlagSet(),
		FixedDamage: r.FixedDamage,
		Power:       power,
	}
	for _, f := range r.Flags {
		m.Flags[MoveFlag(f)] = struct{}{}
	}
	if m.FixedDamage > 0 {
		m.Flags[FlagFixedDamage] = struct{}{}
	}
	return m, nil
}

func addRule(rs *Ruleset, r *rawRule) error {
	tag, err := ParseTag(r.Tag)
	if err != nil {
		return err
	}

	for _, e := range r.Enables {
		target, err := ParseTag(e.Target)
		if err != nil {
			return fmt.Errorf("rule %s enables: %w", tag, err)
		}
		rs.Enables[tag] = append(rs.Enables[tag], Enablement{Target: target, Multiplier: multOrOne(e.Multiplier)})
	}

	for _, group := range r.Forces {
		g := make(RequirementGroup, 0, len(group))
		for _, s := range group {
			t, err := ParseTag(s)
			if err != nil {
				return fmt.Errorf("rule %s forces: %w", tag, err)
			}
			g = append(g, t)
		}
		rs.Forces[tag] = append(rs.Forces[tag], g)
	}

	for _, sm := range r.StatMods {
		mod, err := buildStatMod(&sm)
		if err != nil {
			return fmt.Errorf("rule %s stat_mods: %w", tag, err)
		}
		rs.StatMods[tag] = append(rs.StatMods[tag], mod)
	}

	for _, mm := range r.MoveMods {
		mod, err := buildMoveMod(&mm)
		if err != nil {
			return fmt.Errorf("rule %s move_mods: %w", tag, err)
		}
		rs.MoveMods[tag] = append(rs.MoveMods[tag], mod)
	}

	for _, w := range r.WeightMods {
		target, err := ParseTag(w.Target)
		if err != nil {
			return fmt.Errorf("rule %s weight_mods: %w", tag, err)
		}
		rs.WeightMods[tag] = append(rs.WeightMods[tag], WeightMod{Target: target, Multiplier: multOrOne(w.Multiplier)})
	}

	if r.Flat != 0 {
		rs.FlatIncrease[tag] += r.Flat
	}
	if r.Weight != nil {
		rs.InitialWeight[tag] = *r.Weight
	}
	if r.Disabled {
		rs.DisabledByDefault.Add(tag)
	}
	return nil
}

func buildStatMod(r *rawStatMod) (StatMod, error) {
	kind, err := ParseStatModKind(r.Kind)
	if err != nil {
		return StatMod{}, err
	}
	mod := StatMod{Kind: kind, Value: r.Value}
	if r.Stat != "" {
		if mod.Stat, err = ParseStat(r.Stat); err != nil {
			return StatMod{}, err
		}
	}
	if r.Type != "" {
		if mod.Type, err = ParseType(r.Type); err != nil {
			return StatMod{}, err
		}
	}
	if r.Nature != "" {
		if mod.Nature, err = ParseNature(r.Nature); err != nil {
			return StatMod{}, err
		}
	}
	return mod, nil
}

func buildMoveMod(r *rawMoveMod) (MoveMod, error) {
	target, err := ParseTag(r.Target)
	if err != nil {
		return MoveMod{}, err
	}
	kind, err := ParseMoveModKind(r.Kind)
	if err != nil {
		return MoveMod{}, err
	}
	mod := MoveMod{Target: target, Kind: kind, Value: r.Value, Flag: MoveFlag(r.Flag)}
	if r.Type != "" {
		if mod.Type, err = ParseType(r.Type); err != nil {
			return MoveMod{}, err
		}
	}
	return mod, nil
}

func multOrOne(m *float64) float64 {
	if m == nil {
		return 1
	}
	return *m
}
