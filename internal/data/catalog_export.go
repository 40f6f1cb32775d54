package data

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var variablePowerNames = map[VariablePower]string{
	PowerWeightRatio:  "weight_ratio",
	PowerTargetWeight: "target_weight",
	PowerSpeedRatio:   "speed_ratio",
	PowerInverseSpeed: "inverse_speed",
}

// MarshalCatalog encodes c in the ruleset YAML format, without rules.
// Entries are sorted by name so the output is stable.
func MarshalCatalog(c *Catalog) ([]byte, error) {
	var raw rawRuleset

	for _, s := range c.AllSpecies() {
		rs := rawSpecies{
			Name:         s.Name,
			BaseStats:    s.BaseStats[:],
			Weight:       s.Weight,
			HasEvolution: s.HasEvolution,
			Abilities:    s.Abilities,
			Learnset:     s.Learnset,
		}
		for _, t := range s.Types {
			if t != TypeNone {
				rs.Types = append(rs.Types, t.String())
			}
		}
		raw.Species = append(raw.Species, rs)
	}

	for _, m := range c.AllMoves() {
		rm := rawMove{
			Name:        m.Name,
			Type:        m.Type.String(),
			Category:    strings.ToLower(m.Category.String()),
			BasePower:   m.BasePower,
			Accuracy:    m.Accuracy,
			FixedDamage: m.FixedDamage,
			Power:       variablePowerNames[m.Power],
		}
		for f := range m.Flags {
			if f == FlagFixedDamage {
				continue
			}
			rm.Flags = append(rm.Flags, string(f))
		}
		slices.Sort(rm.Flags)
		raw.Moves = append(raw.Moves, rm)
	}

	for _, a := range c.AllAbilities() {
		raw.Abilities = append(raw.Abilities, rawAbility{Name: a.Name, Flags: tagNames(a.Flags)})
	}
	for _, kind := range []ItemKind{ItemMod, ItemBattle} {
		for _, it := range c.ItemsOfKind(kind) {
			raw.Items = append(raw.Items, rawItem{
				Name:  it.Name,
				Kind:  strings.ToLower(kind.String()),
				Flags: tagNames(it.Flags),
			})
		}
	}

	out, err := yaml.Marshal(&raw)
	if err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return out, nil
}

func tagNames(tags []Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Name
	}
	return out
}
