package data

import (
	"fmt"
	"strings"
)

// Type is an elemental battle type.
type Type uint8

const (
	TypeNone Type = iota
	TypeNormal
	TypeFire
	TypeWater
	TypeElectric
	TypeGrass
	TypeIce
	TypeFighting
	TypePoison
	TypeGround
	TypeFlying
	TypePsychic
	TypeBug
	TypeRock
	TypeGhost
	TypeDragon
	TypeDark
	TypeSteel
	TypeFairy

	TypeCount = iota
)

var typeNames = [TypeCount]string{
	"None", "Normal", "Fire", "Water", "Electric", "Grass", "Ice", "Fighting", "Poison",
	"Ground", "Flying", "Psychic", "Bug", "Rock", "Ghost", "Dragon", "Dark", "Steel", "Fairy",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// ParseType resolves a type name case-insensitively. Empty string is TypeNone.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeNone, nil
	}
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return Type(i), nil
		}
	}
	return TypeNone, fmt.Errorf("unknown type %q", s)
}

// AllTypes lists every real type (excluding TypeNone).
func AllTypes() []Type {
	out := make([]Type, 0, TypeCount-1)
	for t := TypeNormal; t < TypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// TypePair is a creature's display typing; the second slot may be TypeNone.
type TypePair [2]Type

// Has reports whether either slot is t.
func (p TypePair) Has(t Type) bool {
	return t != TypeNone && (p[0] == t || p[1] == t)
}

// Swapped returns the pair with its slots exchanged.
func (p TypePair) Swapped() TypePair {
	return TypePair{p[1], p[0]}
}

func (p TypePair) String() string {
	if p[1] == TypeNone {
		return p[0].String()
	}
	return p[0].String() + "/" + p[1].String()
}

// TypeChart holds defender -> attacker -> multiplier.
type TypeChart [TypeCount][TypeCount]float64

// Multiplier returns the effectiveness of attack against a single defending type.
// TypeNone on either side is neutral.
func (c *TypeChart) Multiplier(attack, defend Type) float64 {
	if attack == TypeNone || defend == TypeNone || attack >= TypeCount || defend >= TypeCount {
		return 1
	}
	return c[defend][attack]
}

// Effectiveness combines the two sub-type lookups of a defending pair.
func (c *TypeChart) Effectiveness(attack Type, defender TypePair) float64 {
	return c.Multiplier(attack, defender[0]) * c.Multiplier(attack, defender[1])
}

// Set stores one chart entry.
func (c *TypeChart) Set(attack, defend Type, mult float64) {
	c[defend][attack] = mult
}

// NeutralTypeChart returns a chart where every matchup is 1.
func NeutralTypeChart() *TypeChart {
	var c TypeChart
	for d := range c {
		for a := range c[d] {
			c[d][a] = 1
		}
	}
	return &c
}

// attacker -> defender entries that differ from 1.
var standardMatchups = map[Type]map[Type]float64{
	TypeNormal:   {TypeRock: 0.5, TypeGhost: 0, TypeSteel: 0.5},
	TypeFire:     {TypeFire: 0.5, TypeWater: 0.5, TypeGrass: 2, TypeIce: 2, TypeBug: 2, TypeRock: 0.5, TypeDragon: 0.5, TypeSteel: 2},
	TypeWater:    {TypeFire: 2, TypeWater: 0.5, TypeGrass: 0.5, TypeGround: 2, TypeRock: 2, TypeDragon: 0.5},
	TypeElectric: {TypeWater: 2, TypeElectric: 0.5, TypeGrass: 0.5, TypeGround: 0, TypeFlying: 2, TypeDragon: 0.5},
	TypeGrass:    {TypeFire: 0.5, TypeWater: 2, TypeGrass: 0.5, TypePoison: 0.5, TypeGround: 2, TypeFlying: 0.5, TypeBug: 0.5, TypeRock: 2, TypeDragon: 0.5, TypeSteel: 0.5},
	TypeIce:      {TypeFire: 0.5, TypeWater: 0.5, TypeGrass: 2, TypeIce: 0.5, TypeGround: 2, TypeFlying: 2, TypeDragon: 2, TypeSteel: 0.5},
	TypeFighting: {TypeNormal: 2, TypeIce: 2, TypePoison: 0.5, TypeFlying: 0.5, TypePsychic: 0.5, TypeBug: 0.5, TypeRock: 2, TypeGhost: 0, TypeDark: 2, TypeSteel: 2, TypeFairy: 0.5},
	TypePoison:   {TypeGrass: 2, TypePoison: 0.5, TypeGround: 0.5, TypeRock: 0.5, TypeGhost: 0.5, TypeSteel: 0, TypeFairy: 2},
	TypeGround:   {TypeFire: 2, TypeElectric: 2, TypeGrass: 0.5, TypePoison: 2, TypeFlying: 0, TypeBug: 0.5, TypeRock: 2, TypeSteel: 2},
	TypeFlying:   {TypeElectric: 0.5, TypeGrass: 2, TypeFighting: 2, TypeBug: 2, TypeRock: 0.5, TypeSteel: 0.5},
	TypePsychic:  {TypeFighting: 2, TypePoison: 2, TypePsychic: 0.5, TypeDark: 0, TypeSteel: 0.5},
	TypeBug:      {TypeFire: 0.5, TypeGrass: 2, TypeFighting: 0.5, TypePoison: 0.5, TypeFlying: 0.5, TypePsychic: 2, TypeGhost: 0.5, TypeDark: 2, TypeSteel: 0.5, TypeFairy: 0.5},
	TypeRock:     {TypeFire: 2, TypeIce: 2, TypeFighting: 0.5, TypeGround: 0.5, TypeFlying: 2, TypeBug: 2, TypeSteel: 0.5},
	TypeGhost:    {TypeNormal: 0, TypePsychic: 2, TypeGhost: 2, TypeDark: 0.5},
	TypeDragon:   {TypeDragon: 2, TypeSteel: 0.5, TypeFairy: 0},
	TypeDark:     {TypeFighting: 0.5, TypePsychic: 2, TypeGhost: 2, TypeDark: 0.5, TypeFairy: 0.5},
	TypeSteel:    {TypeFire: 0.5, TypeWater: 0.5, TypeElectric: 0.5, TypeIce: 2, TypeRock: 2, TypeSteel: 0.5, TypeFairy: 2},
	TypeFairy:    {TypeFire: 0.5, TypeFighting: 2, TypePoison: 0.5, TypeDragon: 2, TypeDark: 2, TypeSteel: 0.5},
}

// StandardTypeChart returns the modern 18-type chart.
func StandardTypeChart() *TypeChart {
	c := NeutralTypeChart()
	for atk, row := range standardMatchups {
		for def, mult := range row {
			c.Set(atk, def, mult)
		}
	}
	return c
}
