package data

import (
	"fmt"
	"strings"
)

// Stat indexes the six battle stats.
type Stat uint8

const (
	StatHP Stat = iota
	StatAtk
	StatDef
	StatSpA
	StatSpD
	StatSpe

	StatCount = iota
)

// BoostSlots is the length of a boost array: six ordinary slots plus BoostHighest.
const BoostSlots = StatCount + 1

// BoostHighest is the boost slot applied to whichever non-HP stat ends up highest.
const BoostHighest = StatCount

// Boost, EV and level limits.
const (
	MaxBoost   = 6
	MinBoost   = -6
	MaxEV      = 252
	MaxEVTotal = 510
)

var statNames = [StatCount]string{"HP", "Atk", "Def", "SpA", "SpD", "Spe"}

func (s Stat) String() string {
	if int(s) < len(statNames) {
		return statNames[s]
	}
	if int(s) == BoostHighest {
		return "Highest"
	}
	return fmt.Sprintf("Stat(%d)", s)
}

// ParseStat resolves a stat name. "Highest" resolves to the BoostHighest slot.
func ParseStat(s string) (Stat, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "Highest") {
		return BoostHighest, nil
	}
	for i, name := range statNames {
		if strings.EqualFold(name, s) {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stat %q", s)
}

// StatArray holds one float per stat.
type StatArray [StatCount]float64

// Ones returns an array of multiplicative identities.
func Ones() StatArray {
	return StatArray{1, 1, 1, 1, 1, 1}
}

// Nature raises one stat by 10% and lowers another by 10%. Plus == Minus is neutral.
type Nature struct {
	Name  string
	Plus  Stat
	Minus Stat
}

// Neutral reports whether the nature changes nothing.
func (n Nature) Neutral() bool {
	return n.Plus == n.Minus || n.Plus == StatHP || n.Minus == StatHP
}

// Multiplier returns the nature factor for s.
func (n Nature) Multiplier(s Stat) float64 {
	if n.Neutral() {
		return 1
	}
	switch s {
	case n.Plus:
		return 1.1
	case n.Minus:
		return 0.9
	}
	return 1
}

var natures = []Nature{
	{"Hardy", StatAtk, StatAtk}, {"Lonely", StatAtk, StatDef}, {"Brave", StatAtk, StatSpe},
	{"Adamant", StatAtk, StatSpA}, {"Naughty", StatAtk, StatSpD}, {"Bold", StatDef, StatAtk},
	{"Docile", StatDef, StatDef}, {"Relaxed", StatDef, StatSpe}, {"Impish", StatDef, StatSpA},
	{"Lax", StatDef, StatSpD}, {"Timid", StatSpe, StatAtk}, {"Hasty", StatSpe, StatDef},
	{"Serious", StatSpe, StatSpe}, {"Jolly", StatSpe, StatSpA}, {"Naive", StatSpe, StatSpD},
	{"Modest", StatSpA, StatAtk}, {"Mild", StatSpA, StatDef}, {"Quiet", StatSpA, StatSpe},
	{"Bashful", StatSpA, StatSpA}, {"Rash", StatSpA, StatSpD}, {"Calm", StatSpD, StatAtk},
	{"Gentle", StatSpD, StatDef}, {"Sassy", StatSpD, StatSpe}, {"Careful", StatSpD, StatSpA},
	{"Quirky", StatSpD, StatSpD},
}

// ParseNature resolves a nature by name.
func ParseNature(s string) (Nature, error) {
	for _, n := range natures {
		if strings.EqualFold(n.Name, strings.TrimSpace(s)) {
			return n, nil
		}
	}
	return Nature{}, fmt.Errorf("unknown nature %q", s)
}

// ClampBoost limits a boost stage to [MinBoost, MaxBoost].
func ClampBoost(b int) int {
	return min(max(b, MinBoost), MaxBoost)
}
