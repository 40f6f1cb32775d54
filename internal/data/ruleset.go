package data

import (
	"fmt"
	"strings"
)

// StatModKind selects the build-context field a stat modifier writes.
type StatModKind uint8

const (
	StatModMultiplier         StatModKind = iota // own per-stat multiplier
	StatModOpponentMultiplier                    // opponent per-stat multiplier
	StatModPhysicalAccuracy                      // accuracy multiplier for physical moves
	StatModSpecialAccuracy                       // accuracy multiplier for special moves
	StatModBoost                                 // own boost delta, Stat may be BoostHighest
	StatModOpponentBoost                         // opponent boost delta
	StatModEV                                    // EV delta
	StatModNature
	StatModType1
	StatModType2
	StatModTeraType
	StatModCritStage
	StatModWeight // weight multiplier

	// Received-damage adjustments, stored on the context and read by the defensive estimator.
	StatModNullifyType
	StatModHalveType
	StatModDoubleType
	StatModHalveSEType
	StatModSEFactor
	StatModNonSEFactor
)

var statModKindNames = map[string]StatModKind{
	"multiplier":          StatModMultiplier,
	"opponent_multiplier": StatModOpponentMultiplier,
	"physical_accuracy":   StatModPhysicalAccuracy,
	"special_accuracy":    StatModSpecialAccuracy,
	"boost":               StatModBoost,
	"opponent_boost":      StatModOpponentBoost,
	"ev":                  StatModEV,
	"nature":              StatModNature,
	"type1":               StatModType1,
	"type2":               StatModType2,
	"tera_type":           StatModTeraType,
	"crit_stage":          StatModCritStage,
	"weight":              StatModWeight,
	"nullify_type":        StatModNullifyType,
	"halve_type":          StatModHalveType,
	"double_type":         StatModDoubleType,
	"halve_se_type":       StatModHalveSEType,
	"se_factor":           StatModSEFactor,
	"non_se_factor":       StatModNonSEFactor,
}

// ParseStatModKind resolves a stat modifier kind name.
func ParseStatModKind(s string) (StatModKind, error) {
	k, ok := statModKindNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown stat modifier kind %q", s)
	}
	return k, nil
}

// StatMod is one stat-modifier rule. Which fields are meaningful depends on Kind.
type StatMod struct {
	Kind   StatModKind
	Stat   Stat
	Value  float64
	Type   Type
	Nature Nature
}

// MoveModKind selects the move table a move modifier merges into.
type MoveModKind uint8

const (
	MoveModPower MoveModKind = iota
	MoveModAccuracy
	MoveModType
	MoveModAddFlag
	MoveModRemoveFlag
)

var moveModKindNames = map[string]MoveModKind{
	"power":       MoveModPower,
	"accuracy":    MoveModAccuracy,
	"type":        MoveModType,
	"add_flag":    MoveModAddFlag,
	"remove_flag": MoveModRemoveFlag,
}

// ParseMoveModKind resolves a move modifier kind name.
func ParseMoveModKind(s string) (MoveModKind, error) {
	k, ok := moveModKindNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown move modifier kind %q", s)
	}
	return k, nil
}

// MoveMod is one move-modifier rule applied to the moves matching Target
// (a move, move category, any-damaging-move or move-of-type tag).
type MoveMod struct {
	Target Tag
	Kind   MoveModKind
	Value  float64
	Type   Type
	Flag   MoveFlag
}

// Enablement unlocks Target: strategies join the strategy set, anything else
// has its enabled weight multiplied by Multiplier.
type Enablement struct {
	Target     Tag
	Multiplier float64
}

// WeightMod multiplies the enabled weight of Target.
type WeightMod struct {
	Target     Tag
	Multiplier float64
}

// Ruleset is the immutable rule and reference data every engine call reads.
// It is built once by a loader and never mutated afterwards.
type Ruleset struct {
	Enables           map[Tag][]Enablement
	Forces            map[Tag][]RequirementGroup
	StatMods          map[Tag][]StatMod
	MoveMods          map[Tag][]MoveMod
	WeightMods        map[Tag][]WeightMod
	FlatIncrease      map[Tag]float64
	InitialWeight     map[Tag]float64
	DisabledByDefault TagSet
	TypeChart         *TypeChart
	Catalog           *Catalog
}

// NewRuleset returns an empty ruleset with the standard type chart.
func NewRuleset() *Ruleset {
	return &Ruleset{
		Enables:           make(map[Tag][]Enablement),
		Forces:            make(map[Tag][]RequirementGroup),
		StatMods:          make(map[Tag][]StatMod),
		MoveMods:          make(map[Tag][]MoveMod),
		WeightMods:        make(map[Tag][]WeightMod),
		FlatIncrease:      make(map[Tag]float64),
		InitialWeight:     make(map[Tag]float64),
		DisabledByDefault: make(TagSet),
		TypeChart:         StandardTypeChart(),
		Catalog:           NewCatalog(),
	}
}

// BaseWeight returns the initial weight of t (1 when unset).
func (r *Ruleset) BaseWeight(t Tag) float64 {
	if w, ok := r.InitialWeight[t]; ok {
		return w
	}
	return 1
}

// Flat returns the flat score increase of t.
func (r *Ruleset) Flat(t Tag) float64 {
	return r.FlatIncrease[t]
}

// Disabled reports whether t starts disabled and needs an enablement to be chosen.
func (r *Ruleset) Disabled(t Tag) bool {
	return r.DisabledByDefault.Has(t)
}

// HasRules reports whether t contributes any modifier.
func (r *Ruleset) HasRules(t Tag) bool {
	return len(r.Enables[t]) > 0 || len(r.Forces[t]) > 0 || len(r.StatMods[t]) > 0 ||
		len(r.MoveMods[t]) > 0 || len(r.WeightMods[t]) > 0
}

// RuleCount returns the total number of modifier rules.
func (r *Ruleset) RuleCount() int {
	n := 0
	for _, v := range r.Enables {
		n += len(v)
	}
	for _, v := range r.Forces {
		n += len(v)
	}
	for _, v := range r.StatMods {
		n += len(v)
	}
	for _, v := range r.MoveMods {
		n += len(v)
	}
	for _, v := range r.WeightMods {
		n += len(v)
	}
	return n
}
