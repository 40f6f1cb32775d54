package modifier

import (
	"maps"
	"slices"

	"github.com/udisondev/teambuilder/internal/data"
)

// Format describes the battle format a roster is built for.
type Format struct {
	Doubles  bool
	TeamSize int
}

// TeamContext is the accumulator threaded through a roster build.
// It is treated as a value: Absorb returns a new context and never mutates the receiver.
type TeamContext struct {
	Strategies data.TagSet
	Unresolved []data.RequirementGroup
	Opponent   *data.OpponentProfile // nil when building without a battle context
	Format     Format
}

// NewTeamContext returns an empty accumulator.
func NewTeamContext(opponent *data.OpponentProfile, format Format) TeamContext {
	return TeamContext{
		Strategies: make(data.TagSet),
		Opponent:   opponent,
		Format:     format,
	}
}

// Clone returns an independent copy. The opponent profile is shared read-only.
func (t TeamContext) Clone() TeamContext {
	return TeamContext{
		Strategies: t.Strategies.Clone(),
		Unresolved: cloneGroups(t.Unresolved),
		Opponent:   t.Opponent,
		Format:     t.Format,
	}
}

// HasBattleContext reports whether fitness scores can be computed.
func (t TeamContext) HasBattleContext() bool {
	return t.Opponent != nil
}

// Absorb folds a finished creature's context into a new team context:
// strategies are unioned, and the creature's remaining requirement groups replace the team's.
func (t TeamContext) Absorb(ctx *BuildContext) TeamContext {
	next := t.Clone()
	for s := range ctx.Strategies {
		next.Strategies.Add(s)
	}
	next.Unresolved = cloneGroups(ctx.Unresolved)
	return next
}

func cloneGroups(groups []data.RequirementGroup) []data.RequirementGroup {
	if groups == nil {
		return nil
	}
	out := make([]data.RequirementGroup, len(groups))
	for i, g := range groups {
		out[i] = slices.Clone(g)
	}
	return out
}

// TypeFlags is a per-type boolean table.
type TypeFlags [data.TypeCount]bool

// ReceivedAdjustments are the received-damage modifiers stored for the defensive estimator.
type ReceivedAdjustments struct {
	Nullify     TypeFlags
	Halve       TypeFlags
	Double      TypeFlags
	HalveSE     TypeFlags
	SEFactor    float64
	NonSEFactor float64
}

// BuildContext is the per-candidate mutable state propagation folds rules into.
// It is created fresh for every scoring call and never shared between evaluations.
type BuildContext struct {
	Strategies    data.TagSet
	Unresolved    []data.RequirementGroup
	EnabledWeight map[data.Tag]float64
	Active        data.TagSet // tags already propagated into this context

	// Move tables keyed by the rule target tag.
	MovePower    map[data.Tag]float64
	MoveAccuracy map[data.Tag]float64
	MoveType     map[data.Tag]data.Type
	AddedFlags   map[data.Tag]data.FlagSet
	RemovedFlags map[data.Tag]data.FlagSet
	MoveFlags    map[string]data.FlagSet // final flag set per move name

	Types               data.TypePair
	Tera                data.Type
	Nature              data.Nature
	EVs                 [data.StatCount]int
	Boosts              [data.BoostSlots]int
	OpponentBoosts      [data.BoostSlots]int
	Multipliers         data.StatArray
	OpponentMultipliers data.StatArray
	PhysicalAccuracy    float64
	SpecialAccuracy     float64
	CritStage           int
	Weight              float64 // base weight in kg, set from the species
	WeightMultiplier    float64
	Received            ReceivedAdjustments

	Offense float64
	Defense float64
	Speed   float64
}

// NewBuildContext seeds a context from a clone of the team context.
func NewBuildContext(team TeamContext) *BuildContext {
	return &BuildContext{
		Strategies:          team.Strategies.Clone(),
		Unresolved:          cloneGroups(team.Unresolved),
		EnabledWeight:       make(map[data.Tag]float64),
		Active:              make(data.TagSet),
		MovePower:           make(map[data.Tag]float64),
		MoveAccuracy:        make(map[data.Tag]float64),
		MoveType:            make(map[data.Tag]data.Type),
		AddedFlags:          make(map[data.Tag]data.FlagSet),
		RemovedFlags:        make(map[data.Tag]data.FlagSet),
		MoveFlags:           make(map[string]data.FlagSet),
		Multipliers:         data.Ones(),
		OpponentMultipliers: data.Ones(),
		PhysicalAccuracy:    1,
		SpecialAccuracy:     1,
		WeightMultiplier:    1,
		Received:            ReceivedAdjustments{SEFactor: 1, NonSEFactor: 1},
		Offense:             1,
		Defense:             1,
		Speed:               1,
	}
}

// Clone returns a deep copy.
func (c *BuildContext) Clone() *BuildContext {
	cp := *c
	cp.Strategies = c.Strategies.Clone()
	cp.Unresolved = cloneGroups(c.Unresolved)
	cp.EnabledWeight = maps.Clone(c.EnabledWeight)
	cp.Active = c.Active.Clone()
	cp.MovePower = maps.Clone(c.MovePower)
	cp.MoveAccuracy = maps.Clone(c.MoveAccuracy)
	cp.MoveType = maps.Clone(c.MoveType)
	cp.AddedFlags = cloneFlagTable(c.AddedFlags)
	cp.RemovedFlags = cloneFlagTable(c.RemovedFlags)
	cp.MoveFlags = make(map[string]data.FlagSet, len(c.MoveFlags))
	for k, v := range c.MoveFlags {
		cp.MoveFlags[k] = v.Clone()
	}
	return &cp
}

func cloneFlagTable(t map[data.Tag]data.FlagSet) map[data.Tag]data.FlagSet {
	out := make(map[data.Tag]data.FlagSet, len(t))
	for k, v := range t {
		out[k] = v.Clone()
	}
	return out
}

// HasStrategy reports whether strategy s is active.
func (c *BuildContext) HasStrategy(s data.Tag) bool {
	return c.Strategies.Has(s)
}

// EffectiveWeight is the weight a tag contributes to candidate scoring: zero when the tag
// is disabled by default and nothing enabled it, otherwise its enabled-weight entry
// (default 1) times its base weight.
func (c *BuildContext) EffectiveWeight(rules *data.Ruleset, t data.Tag) float64 {
	w, ok := c.EnabledWeight[t]
	if !ok {
		if rules.Disabled(t) {
			return 0
		}
		w = 1
	}
	return w * rules.BaseWeight(t)
}

// DisplayTypes returns the typing used for STAB and defensive matchups:
// the tera type alone when set, the working pair otherwise.
func (c *BuildContext) DisplayTypes() data.TypePair {
	if c.Tera != data.TypeNone {
		return data.TypePair{c.Tera, data.TypeNone}
	}
	return c.Types
}

// EffectiveWeightKg returns the creature's weight after multipliers.
func (c *BuildContext) EffectiveWeightKg() float64 {
	return c.Weight * c.WeightMultiplier
}
