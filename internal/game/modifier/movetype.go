package modifier

import "github.com/udisondev/teambuilder/internal/data"

// maxTypeResolutions bounds type override chains.
const maxTypeResolutions = int(data.TypeCount)

// ResolveMoveType applies type overrides by precedence (move name, then move category,
// then any damaging move, then the base type) and follows move-of-type overrides until
// the type stops changing. Cycles in the override table stop at the last new type.
func ResolveMoveType(ctx *BuildContext, m *data.Move) data.Type {
	t := m.Type
	if ov, ok := ctx.MoveType[m.Tag()]; ok {
		t = ov
	} else if ov, ok := ctx.MoveType[data.MoveCategoryTag(m.Category)]; ok {
		t = ov
	} else if ov, ok := ctx.MoveType[data.TagAnyDamagingMove]; ok && m.Damaging() {
		t = ov
	}

	seen := TypeFlags{}
	seen[t] = true
	for range maxTypeResolutions {
		ov, ok := ctx.MoveType[data.MoveOfTypeTag(t)]
		if !ok || seen[ov] {
			break
		}
		seen[ov] = true
		t = ov
	}
	return t
}

// MoveKeys returns the tags whose move-table entries apply to m once its type is resolved.
func MoveKeys(m *data.Move, resolved data.Type) []data.Tag {
	keys := []data.Tag{m.Tag(), data.MoveCategoryTag(m.Category)}
	if m.Damaging() {
		keys = append(keys, data.TagAnyDamagingMove)
	}
	return append(keys, data.MoveOfTypeTag(resolved))
}

// PowerFactor is the stacked base-power multiplier over keys.
func (c *BuildContext) PowerFactor(keys []data.Tag) float64 {
	f := 1.0
	for _, k := range keys {
		f *= factor(c.MovePower, k)
	}
	return f
}

// AccuracyFactor is the stacked accuracy multiplier over keys.
func (c *BuildContext) AccuracyFactor(keys []data.Tag) float64 {
	f := 1.0
	for _, k := range keys {
		f *= factor(c.MoveAccuracy, k)
	}
	return f
}

// FinalizeMoveFlags is the last move pass: it computes every move's final flag set from
// its base flags plus added flags minus removed flags across all matching keys.
// It runs after every other tag so strategies unlocked late can still alter flags.
func FinalizeMoveFlags(ctx *BuildContext, moves []*data.Move) {
	for _, m := range moves {
		keys := MoveKeys(m, ResolveMoveType(ctx, m))
		flags := m.Flags.Clone()
		for _, k := range keys {
			flags.Union(ctx.AddedFlags[k])
		}
		for _, k := range keys {
			for f := range ctx.RemovedFlags[k] {
				delete(flags, f)
			}
		}
		ctx.MoveFlags[m.Name] = flags
	}
}

// Flags returns the final flag set of m, or its base flags before FinalizeMoveFlags ran.
func (c *BuildContext) Flags(m *data.Move) data.FlagSet {
	if f, ok := c.MoveFlags[m.Name]; ok {
		return f
	}
	if m.Flags == nil {
		return data.NewFlagSet()
	}
	return m.Flags
}
