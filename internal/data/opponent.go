package data

// OpponentProfile is the statistical baseline every fitness score compares against.
// Means and variances are over base stats, not final stats.
type OpponentProfile struct {
	BaseMean     StatArray
	BaseVariance StatArray
	Weight       float64
	Types        []TypePair
}

// ProfileFromCatalog derives an opponent profile from the population of species:
// per-stat base mean and variance, mean weight, and every distinct type pair.
// Returns nil for an empty catalog.
func ProfileFromCatalog(c *Catalog) *OpponentProfile {
	all := c.AllSpecies()
	if len(all) == 0 {
		return nil
	}

	p := &OpponentProfile{}
	n := float64(len(all))
	seen := make(map[TypePair]struct{})
	for _, s := range all {
		for i := range StatCount {
			p.BaseMean[i] += float64(s.BaseStats[i]) / n
		}
		p.Weight += s.Weight / n

		// Pairs are stored in canonical order so swapped duplicates collapse.
		pair := s.Types
		if pair[1] != TypeNone && pair[1] < pair[0] {
			pair = pair.Swapped()
		}
		if _, ok := seen[pair]; !ok {
			seen[pair] = struct{}{}
			p.Types = append(p.Types, pair)
		}
	}
	for _, s := range all {
		for i := range StatCount {
			d := float64(s.BaseStats[i]) - p.BaseMean[i]
			p.BaseVariance[i] += d * d / n
		}
	}
	return p
}
