// Package selection draws one candidate index from a list of weights.
package selection

import (
	"errors"
	"math"
	"math/rand/v2"
)

// ErrNoBucket is returned when no cumulative bucket exceeds the draw. Scoring floors
// every weight at a positive epsilon, so this marks a broken caller.
var ErrNoBucket = errors.New("selection: no bucket exceeded the draw")

// PickWeighted raises each weight to power in place, draws uniformly in [0, sum)
// and returns the index of the first bucket whose cumulative weight exceeds the draw.
func PickWeighted(weights []float64, rng *rand.Rand, power float64) (int, error) {
	var sum float64
	for i, w := range weights {
		if power != 1 {
			w = math.Pow(w, power)
			weights[i] = w
		}
		sum += w
	}
	if !(sum > 0) || math.IsInf(sum, 0) {
		return 0, ErrNoBucket
	}

	draw := rng.Float64() * sum
	var acc float64
	for i, w := range weights {
		acc += w
		if acc > draw {
			return i, nil
		}
	}
	return 0, ErrNoBucket
}
