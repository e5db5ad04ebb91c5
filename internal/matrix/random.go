package matrix

import (
	"math"
	"math/rand"
)

// Random creates a rows×cols matrix whose cells are drawn independently and
// uniformly from [min, max). A nil rng uses the package-level source.
func Random(rng *rand.Rand, rows, cols int, min, max float64) *Matrix {
	float := rand.Float64
	if rng != nil {
		float = rng.Float64
	}

	m := New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.data[r][c] = min + float()*(max-min)
		}
	}
	return m
}

// RandomInt is Random with every cell truncated toward zero.
func RandomInt(rng *rand.Rand, rows, cols int, min, max float64) *Matrix {
	return Random(rng, rows, cols, min, max).Apply(func(v float64, _, _ int) float64 {
		return math.Trunc(v)
	})
}
