// Package loss provides benchmarks for loss functions.
package loss

import (
	"math/rand"
	"testing"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
)

// BenchmarkSquaredError benchmarks Forward and Backward on a 10-output vector.
func BenchmarkSquaredError(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	yPred := matrix.Random(rng, 10, 1, 0, 1)
	yTrue := matrix.Random(rng, 10, 1, 0, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = SquaredError{}.Forward(yPred, yTrue)
		_, _ = SquaredError{}.Backward(yPred, yTrue)
	}
}
