// Package initializers provides weight and bias initialization policies for
// fully-connected layers.
package initializers

import (
	"math"
	"math/rand"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
)

// Initializer produces the starting weights (fanOut×fanIn) and biases
// (fanOut×1) of a layer. rng must be used for every random draw so that
// a seeded source gives reproducible networks.
type Initializer interface {
	Weights(rng *rand.Rand, fanOut, fanIn int) *matrix.Matrix
	Biases(rng *rand.Rand, fanOut int) *matrix.Matrix
}

// FanInUniform draws weights from U[-1, 1) and scales them by 1/sqrt(fanIn).
// Biases start at zero. This is the default policy.
type FanInUniform struct{}

func (FanInUniform) Weights(rng *rand.Rand, fanOut, fanIn int) *matrix.Matrix {
	scale := 1 / math.Sqrt(float64(fanIn))
	return matrix.Random(rng, fanOut, fanIn, -1, 1).Apply(func(v float64, _, _ int) float64 {
		return v * scale
	})
}

func (FanInUniform) Biases(_ *rand.Rand, fanOut int) *matrix.Matrix {
	return matrix.New(fanOut, 1)
}

// He draws weights from N(0, 2/fanIn), suited to ReLU layers. Biases start at zero.
type He struct{}

func (He) Weights(rng *rand.Rand, fanOut, fanIn int) *matrix.Matrix {
	norm := rand.NormFloat64
	if rng != nil {
		norm = rng.NormFloat64
	}
	std := math.Sqrt(2 / float64(fanIn))
	return matrix.New(fanOut, fanIn).Apply(func(_ float64, _, _ int) float64 {
		return norm() * std
	})
}

func (He) Biases(_ *rand.Rand, fanOut int) *matrix.Matrix {
	return matrix.New(fanOut, 1)
}

// Xavier draws weights from U[-s, s) with s = sqrt(2/(fanIn+fanOut)) and biases
// from U[-0.1, 0.1).
type Xavier struct{}

func (Xavier) Weights(rng *rand.Rand, fanOut, fanIn int) *matrix.Matrix {
	scale := math.Sqrt(2.0 / (float64(fanIn) + float64(fanOut)))
	return matrix.Random(rng, fanOut, fanIn, -scale, scale)
}

func (Xavier) Biases(rng *rand.Rand, fanOut int) *matrix.Matrix {
	return matrix.Random(rng, fanOut, 1, -0.1, 0.1)
}

// Uniform draws both weights and biases from U[Min, Max).
type Uniform struct {
	Min, Max float64
}

func (u Uniform) Weights(rng *rand.Rand, fanOut, fanIn int) *matrix.Matrix {
	return matrix.Random(rng, fanOut, fanIn, u.Min, u.Max)
}

func (u Uniform) Biases(rng *rand.Rand, fanOut int) *matrix.Matrix {
	return matrix.Random(rng, fanOut, 1, u.Min, u.Max)
}

// Constant sets every weight and bias to fixed values. Useful for tests and
// hand-computed examples.
type Constant struct {
	Weight, Bias float64
}

func (k Constant) Weights(_ *rand.Rand, fanOut, fanIn int) *matrix.Matrix {
	return matrix.New(fanOut, fanIn).Apply(func(float64, int, int) float64 { return k.Weight })
}

func (k Constant) Biases(_ *rand.Rand, fanOut int) *matrix.Matrix {
	return matrix.New(fanOut, 1).Apply(func(float64, int, int) float64 { return k.Bias })
}
