package net

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/initializers"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
)

// DefaultLearningRate is the step size used when WithLearningRate is not given.
const DefaultLearningRate = 0.01

type config struct {
	learningRate float64
	act          activations.Activation
	init         initializers.Initializer
	loss         loss.Loss
	rng          *rand.Rand
	workers      int
}

func defaultConfig() config {
	return config{
		learningRate: DefaultLearningRate,
		act:          activations.Sigmoid{},
		init:         initializers.FanInUniform{},
		loss:         loss.SquaredError{},
		workers:      runtime.NumCPU(),
	}
}

// Option configures a Network at construction.
type Option func(*config)

// WithLearningRate sets the SGD step size.
func WithLearningRate(lr float64) Option {
	return func(c *config) {
		c.learningRate = lr
	}
}

// WithActivation sets the activation applied by every layer.
func WithActivation(act activations.Activation) Option {
	return func(c *config) {
		if act != nil {
			c.act = act
		}
	}
}

// WithInitializer sets the weight and bias initialization policy.
func WithInitializer(init initializers.Initializer) Option {
	return func(c *config) {
		if init != nil {
			c.init = init
		}
	}
}

// WithLoss sets the loss whose gradient drives CalculateError.
// The default is the summed squared error.
func WithLoss(l loss.Loss) Option {
	return func(c *config) {
		if l != nil {
			c.loss = l
		}
	}
}

// WithRand sets the random source used for initialization and shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithSeed is WithRand with a fresh source seeded by seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWorkers bounds the goroutines TrainMultiple uses. Values below 1
// fall back to runtime.NumCPU().
func WithWorkers(workers int) Option {
	return func(c *config) {
		c.workers = workers
	}
}

func (c *config) finish() {
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.workers < 1 {
		c.workers = runtime.NumCPU()
	}
}
