// Package perceptron is the public entry point to the feed-forward network,
// its matrix type and the dataset helpers.
package perceptron

import (
	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/initializers"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/opt"
)

// Re-export common types and functions for easier access
type (
	Network     = net.Network
	Pass        = net.Pass
	Gradient    = net.Gradient
	Option      = net.Option
	FitConfig   = net.FitConfig
	History     = net.History
	Matrix      = matrix.Matrix
	Dataset     = dataset.Dataset
	Activation  = activations.Activation
	Initializer = initializers.Initializer
	Loss        = loss.Loss
	Scheduler   = opt.Scheduler
)

// Errors
var (
	ErrShape             = net.ErrShape
	ErrTopology          = net.ErrTopology
	ErrPass              = net.ErrPass
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
	ErrBadShape          = matrix.ErrBadShape
	ErrFormat            = dataset.ErrFormat
	ErrEmpty             = dataset.ErrEmpty
)

// Network creation
func New(numInputs int, hidden []int, numOutputs int, opts ...Option) (*Network, error) {
	return net.New(numInputs, hidden, numOutputs, opts...)
}

var (
	WithLearningRate = net.WithLearningRate
	WithActivation   = net.WithActivation
	WithInitializer  = net.WithInitializer
	WithLoss         = net.WithLoss
	WithRand         = net.WithRand
	WithSeed         = net.WithSeed
	WithWorkers      = net.WithWorkers
)

// Matrices
var (
	NewMatrix = matrix.New
	FromArray = matrix.FromArray
	Column    = matrix.Column
	Identity  = matrix.Identity
	Random    = matrix.Random
	RandomInt = matrix.RandomInt
	Transpose = matrix.Transpose
	Add       = matrix.Add
	Subtract  = matrix.Subtract
	Multiply  = matrix.Multiply
	Hadamard  = matrix.Hadamard
	Scale     = matrix.Scale
)

// Activations
var (
	Sigmoid = activations.Sigmoid{}
	ReLU    = activations.ReLU{}
	Tanh    = activations.Tanh{}
	Linear  = activations.Linear{}
)

func LeakyReLU(alpha float64) Activation {
	return activations.NewLeakyReLU(alpha)
}

// Initializers
var (
	FanInUniform = initializers.FanInUniform{}
	He           = initializers.He{}
	Xavier       = initializers.Xavier{}
)

func Uniform(min, max float64) Initializer {
	return initializers.Uniform{Min: min, Max: max}
}

func Constant(weight, bias float64) Initializer {
	return initializers.Constant{Weight: weight, Bias: bias}
}

// Losses
var (
	SquaredError = loss.SquaredError{}
	MSE          = loss.MSE{}
)

// Datasets
var (
	LoadMNIST  = dataset.LoadMNIST
	LoadCSV    = dataset.LoadCSV
	FromSlices = dataset.FromSlices
	Synthetic  = dataset.Synthetic
	OneHot     = dataset.OneHot
	ArgMax     = dataset.ArgMax
)

// Schedulers
func StepLR(n *Network, stepSize int, gamma float64) Scheduler {
	return opt.NewStepLR(n, stepSize, gamma)
}

func ExponentialLR(n *Network, gamma float64) Scheduler {
	return opt.NewExponentialLR(n, gamma)
}

func ReduceLROnPlateau(n *Network, factor float64, patience int, threshold, minLR float64) *opt.ReduceLROnPlateau {
	return opt.NewReduceLROnPlateau(n, factor, patience, threshold, minLR)
}

// Callbacks
type Callback = net.Callback

func Logger(interval int) *net.Logger {
	return net.NewLogger(nil, interval)
}

func EarlyStopping(patience int, minDelta float64) *net.EarlyStopping {
	return net.NewEarlyStopping(patience, minDelta)
}

func SchedulerCallback(scheduler Scheduler) Callback {
	return net.NewSchedulerCallback(scheduler)
}

func CSVLogger(filename string, append bool) *net.CSVLogger {
	return net.NewCSVLogger(filename, append)
}
