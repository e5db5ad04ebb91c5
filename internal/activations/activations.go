// Package activations provides elementwise activation functions and their derivatives.
package activations

import "math"

// Activation is an activation function with derivative.
//
// Derivative is always evaluated at the pre-activation value z, the same value
// that was passed to Activate.
type Activation interface {
	// Activate computes f(z)
	Activate(z float64) float64

	// Derivative computes f'(z)
	Derivative(z float64) float64
}

// Named is implemented by activations that report a display name.
type Named interface {
	Name() string
}

// Name returns the display name of act, or "Custom" for unnamed activations.
func Name(act Activation) string {
	if n, ok := act.(Named); ok {
		return n.Name()
	}
	return "Custom"
}

// Sigmoid is the logistic function, the default activation.
type Sigmoid struct{}

// sigmoid computes 1 / (1 + e^-z)
func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Activate computes sigmoid(z)
func (Sigmoid) Activate(z float64) float64 {
	return sigmoid(z)
}

// Derivative computes sigmoid(z) * (1 - sigmoid(z))
func (Sigmoid) Derivative(z float64) float64 {
	sigma := sigmoid(z)
	return sigma * (1 - sigma)
}

func (Sigmoid) Name() string { return "Sigmoid" }

// ReLU activation function.
type ReLU struct{}

// Activate computes max(0, z)
func (ReLU) Activate(z float64) float64 {
	if z > 0 {
		return z
	}
	return 0
}

// Derivative returns 1 if z > 0, else 0
func (ReLU) Derivative(z float64) float64 {
	if z > 0 {
		return 1
	}
	return 0
}

func (ReLU) Name() string { return "ReLU" }

// LeakyReLU keeps a small slope for negative inputs to prevent dying neurons.
type LeakyReLU struct {
	Alpha float64 // Slope for z <= 0
}

// NewLeakyReLU creates a LeakyReLU with the given alpha value.
func NewLeakyReLU(alpha float64) *LeakyReLU {
	return &LeakyReLU{Alpha: alpha}
}

// Activate computes z if z > 0, else alpha*z
func (l *LeakyReLU) Activate(z float64) float64 {
	if z > 0 {
		return z
	}
	return l.Alpha * z
}

// Derivative returns 1 if z > 0, else alpha
func (l *LeakyReLU) Derivative(z float64) float64 {
	if z > 0 {
		return 1
	}
	return l.Alpha
}

func (l *LeakyReLU) Name() string { return "LeakyReLU" }

// Tanh activation function.
type Tanh struct{}

// Activate computes tanh(z)
func (Tanh) Activate(z float64) float64 {
	return math.Tanh(z)
}

// Derivative computes 1 - tanh(z)^2
func (Tanh) Derivative(z float64) float64 {
	t := math.Tanh(z)
	return 1 - t*t
}

func (Tanh) Name() string { return "Tanh" }

// Linear is the identity activation.
type Linear struct{}

func (Linear) Activate(z float64) float64   { return z }
func (Linear) Derivative(z float64) float64 { return 1 }
func (Linear) Name() string                 { return "Linear" }
