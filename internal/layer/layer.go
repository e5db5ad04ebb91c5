// Package layer provides the fully connected layer used by the network.
package layer

import (
	"fmt"
	"math/rand"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/initializers"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/opt"
)

// Dense is a fully connected layer: a = act(W·x + b).
//
// W has shape (out, in) and b has shape (out, 1). Dense holds no per-call
// state, so Forward and the gradient helpers are safe for concurrent use as
// long as no Update runs at the same time.
type Dense struct {
	weights *matrix.Matrix
	biases  *matrix.Matrix
	act     activations.Activation
	inSize  int
	outSize int

	updates int
}

// NewDense creates a dense layer with parameters drawn from init using rng.
func NewDense(in, out int, act activations.Activation, init initializers.Initializer, rng *rand.Rand) *Dense {
	return &Dense{
		weights: init.Weights(rng, out, in),
		biases:  init.Biases(rng, out),
		act:     act,
		inSize:  in,
		outSize: out,
	}
}

// Forward computes the pre-activation z = W·x + b and the activation a = act(z).
func (d *Dense) Forward(x *matrix.Matrix) (z, a *matrix.Matrix, err error) {
	wx, err := matrix.Multiply(d.weights, x)
	if err != nil {
		return nil, nil, err
	}
	z, err = matrix.Add(wx, d.biases)
	if err != nil {
		return nil, nil, err
	}

	act := d.act
	a = z.Clone().Apply(func(v float64, _, _ int) float64 {
		return act.Activate(v)
	})
	return z, a, nil
}

// Derivative returns act'(z) elementwise.
func (d *Dense) Derivative(z *matrix.Matrix) *matrix.Matrix {
	act := d.act
	return z.Clone().Apply(func(v float64, _, _ int) float64 {
		return act.Derivative(v)
	})
}

// Delta turns the gradient w.r.t. this layer's output into the gradient
// w.r.t. its pre-activation: upstream ⊙ act'(z).
func (d *Dense) Delta(upstream, z *matrix.Matrix) (*matrix.Matrix, error) {
	return matrix.Hadamard(upstream, d.Derivative(z))
}

// PropagateBack maps this layer's delta onto its input: Wᵀ·delta.
func (d *Dense) PropagateBack(delta *matrix.Matrix) (*matrix.Matrix, error) {
	return matrix.Multiply(matrix.Transpose(d.weights), delta)
}

// Gradients returns the weight gradient delta·inputᵀ and the bias gradient delta.
func (d *Dense) Gradients(delta, input *matrix.Matrix) (gradW, gradB *matrix.Matrix, err error) {
	gradW, err = matrix.Multiply(delta, matrix.Transpose(input))
	if err != nil {
		return nil, nil, err
	}
	return gradW, delta.Clone(), nil
}

// Update applies one optimizer step to the weights and biases.
// Both shapes are validated before either parameter is written.
func (d *Dense) Update(o opt.Optimizer, gradW, gradB *matrix.Matrix) error {
	if !gradW.SameShape(d.weights) || !gradB.SameShape(d.biases) {
		return fmt.Errorf("layer.Dense.Update: grad %dx%d/%dx%d for %dx%d layer: %w",
			gradW.Rows(), gradW.Cols(), gradB.Rows(), gradB.Cols(),
			d.outSize, d.inSize, matrix.ErrDimensionMismatch)
	}
	if err := o.StepInPlace(d.weights, gradW); err != nil {
		return err
	}
	if err := o.StepInPlace(d.biases, gradB); err != nil {
		return err
	}
	d.updates++
	return nil
}

// Updates returns how many times Update has modified the parameters.
func (d *Dense) Updates() int {
	return d.updates
}

// Weights returns a copy of the weight matrix.
func (d *Dense) Weights() *matrix.Matrix {
	return d.weights.Clone()
}

// Biases returns a copy of the bias vector.
func (d *Dense) Biases() *matrix.Matrix {
	return d.biases.Clone()
}

// SetWeights replaces the weights with a copy of w.
func (d *Dense) SetWeights(w *matrix.Matrix) error {
	if !w.SameShape(d.weights) {
		return fmt.Errorf("layer.Dense.SetWeights: got %dx%d, want %dx%d: %w",
			w.Rows(), w.Cols(), d.outSize, d.inSize, matrix.ErrDimensionMismatch)
	}
	d.weights = w.Clone()
	return nil
}

// SetBiases replaces the biases with a copy of b.
func (d *Dense) SetBiases(b *matrix.Matrix) error {
	if !b.SameShape(d.biases) {
		return fmt.Errorf("layer.Dense.SetBiases: got %dx%d, want %dx1: %w",
			b.Rows(), b.Cols(), d.outSize, matrix.ErrDimensionMismatch)
	}
	d.biases = b.Clone()
	return nil
}

// NumParams returns the number of trainable values.
func (d *Dense) NumParams() int {
	return d.outSize*d.inSize + d.outSize
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return d.outSize
}

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation {
	return d.act
}
