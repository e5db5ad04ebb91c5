// Package net provides the layered perceptron: forward inference, error
// backpropagation and gradient-descent training.
package net

import (
	"math/rand"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/layer"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/opt"
)

// Network is an ordered stack of fully connected layers.
//
// Forward, FeedForward, CalculateError, BackPropagate and Gradients only read
// the parameters and may run concurrently. Train, TrainMultiple, Fit and
// SetLearningRate mutate the network and must be serialized by the caller.
type Network struct {
	topology []int
	layers   []*layer.Dense
	act      activations.Activation
	loss     loss.Loss
	rng      *rand.Rand
	workers  int

	learningRate float64
}

// Pass holds the intermediate values of one forward pass. Index l refers to
// the l-th weight layer, so Inputs[l] is the vector that layer consumed,
// PreActivations[l] is W·x+b and Activations[l] its activated output.
// Errors is filled in by BackPropagate.
type Pass struct {
	Inputs         []*matrix.Matrix
	PreActivations []*matrix.Matrix
	Activations    []*matrix.Matrix
	Errors         []*matrix.Matrix
}

// Output returns the network output of the pass.
func (p *Pass) Output() *matrix.Matrix {
	return p.Activations[len(p.Activations)-1]
}

// Gradient is the per-layer parameter gradient of one sample.
type Gradient struct {
	Weights *matrix.Matrix
	Biases  *matrix.Matrix
}

// New builds a network with layer widths [numInputs, hidden..., numOutputs].
func New(numInputs int, hidden []int, numOutputs int, opts ...Option) (*Network, error) {
	topology := make([]int, 0, len(hidden)+2)
	topology = append(topology, numInputs)
	topology = append(topology, hidden...)
	topology = append(topology, numOutputs)
	for i, width := range topology {
		if width < 1 {
			return nil, errors.Wrapf(ErrTopology, "layer %d has width %d", i, width)
		}
	}

	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	cfg.finish()

	n := &Network{
		topology:     topology,
		layers:       make([]*layer.Dense, len(topology)-1),
		act:          cfg.act,
		loss:         cfg.loss,
		rng:          cfg.rng,
		workers:      cfg.workers,
		learningRate: cfg.learningRate,
	}
	for l := range n.layers {
		n.layers[l] = layer.NewDense(topology[l], topology[l+1], cfg.act, cfg.init, cfg.rng)
	}
	return n, nil
}

// Forward runs input through every layer and records the intermediate values.
// input must be a numInputs×1 column.
func (n *Network) Forward(input *matrix.Matrix) (*Pass, error) {
	if err := checkColumn("input", input, n.topology[0]); err != nil {
		return nil, err
	}

	p := &Pass{
		Inputs:         make([]*matrix.Matrix, len(n.layers)),
		PreActivations: make([]*matrix.Matrix, len(n.layers)),
		Activations:    make([]*matrix.Matrix, len(n.layers)),
	}
	curr := input
	for l, d := range n.layers {
		z, a, err := d.Forward(curr)
		if err != nil {
			return nil, errors.Wrapf(err, "forward layer %d", l)
		}
		p.Inputs[l] = curr
		p.PreActivations[l] = z
		p.Activations[l] = a
		curr = a
	}
	return p, nil
}

// FeedForward returns only the network output for input.
func (n *Network) FeedForward(input *matrix.Matrix) (*matrix.Matrix, error) {
	p, err := n.Forward(input)
	if err != nil {
		return nil, err
	}
	return p.Output(), nil
}

// checkPass verifies that every recorded value of p has the shape this
// network's topology produces.
func (n *Network) checkPass(p *Pass) error {
	if p == nil || len(p.Inputs) != len(n.layers) ||
		len(p.PreActivations) != len(n.layers) || len(p.Activations) != len(n.layers) {
		return errors.Wrap(ErrPass, "pass was not produced by this network")
	}
	for l := range n.layers {
		in, out := n.topology[l], n.topology[l+1]
		if !isColumn(p.Inputs[l], in) || !isColumn(p.PreActivations[l], out) || !isColumn(p.Activations[l], out) {
			return errors.Wrapf(ErrPass, "layer %d shapes do not match %d->%d", l, in, out)
		}
	}
	return nil
}

func isColumn(m *matrix.Matrix, rows int) bool {
	return m != nil && m.Rows() == rows && m.Cols() == 1
}

// CalculateError returns the gradient of the loss with respect to the final
// pre-activation: dL/da ⊙ act'(z). With the default squared error this is
// 2*(output - desired) ⊙ act'(z).
func (n *Network) CalculateError(p *Pass, desired *matrix.Matrix) (*matrix.Matrix, error) {
	if err := n.checkPass(p); err != nil {
		return nil, err
	}
	if err := checkColumn("desired", desired, n.topology[len(n.topology)-1]); err != nil {
		return nil, err
	}

	last := len(n.layers) - 1
	grad, err := n.loss.Backward(p.Output(), desired)
	if err != nil {
		return nil, errors.Wrap(err, "loss gradient")
	}
	return n.layers[last].Delta(grad, p.PreActivations[last])
}

// BackPropagate walks finalError back through the layers and stores the
// per-layer errors in p.Errors. Parameters are not touched.
func (n *Network) BackPropagate(p *Pass, finalError *matrix.Matrix) ([]*matrix.Matrix, error) {
	if err := n.checkPass(p); err != nil {
		return nil, err
	}
	if err := checkColumn("final error", finalError, n.topology[len(n.topology)-1]); err != nil {
		return nil, err
	}

	errs := make([]*matrix.Matrix, len(n.layers))
	last := len(n.layers) - 1
	errs[last] = finalError
	for l := last - 1; l >= 0; l-- {
		upstream, err := n.layers[l+1].PropagateBack(errs[l+1])
		if err != nil {
			return nil, errors.Wrapf(err, "backpropagate layer %d", l+1)
		}
		if errs[l], err = n.layers[l].Delta(upstream, p.PreActivations[l]); err != nil {
			return nil, errors.Wrapf(err, "delta layer %d", l)
		}
	}
	p.Errors = errs
	return errs, nil
}

// Gradients turns a back-propagated pass into per-layer parameter gradients:
// error_l·a_{l-1}ᵀ for the weights and error_l for the biases.
func (n *Network) Gradients(p *Pass) ([]Gradient, error) {
	if err := n.checkPass(p); err != nil {
		return nil, err
	}
	if len(p.Errors) != len(n.layers) {
		return nil, errors.Wrap(ErrPass, "pass has not been back-propagated")
	}

	grads := make([]Gradient, len(n.layers))
	for l, d := range n.layers {
		gw, gb, err := d.Gradients(p.Errors[l], p.Inputs[l])
		if err != nil {
			return nil, errors.Wrapf(err, "gradients layer %d", l)
		}
		grads[l] = Gradient{Weights: gw, Biases: gb}
	}
	return grads, nil
}

// backward runs the full error pass for one sample and returns its gradients
// together with the loss measured before any update.
func (n *Network) backward(input, desired *matrix.Matrix) ([]Gradient, float64, error) {
	p, err := n.Forward(input)
	if err != nil {
		return nil, 0, err
	}
	finalError, err := n.CalculateError(p, desired)
	if err != nil {
		return nil, 0, err
	}
	if _, err := n.BackPropagate(p, finalError); err != nil {
		return nil, 0, err
	}
	grads, err := n.Gradients(p)
	if err != nil {
		return nil, 0, err
	}
	l, err := n.loss.Forward(p.Output(), desired)
	if err != nil {
		return nil, 0, err
	}
	return grads, l, nil
}

func (n *Network) checkSample(i int, input, desired *matrix.Matrix) error {
	if err := checkColumn("input", input, n.topology[0]); err != nil {
		return errors.Wrapf(err, "sample %d", i)
	}
	if err := checkColumn("desired", desired, n.topology[len(n.topology)-1]); err != nil {
		return errors.Wrapf(err, "sample %d", i)
	}
	return nil
}

// Train performs one stochastic gradient descent step on a single sample.
// Every layer's error is computed before the first parameter is written.
func (n *Network) Train(input, desired *matrix.Matrix) error {
	_, err := n.train(input, desired)
	return err
}

func (n *Network) train(input, desired *matrix.Matrix) (float64, error) {
	if err := n.checkSample(0, input, desired); err != nil {
		return 0, err
	}

	grads, l, err := n.backward(input, desired)
	if err != nil {
		return 0, err
	}
	return l, n.apply(opt.SGD{LearningRate: n.learningRate}, grads)
}

// TrainMultiple performs one mini-batch step: the gradients of all samples
// are averaged and each layer is updated exactly once. Samples are processed
// in parallel; every shape is validated before any work starts. An empty
// batch does nothing.
func (n *Network) TrainMultiple(inputs, desireds []*matrix.Matrix) error {
	_, err := n.trainMultiple(inputs, desireds)
	return err
}

func (n *Network) trainMultiple(inputs, desireds []*matrix.Matrix) (float64, error) {
	if len(inputs) != len(desireds) {
		return 0, errors.Wrapf(ErrShape, "%d inputs but %d desired outputs", len(inputs), len(desireds))
	}
	for i := range inputs {
		if err := n.checkSample(i, inputs[i], desireds[i]); err != nil {
			return 0, err
		}
	}

	size := len(inputs)
	if size == 0 {
		return 0, nil
	}

	numWorkers := min(n.workers, size)
	chunkSize := (size + numWorkers - 1) / numWorkers
	scale := n.learningRate / float64(size)

	type partial struct {
		grads []Gradient
		loss  float64
		err   error
	}
	partials := make([]partial, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, size)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			acc := n.zeroGradients()
			for i := start; i < end; i++ {
				grads, l, err := n.backward(inputs[i], desireds[i])
				if err != nil {
					partials[w].err = errors.Wrapf(err, "sample %d", i)
					return
				}
				if err := accumulate(acc, grads, scale); err != nil {
					partials[w].err = err
					return
				}
				partials[w].loss += l
			}
			partials[w].grads = acc
		}(w, start, end)
	}
	wg.Wait()

	total := n.zeroGradients()
	var totalLoss float64
	for _, part := range partials {
		if part.err != nil {
			return 0, part.err
		}
		if part.grads == nil {
			continue
		}
		if err := accumulate(total, part.grads, 1); err != nil {
			return 0, err
		}
		totalLoss += part.loss
	}

	// The accumulators already carry lr/N.
	return totalLoss / float64(size), n.apply(opt.SGD{LearningRate: 1}, total)
}

func (n *Network) zeroGradients() []Gradient {
	grads := make([]Gradient, len(n.layers))
	for l, d := range n.layers {
		grads[l] = Gradient{
			Weights: matrix.New(d.OutSize(), d.InSize()),
			Biases:  matrix.New(d.OutSize(), 1),
		}
	}
	return grads
}

// accumulate adds k*src into dst layer by layer.
func accumulate(dst, src []Gradient, k float64) error {
	for l := range dst {
		w, err := matrix.Add(dst[l].Weights, matrix.Scale(src[l].Weights, k))
		if err != nil {
			return err
		}
		b, err := matrix.Add(dst[l].Biases, matrix.Scale(src[l].Biases, k))
		if err != nil {
			return err
		}
		dst[l] = Gradient{Weights: w, Biases: b}
	}
	return nil
}

func (n *Network) apply(o opt.Optimizer, grads []Gradient) error {
	for l, d := range n.layers {
		if err := d.Update(o, grads[l].Weights, grads[l].Biases); err != nil {
			return errors.Wrapf(err, "update layer %d", l)
		}
	}
	return nil
}

// Loss returns the loss of the network output for input against desired.
func (n *Network) Loss(input, desired *matrix.Matrix) (float64, error) {
	if err := n.checkSample(0, input, desired); err != nil {
		return 0, err
	}
	out, err := n.FeedForward(input)
	if err != nil {
		return 0, err
	}
	return n.loss.Forward(out, desired)
}

// Predict returns the index of the strongest output for input.
func (n *Network) Predict(input *matrix.Matrix) (int, error) {
	out, err := n.FeedForward(input)
	if err != nil {
		return 0, err
	}
	return floats.MaxIdx(out.Flatten()), nil
}

// Evaluate reports the classification accuracy and mean loss over ds.
// A sample counts as correct when the strongest output matches the strongest
// target.
func (n *Network) Evaluate(ds *dataset.Dataset) (accuracy, meanLoss float64, err error) {
	if ds == nil || ds.Len() == 0 {
		return 0, 0, errors.Wrap(dataset.ErrEmpty, "evaluate")
	}

	correct := 0
	for i := range ds.Inputs {
		if err := n.checkSample(i, ds.Inputs[i], ds.Targets[i]); err != nil {
			return 0, 0, err
		}
		out, err := n.FeedForward(ds.Inputs[i])
		if err != nil {
			return 0, 0, err
		}
		l, err := n.loss.Forward(out, ds.Targets[i])
		if err != nil {
			return 0, 0, err
		}
		meanLoss += l
		if floats.MaxIdx(out.Flatten()) == dataset.ArgMax(ds.Targets[i]) {
			correct++
		}
	}

	total := float64(ds.Len())
	return float64(correct) / total, meanLoss / total, nil
}

// Topology returns the layer widths, input layer first.
func (n *Network) Topology() []int {
	return append([]int(nil), n.topology...)
}

// NumLayers returns the number of layers including the input layer.
func (n *Network) NumLayers() int {
	return len(n.topology)
}

// Layers returns the weight layers in order. The layers are shared with the
// network.
func (n *Network) Layers() []*layer.Dense {
	return n.layers
}

// NumParams returns the total number of trainable values.
func (n *Network) NumParams() int {
	total := 0
	for _, d := range n.layers {
		total += d.NumParams()
	}
	return total
}

// LearningRate returns the current SGD step size.
func (n *Network) LearningRate() float64 {
	return n.learningRate
}

// SetLearningRate changes the SGD step size.
func (n *Network) SetLearningRate(lr float64) {
	n.learningRate = lr
}

// Activation returns the activation shared by all layers.
func (n *Network) Activation() activations.Activation {
	return n.act
}
