// Package dataset loads and prepares labelled samples as column vectors.
package dataset

import (
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
)

var (
	// ErrFormat is returned when input data is malformed.
	ErrFormat = errors.New("dataset: invalid format")

	// ErrEmpty is returned when an operation needs at least one sample.
	ErrEmpty = errors.New("dataset: no samples")
)

// Dataset holds paired input and target column vectors.
type Dataset struct {
	Inputs  []*matrix.Matrix
	Targets []*matrix.Matrix
}

// FromSlices converts row slices into column-vector samples.
func FromSlices(inputs, targets [][]float64) (*Dataset, error) {
	if len(inputs) != len(targets) {
		return nil, errors.Wrapf(ErrFormat, "%d inputs but %d targets", len(inputs), len(targets))
	}

	d := &Dataset{
		Inputs:  make([]*matrix.Matrix, len(inputs)),
		Targets: make([]*matrix.Matrix, len(targets)),
	}
	for i := range inputs {
		d.Inputs[i] = matrix.Column(inputs[i]...)
		d.Targets[i] = matrix.Column(targets[i]...)
	}
	return d, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Inputs)
}

// Append adds one sample.
func (d *Dataset) Append(input, target *matrix.Matrix) {
	d.Inputs = append(d.Inputs, input)
	d.Targets = append(d.Targets, target)
}

// Split splits the dataset into two based on the given ratio (0.0 to 1.0).
// Both halves share sample storage with d, but appending to either one
// never writes into the other.
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	if ratio <= 0 {
		return &Dataset{}, d
	}
	if ratio >= 1 {
		return d, &Dataset{}
	}

	splitIdx := int(float64(d.Len()) * ratio)

	train := &Dataset{
		Inputs:  d.Inputs[:splitIdx:splitIdx],
		Targets: d.Targets[:splitIdx:splitIdx],
	}
	test := &Dataset{
		Inputs:  d.Inputs[splitIdx:],
		Targets: d.Targets[splitIdx:],
	}
	return train, test
}

// Shuffle permutes the samples in place, keeping input/target pairs together.
func (d *Dataset) Shuffle(rng *rand.Rand) {
	rng.Shuffle(d.Len(), func(i, j int) {
		d.Inputs[i], d.Inputs[j] = d.Inputs[j], d.Inputs[i]
		d.Targets[i], d.Targets[j] = d.Targets[j], d.Targets[i]
	})
}

// Batches cuts the dataset into consecutive batches of at most size samples.
// A size below 1 yields a single batch holding everything.
func (d *Dataset) Batches(size int) []*Dataset {
	n := d.Len()
	if size < 1 || size > n {
		size = n
	}

	var batches []*Dataset
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		batches = append(batches, &Dataset{
			Inputs:  d.Inputs[start:end:end],
			Targets: d.Targets[start:end:end],
		})
	}
	return batches
}

// Normalize performs min-max normalization of every input feature to [0, 1].
// Features that never vary are set to zero. Inputs are modified in place.
func (d *Dataset) Normalize() {
	if d.Len() == 0 {
		return
	}

	numFeatures := d.Inputs[0].Rows()
	lo := make([]float64, numFeatures)
	hi := make([]float64, numFeatures)
	copy(lo, d.Inputs[0].Flatten())
	copy(hi, lo)

	for _, in := range d.Inputs {
		for i := 0; i < numFeatures; i++ {
			v := in.At(i, 0)
			lo[i] = min(lo[i], v)
			hi[i] = max(hi[i], v)
		}
	}

	for _, in := range d.Inputs {
		in.Apply(func(v float64, r, _ int) float64 {
			span := hi[r] - lo[r]
			if span == 0 {
				return 0
			}
			return (v - lo[r]) / span
		})
	}
}

// OneHot returns a classes×1 target vector with a 1 at label.
func OneHot(label, classes int) *matrix.Matrix {
	t := matrix.New(classes, 1)
	if label >= 0 && label < classes {
		t.Set(label, 0, 1)
	}
	return t
}

// ArgMax returns the row index of the largest element of a column vector.
func ArgMax(v *matrix.Matrix) int {
	return floats.MaxIdx(v.Flatten())
}
