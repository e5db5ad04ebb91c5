// Package loss provides loss functions over column vectors.
package loss

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
)

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue *matrix.Matrix) (float64, error)

	// Backward computes the gradient of the loss w.r.t. prediction.
	Backward(yPred, yTrue *matrix.Matrix) (*matrix.Matrix, error)
}

func checkShapes(name string, yPred, yTrue *matrix.Matrix) error {
	if !yPred.SameShape(yTrue) {
		return fmt.Errorf("loss.%s: prediction %dx%d, target %dx%d: %w", name,
			yPred.Rows(), yPred.Cols(), yTrue.Rows(), yTrue.Cols(), matrix.ErrDimensionMismatch)
	}
	return nil
}

// diff returns the row-major elements of yPred - yTrue.
func diff(yPred, yTrue *matrix.Matrix) []float64 {
	d := yPred.Flatten()
	floats.Sub(d, yTrue.Flatten())
	return d
}

// SquaredError is the summed squared error: sum((y_pred - y_true)^2).
// Its gradient 2*(y_pred - y_true) is the one used by backpropagation.
type SquaredError struct{}

// Forward computes sum((y_pred - y_true)^2)
func (SquaredError) Forward(yPred, yTrue *matrix.Matrix) (float64, error) {
	if err := checkShapes("SquaredError", yPred, yTrue); err != nil {
		return 0, err
	}
	d := diff(yPred, yTrue)
	return floats.Dot(d, d), nil
}

// Backward computes dL/dy_pred = 2 * (y_pred - y_true)
func (SquaredError) Backward(yPred, yTrue *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkShapes("SquaredError", yPred, yTrue); err != nil {
		return nil, err
	}
	return yPred.Clone().Apply(func(v float64, r, c int) float64 {
		return 2 * (v - yTrue.At(r, c))
	}), nil
}

// MSE (Mean Squared Error) loss.
type MSE struct{}

// Forward computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (MSE) Forward(yPred, yTrue *matrix.Matrix) (float64, error) {
	sum, err := SquaredError{}.Forward(yPred, yTrue)
	if err != nil {
		return 0, err
	}
	n := yPred.Rows() * yPred.Cols()
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// Backward computes gradient: dL/dy_pred = (2/n) * (y_pred - y_true)
func (MSE) Backward(yPred, yTrue *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkShapes("MSE", yPred, yTrue); err != nil {
		return nil, err
	}
	factor := 2.0 / float64(yPred.Rows()*yPred.Cols())
	return yPred.Clone().Apply(func(v float64, r, c int) float64 {
		return factor * (v - yTrue.At(r, c))
	}), nil
}
