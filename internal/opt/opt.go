// Package opt provides parameter update rules and learning-rate schedules.
package opt

import (
	"fmt"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
)

// Optimizer updates a parameter matrix in place from its gradient.
type Optimizer interface {
	// StepInPlace updates param in place: param = param - lr * grad
	StepInPlace(param, grad *matrix.Matrix) error
}

// SGD (Stochastic Gradient Descent) optimizer.
type SGD struct {
	LearningRate float64
}

// StepInPlace updates param in place. The shapes are checked before any
// element is written.
func (s SGD) StepInPlace(param, grad *matrix.Matrix) error {
	if !param.SameShape(grad) {
		return fmt.Errorf("opt.SGD: param %dx%d, grad %dx%d: %w",
			param.Rows(), param.Cols(), grad.Rows(), grad.Cols(), matrix.ErrDimensionMismatch)
	}

	lr := s.LearningRate
	param.Apply(func(v float64, r, c int) float64 {
		return v - lr*grad.At(r, c)
	})
	return nil
}
