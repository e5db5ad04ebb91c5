package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when operand shapes are incompatible,
	// e.g. Add/Subtract on different shapes or Multiply where a.Cols() != b.Rows().
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrBadShape is returned for negative dimensions or ragged nested input.
	ErrBadShape = errors.New("matrix: invalid shape")
)

// shapeErrorf wraps err with the operation name and both operand shapes.
func shapeErrorf(op string, a, b *Matrix, err error) error {
	return fmt.Errorf("matrix.%s(%dx%d, %dx%d): %w", op, a.rows, a.cols, b.rows, b.cols, err)
}
