package net

import (
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
)

var (
	// ErrShape is returned when an input or target vector does not fit the
	// network's topology. It is always reported before any parameter changes.
	ErrShape = errors.New("net: shape does not match topology")

	// ErrTopology is returned by New for a zero or negative layer width.
	ErrTopology = errors.New("net: invalid topology")

	// ErrPass is returned when a Pass was produced by a different network or
	// has not been through BackPropagate yet.
	ErrPass = errors.New("net: pass does not match network")
)

func checkColumn(what string, m *matrix.Matrix, rows int) error {
	if m == nil {
		return errors.Wrapf(ErrShape, "%s is nil, want %dx1", what, rows)
	}
	if !m.IsColumn(rows) {
		r, c := m.Shape()
		return errors.Wrapf(ErrShape, "%s is %dx%d, want %dx1", what, r, c, rows)
	}
	return nil
}
