package matrix

import "gonum.org/v1/gonum/mat"

// Dense copies m into a gonum dense matrix. A matrix with a zero dimension
// returns nil, since gonum cannot represent it.
func (m *Matrix) Dense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return nil
	}
	return mat.NewDense(m.rows, m.cols, m.Flatten())
}

// FromDense copies any gonum matrix into a new Matrix.
func FromDense(d mat.Matrix) *Matrix {
	rows, cols := d.Dims()
	m := New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.data[r][c] = d.At(r, c)
		}
	}
	return m
}
