// Package matrix provides a small dense matrix of float64 values.
//
// Binary operations (Add, Subtract, Multiply, Hadamard, Transpose, Scale) always
// allocate a fresh result and never alias an operand. Apply is the only in-place
// transform.
package matrix

import (
	"fmt"
	"io"
	"strings"
)

// Matrix is a rectangular grid of float64 values with a fixed shape.
type Matrix struct {
	rows, cols int
	data       [][]float64
}

// New creates a rows×cols matrix filled with zeros.
// It panics with ErrBadShape if either dimension is negative.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Errorf("matrix.New(%d, %d): %w", rows, cols, ErrBadShape))
	}

	data := make([][]float64, rows)
	for r := range data {
		data[r] = make([]float64, cols)
	}

	return &Matrix{rows: rows, cols: cols, data: data}
}

// FromArray wraps data as a matrix without copying it.
// The row count is len(data) and the column count is len(data[0]); an empty
// input yields a 0×0 matrix. Rows of differing length return ErrBadShape.
func FromArray(data [][]float64) (*Matrix, error) {
	rows := len(data)
	if rows == 0 {
		return &Matrix{data: [][]float64{}}, nil
	}

	cols := len(data[0])
	for r := 1; r < rows; r++ {
		if len(data[r]) != cols {
			return nil, fmt.Errorf("matrix.FromArray: row %d has %d columns, want %d: %w",
				r, len(data[r]), cols, ErrBadShape)
		}
	}

	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// Column creates a len(values)×1 column vector holding a copy of values.
func Column(values ...float64) *Matrix {
	m := New(len(values), 1)
	for r, v := range values {
		m.data[r][0] = v
	}
	return m
}

// Identity creates an n×n identity matrix.
func Identity(n int) *Matrix {
	id := New(n, n)
	for i := 0; i < n; i++ {
		id.data[i][i] = 1
	}
	return id
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// Shape returns (rows, cols).
func (m *Matrix) Shape() (int, int) {
	return m.rows, m.cols
}

// SameShape reports whether m and b have identical dimensions.
func (m *Matrix) SameShape(b *Matrix) bool {
	return m.rows == b.rows && m.cols == b.cols
}

// IsColumn reports whether m is an n×1 column vector with n == rows.
func (m *Matrix) IsColumn(rows int) bool {
	return m.cols == 1 && m.rows == rows
}

// At returns the element at (r, c). It panics if the index is out of range.
func (m *Matrix) At(r, c int) float64 {
	return m.data[r][c]
}

// Set stores v at (r, c). It panics if the index is out of range.
func (m *Matrix) Set(r, c int, v float64) {
	m.data[r][c] = v
}

// Clone returns an independent deep copy of m.
func (m *Matrix) Clone() *Matrix {
	clone := New(m.rows, m.cols)
	for r := 0; r < m.rows; r++ {
		copy(clone.data[r], m.data[r])
	}
	return clone
}

// Apply replaces every element with fn(value, row, col) in place and returns m.
func (m *Matrix) Apply(fn func(v float64, r, c int) float64) *Matrix {
	for r := 0; r < m.rows; r++ {
		row := m.data[r]
		for c := 0; c < m.cols; c++ {
			row[c] = fn(row[c], r, c)
		}
	}
	return m
}

// Equal reports whether m and b have the same shape and identical elements.
func (m *Matrix) Equal(b *Matrix) bool {
	if !m.SameShape(b) {
		return false
	}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.data[r][c] != b.data[r][c] {
				return false
			}
		}
	}
	return true
}

// ToArray returns a copy of the elements as a nested slice.
func (m *Matrix) ToArray() [][]float64 {
	return m.Clone().data
}

// Flatten returns a row-major copy of the elements.
func (m *Matrix) Flatten() []float64 {
	flat := make([]float64, 0, m.rows*m.cols)
	for r := 0; r < m.rows; r++ {
		flat = append(flat, m.data[r]...)
	}
	return flat
}

// String implements fmt.Stringer.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		sb.WriteByte('[')
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[r][c])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// Print writes m to w as an indexed table.
func (m *Matrix) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%6s", "(idx)"); err != nil {
		return err
	}
	for c := 0; c < m.cols; c++ {
		fmt.Fprintf(w, " %12d", c)
	}
	fmt.Fprintln(w)

	for r := 0; r < m.rows; r++ {
		fmt.Fprintf(w, "%6d", r)
		for c := 0; c < m.cols; c++ {
			fmt.Fprintf(w, " %12.6g", m.data[r][c])
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
