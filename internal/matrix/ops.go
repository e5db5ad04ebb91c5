package matrix

// Transpose returns a new matrix t with t[c][r] = a[r][c].
func Transpose(a *Matrix) *Matrix {
	t := New(a.cols, a.rows)
	for r := 0; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			t.data[r][c] = a.data[c][r]
		}
	}
	return t
}

// Add returns the elementwise sum a + b.
func Add(a, b *Matrix) (*Matrix, error) {
	if !a.SameShape(b) {
		return nil, shapeErrorf("Add", a, b, ErrDimensionMismatch)
	}

	sum := New(a.rows, a.cols)
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			sum.data[r][c] = a.data[r][c] + b.data[r][c]
		}
	}
	return sum, nil
}

// Subtract returns the elementwise difference a - b.
func Subtract(a, b *Matrix) (*Matrix, error) {
	if !a.SameShape(b) {
		return nil, shapeErrorf("Subtract", a, b, ErrDimensionMismatch)
	}

	sub := New(a.rows, a.cols)
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			sub.data[r][c] = a.data[r][c] - b.data[r][c]
		}
	}
	return sub, nil
}

// Multiply returns the matrix product a·b.
//
// Each cell is accumulated in the fixed order row, column, inner index so that
// results are bit-for-bit reproducible.
func Multiply(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, shapeErrorf("Multiply", a, b, ErrDimensionMismatch)
	}

	mult := New(a.rows, b.cols)
	for r := 0; r < mult.rows; r++ {
		aRow := a.data[r]
		out := mult.data[r]
		for c := 0; c < mult.cols; c++ {
			var sum float64
			for i := 0; i < a.cols; i++ {
				sum += aRow[i] * b.data[i][c]
			}
			out[c] = sum
		}
	}
	return mult, nil
}

// Hadamard returns the elementwise product of a and b.
func Hadamard(a, b *Matrix) (*Matrix, error) {
	if !a.SameShape(b) {
		return nil, shapeErrorf("Hadamard", a, b, ErrDimensionMismatch)
	}

	prod := New(a.rows, a.cols)
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			prod.data[r][c] = a.data[r][c] * b.data[r][c]
		}
	}
	return prod, nil
}

// Scale returns a new matrix k·a.
func Scale(a *Matrix, k float64) *Matrix {
	return a.Clone().Apply(func(v float64, _, _ int) float64 { return k * v })
}
