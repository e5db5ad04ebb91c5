package matrix

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func mustFromArray(t *testing.T, data [][]float64) *Matrix {
	t.Helper()
	m, err := FromArray(data)
	require.NoError(t, err)
	return m
}

// TestNewZeroFilled tests that New allocates a zero matrix of the given shape.
func TestNewZeroFilled(t *testing.T) {
	tests := []struct{ rows, cols int }{
		{0, 0},
		{1, 1},
		{3, 2},
		{2, 5},
	}

	for _, tt := range tests {
		m := New(tt.rows, tt.cols)
		r, c := m.Shape()
		assert.Equal(t, tt.rows, r)
		assert.Equal(t, tt.cols, c)
		for _, v := range m.Flatten() {
			assert.Zero(t, v)
		}
	}
}

func TestNewNegativePanics(t *testing.T) {
	assert.Panics(t, func() { New(-1, 2) })
	assert.Panics(t, func() { New(2, -1) })
}

func TestFromArray(t *testing.T) {
	data := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m := mustFromArray(t, data)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())

	// The input is wrapped, not copied.
	data[1][2] = 42
	assert.Equal(t, 42.0, m.At(1, 2))
}

func TestFromArrayEmpty(t *testing.T) {
	m := mustFromArray(t, nil)
	r, c := m.Shape()
	assert.Zero(t, r)
	assert.Zero(t, c)
}

func TestFromArrayRagged(t *testing.T) {
	_, err := FromArray([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, ErrBadShape)
}

func TestCloneIsIndependent(t *testing.T) {
	m := mustFromArray(t, [][]float64{{1, 2}, {3, 4}})
	clone := m.Clone()
	require.True(t, clone.Equal(m))

	clone.Set(0, 0, 100)
	assert.Equal(t, 1.0, m.At(0, 0))
}

// TestApplyInPlace tests that Apply mutates and returns the receiver.
func TestApplyInPlace(t *testing.T) {
	m := mustFromArray(t, [][]float64{{1, 2}, {3, 4}})
	got := m.Apply(func(v float64, r, c int) float64 {
		return v*10 + float64(r*100+c*1000)
	})

	assert.Same(t, m, got)
	want := [][]float64{{10, 1020}, {130, 1140}}
	assert.Equal(t, want, m.ToArray())
}

func TestIdentity(t *testing.T) {
	id := Identity(3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := 0.0
			if r == c {
				want = 1
			}
			assert.Equal(t, want, id.At(r, c))
		}
	}
}

func TestColumn(t *testing.T) {
	values := []float64{0.3, 0.8, 0.1}
	col := Column(values...)
	assert.True(t, col.IsColumn(3))

	values[0] = 9
	assert.Equal(t, 0.3, col.At(0, 0))
}

func TestRandomRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := Random(rng, 20, 30, -2, 3)
	for _, v := range m.Flatten() {
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 3.0)
	}
}

func TestRandomSeeded(t *testing.T) {
	a := Random(rand.New(rand.NewSource(1)), 4, 4, 0, 1)
	b := Random(rand.New(rand.NewSource(1)), 4, 4, 0, 1)
	assert.True(t, a.Equal(b))
}

func TestRandomIntTruncates(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := RandomInt(rng, 10, 10, -5, 5)
	for _, v := range m.Flatten() {
		assert.Equal(t, float64(int64(v)), v)
		assert.GreaterOrEqual(t, v, -4.0)
		assert.LessOrEqual(t, v, 4.0)
	}
}

func TestTranspose(t *testing.T) {
	m := mustFromArray(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	tr := Transpose(m)
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr.ToArray())
}

func TestTransposeTwiceIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, shape := range [][2]int{{1, 1}, {1, 7}, {5, 3}, {8, 8}} {
		m := Random(rng, shape[0], shape[1], -10, 10)
		assert.True(t, Transpose(Transpose(m)).Equal(m), "shape %v", shape)
	}
}

func TestAddSubtract(t *testing.T) {
	a := mustFromArray(t, [][]float64{{1, 2}, {3, 4}})
	b := mustFromArray(t, [][]float64{{10, 20}, {30, 40}})

	sum, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{11, 22}, {33, 44}}, sum.ToArray())

	diff, err := Subtract(b, a)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{9, 18}, {27, 36}}, diff.ToArray())

	// Operands are untouched.
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, a.ToArray())
}

func TestBinaryOpsDimensionMismatch(t *testing.T) {
	a := New(2, 3)
	b := New(3, 2)

	_, err := Add(a, b)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Subtract(a, b)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Hadamard(a, b)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Multiply(a, New(2, 2))
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMultiply(t *testing.T) {
	a := mustFromArray(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustFromArray(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	got, err := Multiply(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{58, 64}, {139, 154}}, got.ToArray())
}

func TestMultiplyIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, shape := range [][2]int{{1, 1}, {3, 1}, {4, 6}, {7, 2}} {
		a := Random(rng, shape[0], shape[1], -3, 3)
		got, err := Multiply(Identity(shape[0]), a)
		require.NoError(t, err)
		assert.True(t, got.Equal(a), "shape %v", shape)
	}
}

// TestMultiplyMatchesGonum checks the product against gonum's mat.Dense.
func TestMultiplyMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	a := Random(rng, 6, 4, -1, 1)
	b := Random(rng, 4, 5, -1, 1)

	got, err := Multiply(a, b)
	require.NoError(t, err)

	var want mat.Dense
	want.Mul(a.Dense(), b.Dense())
	assert.True(t, mat.EqualApprox(got.Dense(), &want, 1e-12))

	var wantT mat.Dense
	wantT.CloneFrom(a.Dense().T())
	assert.True(t, mat.Equal(Transpose(a).Dense(), &wantT))
}

func TestFromDenseRoundTrip(t *testing.T) {
	d := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	m := FromDense(d)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, m.ToArray())
	assert.True(t, mat.Equal(d, m.Dense()))
	assert.Nil(t, New(0, 3).Dense())
}

func TestHadamardAndScale(t *testing.T) {
	a := mustFromArray(t, [][]float64{{1, 2}, {3, 4}})
	b := mustFromArray(t, [][]float64{{2, 0}, {-1, 0.5}})

	prod, err := Hadamard(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 0}, {-3, 2}}, prod.ToArray())

	scaled := Scale(a, 3)
	assert.Equal(t, [][]float64{{3, 6}, {9, 12}}, scaled.ToArray())
	assert.Equal(t, 1.0, a.At(0, 0))
}

func TestStringAndPrint(t *testing.T) {
	m := mustFromArray(t, [][]float64{{1, 2.5}, {3, 4}})
	assert.Equal(t, "[1, 2.5]\n[3, 4]\n", m.String())

	var buf bytes.Buffer
	require.NoError(t, m.Print(&buf))
	assert.Contains(t, buf.String(), "2.5")
	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("\n")))
}

func BenchmarkMultiply(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	x := RandomInt(rng, 10, 10, 0, 50)
	y := RandomInt(rng, 10, 10, 0, 50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Multiply(x, y)
	}
}
