package dataset

import (
	"math/rand"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
)

// digitPatterns are 5×3 glyphs for the digits 0-9, row-major.
var digitPatterns = [MNISTClasses][15]float64{
	{1, 1, 1, 1, 0, 1, 1, 0, 1, 1, 0, 1, 1, 1, 1},
	{0, 1, 0, 1, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0},
	{1, 1, 1, 0, 0, 1, 1, 1, 1, 1, 0, 0, 1, 1, 1},
	{1, 1, 1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 1, 1},
	{1, 0, 1, 1, 0, 1, 1, 1, 1, 0, 0, 1, 0, 0, 1},
	{1, 1, 1, 1, 0, 0, 1, 1, 1, 0, 0, 1, 1, 1, 1},
	{1, 1, 1, 1, 0, 0, 1, 1, 1, 1, 0, 1, 1, 1, 1},
	{1, 1, 1, 0, 0, 1, 0, 1, 0, 0, 1, 0, 0, 1, 0},
	{1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1},
	{1, 1, 1, 1, 0, 1, 1, 1, 1, 0, 0, 1, 1, 1, 1},
}

const (
	imageSide   = 28
	patternCols = 3
	patternRows = 5
	cellSize    = 5
)

// Synthetic generates n MNIST-shaped samples (784 inputs, 10 one-hot targets).
// Sample i shows digit i%10: each glyph cell is blown up to a 5×5 pixel block
// and every pixel gets uniform noise in [-0.05, 0.05).
func Synthetic(rng *rand.Rand, n int) *Dataset {
	d := &Dataset{}
	for i := 0; i < n; i++ {
		digit := i % MNISTClasses
		pattern := digitPatterns[digit]

		pixels := make([]float64, imageSide*imageSide)
		for py := 0; py < patternRows; py++ {
			for px := 0; px < patternCols; px++ {
				val := pattern[py*patternCols+px]
				for sy := 0; sy < cellSize; sy++ {
					for sx := 0; sx < cellSize; sx++ {
						pos := (py*cellSize+sy)*imageSide + (px*cellSize + sx)
						pixels[pos] = val
					}
				}
			}
		}
		for p := range pixels {
			pixels[p] += (rng.Float64() - 0.5) * 0.1
		}

		d.Append(matrix.Column(pixels...), OneHot(digit, MNISTClasses))
	}
	return d
}
