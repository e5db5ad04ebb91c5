package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
)

// LoadCSV loads samples from a CSV file.
// labelCols specifies the indices of columns to be used as targets, in order.
// All other columns are used as input features.
// hasHeader skips the first line if true.
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return ReadCSV(file, labelCols, hasHeader)
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader, labelCols []int, hasHeader bool) (*Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}
	if len(records) <= startRow {
		return nil, errors.Wrap(ErrEmpty, "csv file has no data rows")
	}

	numCols := len(records[0])
	isLabelCol := make(map[int]bool)
	for _, col := range labelCols {
		if col < 0 || col >= numCols {
			return nil, errors.Wrapf(ErrFormat, "label column %d outside %d columns", col, numCols)
		}
		isLabelCol[col] = true
	}

	d := &Dataset{}
	for i := startRow; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, errors.Wrapf(ErrFormat, "inconsistent number of columns at row %d", i)
		}

		features := make([]float64, 0, numCols-len(isLabelCol))
		values := make([]float64, numCols)
		for j, valStr := range record {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse value at row %d, col %d", i, j)
			}
			values[j] = val
			if !isLabelCol[j] {
				features = append(features, val)
			}
		}

		// Targets keep the order given in labelCols.
		target := matrix.New(len(labelCols), 1)
		for k, col := range labelCols {
			target.Set(k, 0, values[col])
		}

		d.Append(matrix.Column(features...), target)
	}
	return d, nil
}
